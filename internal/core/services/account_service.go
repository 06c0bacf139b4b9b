package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/propfolio/property_ledger/internal/apperrors"
	"github.com/propfolio/property_ledger/internal/core/domain"
	portsrepo "github.com/propfolio/property_ledger/internal/core/ports/repositories"
	portssvc "github.com/propfolio/property_ledger/internal/core/ports/services"
	"github.com/propfolio/property_ledger/internal/dto"
)

// accountCodePattern constrains chart account codes to 3-6 digits, e.g. "4110".
var accountCodePattern = regexp.MustCompile(`^[0-9]{3,6}$`)

// chartAccountService provides chart of accounts operations.
type chartAccountService struct {
	BaseService
	accountRepo portsrepo.ChartAccountRepositoryFacade
}

// NewChartAccountService creates a new chart of accounts service.
func NewChartAccountService(accountRepo portsrepo.ChartAccountRepositoryFacade) portssvc.ChartAccountSvcFacade {
	return &chartAccountService{accountRepo: accountRepo}
}

var _ portssvc.ChartAccountSvcFacade = (*chartAccountService)(nil)

// CreateAccount creates a new chart account after validating code format and
// uniqueness within the entity.
func (s *chartAccountService) CreateAccount(ctx context.Context, entityID string, req dto.CreateChartAccountRequest, creatorUserID string) (*domain.ChartAccount, error) {
	if !accountCodePattern.MatchString(req.Code) {
		return nil, fmt.Errorf("%w: account code %q must be 3-6 digits", apperrors.ErrValidation, req.Code)
	}
	if !req.AccountType.IsValid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.AccountType)
	}

	// Code uniqueness per entity
	existing, err := s.accountRepo.FindAccountByCode(ctx, entityID, req.Code)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check account code uniqueness", slog.String("entity_id", entityID), slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to check account code: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: account code %s already exists for entity", apperrors.ErrDuplicate, req.Code)
	}

	// A parent account must exist within the same entity
	if req.ParentAccountID != nil {
		parent, err := s.accountRepo.FindAccountByID(ctx, *req.ParentAccountID)
		if err != nil {
			return nil, fmt.Errorf("failed to find parent account %s: %w", *req.ParentAccountID, err)
		}
		if parent.EntityID != entityID {
			return nil, fmt.Errorf("%w: parent account %s", apperrors.ErrNotFound, *req.ParentAccountID)
		}
	}

	now := time.Now().UTC()
	account := domain.ChartAccount{
		AccountID:        uuid.NewString(),
		EntityID:         entityID,
		Code:             req.Code,
		Name:             req.Name,
		AccountType:      req.AccountType,
		ParentAccountID:  req.ParentAccountID,
		CashFlowCategory: req.CashFlowCategory,
		IsActive:         true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save chart account", slog.String("entity_id", entityID))
		return nil, fmt.Errorf("failed to save chart account: %w", err)
	}

	s.LogInfo(ctx, "Chart account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

// GetAccountByID retrieves an account, obscuring accounts of other entities.
func (s *chartAccountService) GetAccountByID(ctx context.Context, entityID string, accountID string) (*domain.ChartAccount, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	if account.EntityID != entityID {
		s.LogWarn(ctx, "Account belongs to a different entity", slog.String("account_id", accountID), slog.String("requested_entity", entityID))
		return nil, apperrors.ErrNotFound
	}
	return account, nil
}

// GetAccountsByIDs retrieves multiple accounts, all scoped to the entity.
// A missing or cross-entity ID fails the whole call with ErrNotFound.
func (s *chartAccountService) GetAccountsByIDs(ctx context.Context, entityID string, accountIDs []string) (map[string]domain.ChartAccount, error) {
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to find accounts: %w", err)
	}
	for _, id := range accountIDs {
		acc, found := accounts[id]
		if !found {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
		if acc.EntityID != entityID {
			s.LogWarn(ctx, "Account belongs to a different entity", slog.String("account_id", id), slog.String("requested_entity", entityID))
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
	}
	return accounts, nil
}

// ListAccounts retrieves the chart of accounts for an entity ordered by code.
func (s *chartAccountService) ListAccounts(ctx context.Context, entityID string, includeInactive bool) ([]domain.ChartAccount, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, entityID, includeInactive)
	if err != nil {
		s.LogError(ctx, err, "Failed to list chart accounts", slog.String("entity_id", entityID))
		return nil, fmt.Errorf("failed to list chart accounts: %w", err)
	}
	return accounts, nil
}

// DeactivateAccount marks an account inactive; it remains visible in history.
func (s *chartAccountService) DeactivateAccount(ctx context.Context, entityID string, accountID string, userID string) error {
	account, err := s.GetAccountByID(ctx, entityID, accountID)
	if err != nil {
		return err
	}
	if !account.IsActive {
		return nil // Already inactive
	}
	if err := s.accountRepo.DeactivateAccount(ctx, accountID, userID, time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate account", slog.String("account_id", accountID))
		return fmt.Errorf("failed to deactivate account: %w", err)
	}
	s.LogInfo(ctx, "Chart account deactivated", slog.String("account_id", accountID))
	return nil
}
