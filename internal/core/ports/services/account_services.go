package services

import (
	"context"

	"github.com/propfolio/property_ledger/internal/core/domain"
	"github.com/propfolio/property_ledger/internal/dto"
)

// ChartAccountSvcFacade defines the operations of the chart of accounts service.
type ChartAccountSvcFacade interface {
	// CreateAccount creates a chart account; duplicate codes within the entity
	// are rejected with ErrDuplicate.
	CreateAccount(ctx context.Context, entityID string, req dto.CreateChartAccountRequest, creatorUserID string) (*domain.ChartAccount, error)

	// GetAccountByID retrieves an account; accounts of other entities resolve to
	// ErrNotFound.
	GetAccountByID(ctx context.Context, entityID string, accountID string) (*domain.ChartAccount, error)

	// GetAccountsByIDs retrieves multiple accounts, all scoped to the entity.
	GetAccountsByIDs(ctx context.Context, entityID string, accountIDs []string) (map[string]domain.ChartAccount, error)

	// ListAccounts retrieves the entity's chart of accounts ordered by code.
	ListAccounts(ctx context.Context, entityID string, includeInactive bool) ([]domain.ChartAccount, error)

	// DeactivateAccount soft-deletes an account.
	DeactivateAccount(ctx context.Context, entityID string, accountID string, userID string) error
}
