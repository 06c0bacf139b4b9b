package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/propfolio/property_ledger/internal/apperrors"
	"github.com/propfolio/property_ledger/internal/core/domain"
	portsrepo "github.com/propfolio/property_ledger/internal/core/ports/repositories"
	portssvc "github.com/propfolio/property_ledger/internal/core/ports/services"
	"github.com/propfolio/property_ledger/internal/dto"
	"github.com/propfolio/property_ledger/internal/utils/accounting"
)

const defaultEntryPageSize = 20

// ledgerService provides the double-entry ledger operations.
type ledgerService struct {
	BaseService
	ledgerRepo portsrepo.LedgerRepositoryWithTx
	accountSvc portssvc.ChartAccountSvcFacade
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryWithTx, accountSvc portssvc.ChartAccountSvcFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{
		ledgerRepo: ledgerRepo,
		accountSvc: accountSvc,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// CreateBankLedger registers a bank account linked to an Asset GL account.
func (s *ledgerService) CreateBankLedger(ctx context.Context, entityID string, req dto.CreateBankLedgerRequest, creatorUserID string) (*domain.BankLedger, error) {
	glAccount, err := s.accountSvc.GetAccountByID(ctx, entityID, req.ChartAccountID)
	if err != nil {
		return nil, err
	}
	if glAccount.AccountType != domain.Asset {
		return nil, fmt.Errorf("%w: bank ledger GL account %s must be an asset account", apperrors.ErrValidation, req.ChartAccountID)
	}
	if !glAccount.IsActive {
		return nil, fmt.Errorf("%w: GL account %s is inactive", apperrors.ErrValidation, req.ChartAccountID)
	}

	now := time.Now().UTC()
	ledger := domain.BankLedger{
		BankLedgerID:   uuid.NewString(),
		EntityID:       entityID,
		AccountName:    req.AccountName,
		AccountNumber:  req.AccountNumber,
		ChartAccountID: req.ChartAccountID,
		CurrentBalance: decimal.Zero,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.ledgerRepo.SaveBankLedger(ctx, ledger); err != nil {
		s.LogError(ctx, err, "Failed to save bank ledger", slog.String("entity_id", entityID))
		return nil, fmt.Errorf("failed to save bank ledger: %w", err)
	}

	s.LogInfo(ctx, "Bank ledger created", slog.String("bank_ledger_id", ledger.BankLedgerID))
	return &ledger, nil
}

// GetBankLedgerByID retrieves a bank ledger, obscuring other entities' ledgers.
func (s *ledgerService) GetBankLedgerByID(ctx context.Context, entityID string, bankLedgerID string) (*domain.BankLedger, error) {
	ledger, err := s.ledgerRepo.FindBankLedgerByID(ctx, bankLedgerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find bank ledger %s: %w", bankLedgerID, err)
	}
	if ledger.EntityID != entityID {
		s.LogWarn(ctx, "Bank ledger belongs to a different entity", slog.String("bank_ledger_id", bankLedgerID), slog.String("requested_entity", entityID))
		return nil, apperrors.ErrNotFound
	}
	return ledger, nil
}

// ListBankLedgers retrieves all active bank ledgers of an entity.
func (s *ledgerService) ListBankLedgers(ctx context.Context, entityID string) ([]domain.BankLedger, error) {
	ledgers, err := s.ledgerRepo.ListBankLedgers(ctx, entityID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list bank ledgers", slog.String("entity_id", entityID))
		return nil, fmt.Errorf("failed to list bank ledgers: %w", err)
	}
	return ledgers, nil
}

// CreateBalancedSet validates a proposed set of entries and persists it
// atomically together with the bank ledger balance update.
func (s *ledgerService) CreateBalancedSet(ctx context.Context, entityID string, req dto.CreateBalancedSetRequest, creatorUserID string) ([]domain.LedgerEntry, error) {
	if req.Description == "" {
		return nil, fmt.Errorf("%w: description is required", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	entries := make([]domain.LedgerEntry, len(req.Entries))
	accountIDs := make([]string, 0, len(req.Entries))
	for i, in := range req.Entries {
		txnType := domain.Debit
		amount := in.DebitAmount
		if in.DebitAmount.IsZero() {
			txnType = domain.Credit
			amount = in.CreditAmount
		}
		txnDate := req.Date
		if in.TransactionDate != nil {
			txnDate = *in.TransactionDate
		}
		description := in.Description
		if description == "" {
			description = req.Description
		}

		entries[i] = domain.LedgerEntry{
			EntryID:         uuid.NewString(),
			BankLedgerID:    req.BankLedgerID,
			ChartAccountID:  in.ChartAccountID,
			DebitAmount:     in.DebitAmount,
			CreditAmount:    in.CreditAmount,
			Amount:          amount,
			TransactionType: txnType,
			Description:     description,
			TransactionDate: txnDate,
			ReferenceNumber: in.ReferenceNumber,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     creatorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: creatorUserID,
			},
		}
		accountIDs = append(accountIDs, in.ChartAccountID)
	}

	// Double-entry check before anything touches the store
	check, err := accounting.ValidateBalancedSet(entries)
	if err != nil {
		s.LogWarn(ctx, "Balanced set failed validation",
			slog.String("entity_id", entityID),
			slog.String("total_debits", check.TotalDebits.String()),
			slog.String("total_credits", check.TotalCredits.String()),
			slog.String("difference", check.Difference.String()))
		return nil, err
	}

	// The bank ledger must resolve within the entity; scope is derived from the
	// owning row, never from a field on the request.
	ledger, err := s.GetBankLedgerByID(ctx, entityID, req.BankLedgerID)
	if err != nil {
		return nil, err
	}
	if !ledger.IsActive {
		return nil, fmt.Errorf("%w: bank ledger %s is inactive", apperrors.ErrValidation, ledger.BankLedgerID)
	}

	// Every chart account must resolve within the entity as well
	accounts, err := s.accountSvc.GetAccountsByIDs(ctx, entityID, uniqueStrings(accountIDs))
	if err != nil {
		return nil, err
	}
	for _, acc := range accounts {
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, acc.AccountID)
		}
	}

	// Net cash-leg delta moves the bank ledger balance
	delta := decimal.Zero
	for _, e := range entries {
		if e.IsCashLeg(*ledger) {
			delta = delta.Add(e.SignedAmount())
		}
	}

	balanceDeltas := map[string]decimal.Decimal{ledger.BankLedgerID: delta}
	if err := s.ledgerRepo.SaveEntries(ctx, entries, balanceDeltas); err != nil {
		s.LogError(ctx, err, "Failed to save balanced set", slog.String("bank_ledger_id", ledger.BankLedgerID))
		return nil, fmt.Errorf("failed to save balanced set: %w", err)
	}

	s.LogInfo(ctx, "Balanced set recorded",
		slog.String("bank_ledger_id", ledger.BankLedgerID),
		slog.Int("entry_count", len(entries)),
		slog.String("balance_delta", delta.String()))
	return entries, nil
}

// RecordSimpleTransaction derives the two-leg pair for a deposit, withdrawal
// or payment and delegates to CreateBalancedSet.
func (s *ledgerService) RecordSimpleTransaction(ctx context.Context, entityID string, req dto.SimpleTransactionRequest, creatorUserID string) ([]domain.LedgerEntry, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	ledger, err := s.GetBankLedgerByID(ctx, entityID, req.BankLedgerID)
	if err != nil {
		return nil, err
	}

	bankLeg := dto.EntryInput{
		ChartAccountID:  ledger.ChartAccountID,
		Description:     req.Description,
		ReferenceNumber: req.ReferenceNumber,
	}
	counterLeg := dto.EntryInput{
		ChartAccountID:  req.CounterAccountID,
		Description:     req.Description,
		ReferenceNumber: req.ReferenceNumber,
	}

	switch req.Type {
	case domain.Deposit:
		// Money in: debit the bank, credit the counter account
		bankLeg.DebitAmount = req.Amount
		counterLeg.CreditAmount = req.Amount
	case domain.Withdrawal, domain.Payment:
		// Money out: credit the bank, debit the counter account
		bankLeg.CreditAmount = req.Amount
		counterLeg.DebitAmount = req.Amount
	default:
		return nil, fmt.Errorf("%w: unknown simple transaction type %q", apperrors.ErrValidation, req.Type)
	}

	return s.CreateBalancedSet(ctx, entityID, dto.CreateBalancedSetRequest{
		BankLedgerID: req.BankLedgerID,
		Description:  req.Description,
		Date:         req.Date,
		Entries:      []dto.EntryInput{bankLeg, counterLeg},
	}, creatorUserID)
}

// RecordCheckDeposit records a multi-check deposit as a single balanced set:
// one debit to the bank for the sum of all checks, one credit per check to its
// designated income account.
func (s *ledgerService) RecordCheckDeposit(ctx context.Context, entityID string, req dto.CheckDepositRequest, creatorUserID string) ([]domain.LedgerEntry, error) {
	if len(req.Checks) == 0 {
		return nil, fmt.Errorf("%w: at least one check is required", apperrors.ErrValidation)
	}

	ledger, err := s.GetBankLedgerByID(ctx, entityID, req.BankLedgerID)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	legs := make([]dto.EntryInput, 0, len(req.Checks)+1)
	legs = append(legs, dto.EntryInput{}) // Placeholder for the bank leg, filled below

	for i, check := range req.Checks {
		if check.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: check %d amount must be positive", apperrors.ErrValidation, i)
		}
		total = total.Add(check.Amount)
		description := check.Description
		if description == "" {
			description = fmt.Sprintf("Check %s deposit", check.CheckNumber)
		}
		checkNumber := check.CheckNumber
		legs = append(legs, dto.EntryInput{
			ChartAccountID:  check.IncomeAccountID,
			CreditAmount:    check.Amount,
			Description:     description,
			ReferenceNumber: &checkNumber,
		})
	}

	legs[0] = dto.EntryInput{
		ChartAccountID: ledger.ChartAccountID,
		DebitAmount:    total,
		Description:    fmt.Sprintf("Deposit of %d check(s)", len(req.Checks)),
	}

	return s.CreateBalancedSet(ctx, entityID, dto.CreateBalancedSetRequest{
		BankLedgerID: req.BankLedgerID,
		Description:  fmt.Sprintf("Check deposit (%d checks)", len(req.Checks)),
		Date:         req.DepositDate,
		Entries:      legs,
	}, creatorUserID)
}

// DeleteEntry removes an entry and reverses its balance effect on the owning
// bank ledger in one transaction. Reconciled entries are rejected; they can
// only be undone with a compensating entry.
func (s *ledgerService) DeleteEntry(ctx context.Context, entityID string, entryID string) error {
	entry, err := s.ledgerRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}

	ledger, err := s.GetBankLedgerByID(ctx, entityID, entry.BankLedgerID)
	if err != nil {
		return err
	}

	if entry.Reconciled {
		return fmt.Errorf("%w: entry %s is reconciled and can only be reversed with a compensating entry", apperrors.ErrConflict, entryID)
	}

	delta := decimal.Zero
	if entry.IsCashLeg(*ledger) {
		delta = entry.SignedAmount().Neg()
	}

	if err := s.ledgerRepo.DeleteEntry(ctx, *entry, delta); err != nil {
		s.LogError(ctx, err, "Failed to delete entry", slog.String("entry_id", entryID))
		return fmt.Errorf("failed to delete entry: %w", err)
	}

	s.LogInfo(ctx, "Ledger entry deleted",
		slog.String("entry_id", entryID),
		slog.String("bank_ledger_id", ledger.BankLedgerID),
		slog.String("balance_delta", delta.String()))
	return nil
}

// ListEntries retrieves a filtered page of entries. Entity scope is enforced
// by the repository joining through the owning bank ledger.
func (s *ledgerService) ListEntries(ctx context.Context, entityID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultEntryPageSize
	}

	// A requested bank ledger must resolve within the entity before querying
	if params.BankLedgerID != nil {
		if _, err := s.GetBankLedgerByID(ctx, entityID, *params.BankLedgerID); err != nil {
			return nil, err
		}
	}

	filter := portsrepo.EntryFilter{
		BankLedgerID:   params.BankLedgerID,
		ChartAccountID: params.ChartAccountID,
		From:           params.From,
		To:             params.To,
		Reconciled:     params.Reconciled,
	}

	entries, nextToken, err := s.ledgerRepo.ListEntries(ctx, entityID, filter, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list ledger entries", slog.String("entity_id", entityID))
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}

	return &dto.ListEntriesResponse{
		Entries:   dto.ToLedgerEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}

// uniqueStrings returns a slice containing only the unique strings from the input.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}
