package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/propfolio/property_ledger/internal/apperrors"
	"github.com/propfolio/property_ledger/internal/core/domain"
	portsrepo "github.com/propfolio/property_ledger/internal/core/ports/repositories"
	portssvc "github.com/propfolio/property_ledger/internal/core/ports/services"
	"github.com/propfolio/property_ledger/internal/dto"
	"github.com/propfolio/property_ledger/internal/utils/matching"
)

var (
	// balanceTolerance absorbs sub-cent drift between the book balance and a
	// statement's closing balance.
	balanceTolerance = decimal.RequireFromString("0.01")

	// descriptionThreshold is the minimum description similarity for a
	// candidate whose date falls outside the three-day window.
	descriptionThreshold = decimal.RequireFromString("0.8")
)

// reconciliationService implements statement import, match suggestion and
// reconciliation recording.
type reconciliationService struct {
	BaseService
	statementRepo portsrepo.StatementRepositoryFacade
	reconRepo     portsrepo.ReconciliationRepositoryFacade
	ledgerRepo    portsrepo.LedgerRepositoryFacade
	ledgerSvc     portssvc.LedgerSvcFacade
}

// NewReconciliationService creates a new ReconciliationService.
func NewReconciliationService(
	statementRepo portsrepo.StatementRepositoryFacade,
	reconRepo portsrepo.ReconciliationRepositoryFacade,
	ledgerRepo portsrepo.LedgerRepositoryFacade,
	ledgerSvc portssvc.LedgerSvcFacade,
) portssvc.ReconciliationSvcFacade {
	return &reconciliationService{
		statementRepo: statementRepo,
		reconRepo:     reconRepo,
		ledgerRepo:    ledgerRepo,
		ledgerSvc:     ledgerSvc,
	}
}

var _ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)

// ImportStatement persists a bank statement and its transactions atomically.
// A statement whose period overlaps an already imported one for the same bank
// ledger is rejected with ErrConflict.
func (s *reconciliationService) ImportStatement(ctx context.Context, entityID string, req dto.ImportStatementRequest, creatorUserID string) (*domain.BankStatement, error) {
	if req.PeriodEnd.Before(req.PeriodStart) {
		return nil, fmt.Errorf("%w: statement period end %s precedes start %s", apperrors.ErrValidation, req.PeriodEnd.Format("2006-01-02"), req.PeriodStart.Format("2006-01-02"))
	}
	if len(req.Transactions) == 0 {
		return nil, fmt.Errorf("%w: a statement must contain at least one transaction", apperrors.ErrValidation)
	}

	ledger, err := s.ledgerSvc.GetBankLedgerByID(ctx, entityID, req.BankLedgerID)
	if err != nil {
		return nil, err
	}

	overlaps, err := s.statementRepo.HasOverlappingStatement(ctx, ledger.BankLedgerID, req.PeriodStart, req.PeriodEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to check statement overlap: %w", err)
	}
	if overlaps {
		return nil, fmt.Errorf("%w: a statement already covers part of %s to %s for bank ledger %s",
			apperrors.ErrConflict, req.PeriodStart.Format("2006-01-02"), req.PeriodEnd.Format("2006-01-02"), ledger.BankLedgerID)
	}

	now := time.Now().UTC()
	statement := domain.BankStatement{
		StatementID:    uuid.NewString(),
		BankLedgerID:   ledger.BankLedgerID,
		PeriodStart:    req.PeriodStart,
		PeriodEnd:      req.PeriodEnd,
		OpeningBalance: req.OpeningBalance,
		ClosingBalance: req.ClosingBalance,
		Transactions:   make([]domain.BankTransaction, len(req.Transactions)),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	for i, in := range req.Transactions {
		if in.TransactionDate.Before(req.PeriodStart) || in.TransactionDate.After(req.PeriodEnd) {
			return nil, fmt.Errorf("%w: transaction %d dated %s falls outside the statement period", apperrors.ErrValidation, i, in.TransactionDate.Format("2006-01-02"))
		}
		statement.Transactions[i] = domain.BankTransaction{
			TransactionID:   uuid.NewString(),
			StatementID:     statement.StatementID,
			TransactionDate: in.TransactionDate,
			Amount:          in.Amount,
			Description:     in.Description,
			ReferenceNumber: in.ReferenceNumber,
			RunningBalance:  in.RunningBalance,
		}
	}

	if err := s.statementRepo.SaveStatement(ctx, statement); err != nil {
		s.LogError(ctx, err, "Failed to save bank statement", slog.String("bank_ledger_id", ledger.BankLedgerID))
		return nil, fmt.Errorf("failed to save bank statement: %w", err)
	}

	s.LogInfo(ctx, "Bank statement imported",
		slog.String("statement_id", statement.StatementID),
		slog.String("bank_ledger_id", ledger.BankLedgerID),
		slog.Int("transaction_count", len(statement.Transactions)))
	return &statement, nil
}

// SuggestMatches pairs each unreconciled cash leg of the bank ledger with
// candidate unmatched bank transactions, ordered by descending best-candidate
// confidence. A candidate qualifies only if its signed amount matches the
// entry exactly and either its date is within three days or its description is
// clearly similar. The gate is direction-aware on purpose: a withdrawal never
// pairs with a same-magnitude bank deposit. Suggestions never reconcile
// anything.
func (s *reconciliationService) SuggestMatches(ctx context.Context, entityID string, bankLedgerID string) ([]domain.MatchSuggestion, error) {
	ledger, err := s.ledgerSvc.GetBankLedgerByID(ctx, entityID, bankLedgerID)
	if err != nil {
		return nil, err
	}

	entries, err := s.ledgerRepo.FindUnreconciledCashLegs(ctx, ledger.BankLedgerID, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to find unreconciled entries: %w", err)
	}
	transactions, err := s.statementRepo.FindUnmatchedTransactions(ctx, ledger.BankLedgerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find unmatched transactions: %w", err)
	}

	suggestions := make([]domain.MatchSuggestion, 0, len(entries))
	for _, entry := range entries {
		signed := entry.SignedAmount()
		candidates := make([]domain.MatchCandidate, 0)
		for _, txn := range transactions {
			if !signed.Equal(txn.Amount) {
				continue
			}
			confidence := matching.Confidence(signed, txn.Amount, entry.TransactionDate, txn.TransactionDate, entry.Description, txn.Description)
			withinWindow := matching.DaysApart(entry.TransactionDate, txn.TransactionDate) <= 3
			if !withinWindow && matching.StringSimilarity(entry.Description, txn.Description).LessThan(descriptionThreshold) {
				continue
			}
			candidates = append(candidates, domain.MatchCandidate{
				BankTransaction: txn,
				Confidence:      confidence,
			})
		}
		if len(candidates) == 0 {
			continue
		}
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].Confidence.GreaterThan(candidates[j].Confidence)
		})
		suggestions = append(suggestions, domain.MatchSuggestion{
			Entry:      entry,
			Candidates: candidates,
		})
	}
	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Candidates[0].Confidence.GreaterThan(suggestions[j].Candidates[0].Confidence)
	})

	s.LogInfo(ctx, "Match suggestions generated",
		slog.String("bank_ledger_id", ledger.BankLedgerID),
		slog.Int("suggestion_count", len(suggestions)))
	return suggestions, nil
}

// CreateReconciliation records confirmed matches against a statement, marks
// the matched ledger entries reconciled and recomputes completeness. The
// reconciliation closes as COMPLETED only when no unreconciled cash legs
// remain in the statement period and the book balance agrees with the
// statement's closing balance within tolerance; otherwise it stays
// IN_PROGRESS.
func (s *reconciliationService) CreateReconciliation(ctx context.Context, entityID string, req dto.CreateReconciliationRequest, creatorUserID string) (*domain.BankReconciliation, error) {
	ledger, err := s.ledgerSvc.GetBankLedgerByID(ctx, entityID, req.BankLedgerID)
	if err != nil {
		return nil, err
	}

	statement, err := s.statementRepo.FindStatementByID(ctx, req.StatementID)
	if err != nil {
		return nil, fmt.Errorf("failed to find statement %s: %w", req.StatementID, err)
	}
	if statement.BankLedgerID != ledger.BankLedgerID {
		return nil, fmt.Errorf("%w: statement %s does not belong to bank ledger %s", apperrors.ErrValidation, req.StatementID, ledger.BankLedgerID)
	}

	existing, err := s.reconRepo.FindReconciliationByStatement(ctx, req.StatementID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing reconciliation: %w", err)
	}
	if existing != nil && existing.Status == domain.ReconciliationCompleted {
		return nil, fmt.Errorf("%w: statement %s is already fully reconciled", apperrors.ErrConflict, req.StatementID)
	}

	statementTxns := make(map[string]struct{}, len(statement.Transactions))
	for _, txn := range statement.Transactions {
		statementTxns[txn.TransactionID] = struct{}{}
	}

	now := time.Now().UTC()
	reconciliation := domain.BankReconciliation{
		ReconciliationID:   uuid.NewString(),
		BankLedgerID:       ledger.BankLedgerID,
		StatementID:        statement.StatementID,
		ReconciliationDate: now,
		Status:             domain.ReconciliationInProgress,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	seenEntries := make(map[string]struct{}, len(req.Matches))
	seenTxns := make(map[string]struct{}, len(req.Matches))
	matches := make([]domain.ReconciliationMatch, len(req.Matches))
	for i, in := range req.Matches {
		if _, dup := seenEntries[in.LedgerEntryID]; dup {
			return nil, fmt.Errorf("%w: ledger entry %s appears in more than one match", apperrors.ErrValidation, in.LedgerEntryID)
		}
		if _, dup := seenTxns[in.BankTransactionID]; dup {
			return nil, fmt.Errorf("%w: bank transaction %s appears in more than one match", apperrors.ErrValidation, in.BankTransactionID)
		}
		seenEntries[in.LedgerEntryID] = struct{}{}
		seenTxns[in.BankTransactionID] = struct{}{}

		if _, ok := statementTxns[in.BankTransactionID]; !ok {
			return nil, fmt.Errorf("%w: bank transaction %s is not on statement %s", apperrors.ErrValidation, in.BankTransactionID, statement.StatementID)
		}

		entry, err := s.ledgerRepo.FindEntryByID(ctx, in.LedgerEntryID)
		if err != nil {
			return nil, fmt.Errorf("failed to find ledger entry %s: %w", in.LedgerEntryID, err)
		}
		if entry.BankLedgerID != ledger.BankLedgerID || !entry.IsCashLeg(*ledger) {
			return nil, fmt.Errorf("%w: entry %s is not a cash leg of bank ledger %s", apperrors.ErrValidation, in.LedgerEntryID, ledger.BankLedgerID)
		}
		if entry.Reconciled {
			return nil, fmt.Errorf("%w: entry %s is already reconciled", apperrors.ErrConflict, in.LedgerEntryID)
		}

		matches[i] = domain.ReconciliationMatch{
			MatchID:           uuid.NewString(),
			ReconciliationID:  reconciliation.ReconciliationID,
			LedgerEntryID:     in.LedgerEntryID,
			BankTransactionID: in.BankTransactionID,
			MatchNotes:        in.MatchNotes,
		}
	}

	if err := s.reconRepo.SaveReconciliation(ctx, reconciliation, matches); err != nil {
		s.LogError(ctx, err, "Failed to save reconciliation", slog.String("statement_id", statement.StatementID))
		return nil, fmt.Errorf("failed to save reconciliation: %w", err)
	}
	reconciliation.Matches = matches

	// Completeness check runs against post-save state
	_, unreconciled, err := s.ledgerRepo.CountCashLegsInPeriod(ctx, ledger.BankLedgerID, statement.PeriodStart, statement.PeriodEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to count cash legs: %w", err)
	}
	refreshed, err := s.ledgerRepo.FindBankLedgerByID(ctx, ledger.BankLedgerID)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh bank ledger: %w", err)
	}
	difference := refreshed.CurrentBalance.Sub(statement.ClosingBalance).Abs()

	if unreconciled == 0 && difference.LessThan(balanceTolerance) {
		if err := s.reconRepo.UpdateReconciliationStatus(ctx, reconciliation.ReconciliationID, domain.ReconciliationCompleted, creatorUserID); err != nil {
			return nil, fmt.Errorf("failed to complete reconciliation: %w", err)
		}
		reconciliation.Status = domain.ReconciliationCompleted
	}

	s.LogInfo(ctx, "Reconciliation recorded",
		slog.String("reconciliation_id", reconciliation.ReconciliationID),
		slog.String("status", string(reconciliation.Status)),
		slog.Int("match_count", len(matches)),
		slog.Int("unreconciled_remaining", unreconciled))
	return &reconciliation, nil
}

// CreateAdjustmentEntry records an out-of-band bank transaction discovered
// during reconciliation (a fee, interest, an NSF charge) as a regular balanced
// pair. The entry description carries an audit prefix naming the adjustment
// type so adjustments remain distinguishable from ordinary activity.
func (s *reconciliationService) CreateAdjustmentEntry(ctx context.Context, entityID string, req dto.AdjustmentRequest, creatorUserID string) ([]domain.LedgerEntry, error) {
	if req.Amount.IsZero() {
		return nil, fmt.Errorf("%w: adjustment amount must be non-zero", apperrors.ErrValidation)
	}

	ledger, err := s.ledgerSvc.GetBankLedgerByID(ctx, entityID, req.BankLedgerID)
	if err != nil {
		return nil, err
	}

	// Fees always take money out and interest always brings money in.
	// CORRECTION and OTHER follow the sign of the requested amount.
	var moneyIn bool
	switch req.Type {
	case domain.AdjustmentBankFee, domain.AdjustmentNSFFee:
		if req.Amount.IsNegative() {
			return nil, fmt.Errorf("%w: %s amount must be positive", apperrors.ErrValidation, req.Type)
		}
		moneyIn = false
	case domain.AdjustmentInterest:
		if req.Amount.IsNegative() {
			return nil, fmt.Errorf("%w: interest amount must be positive", apperrors.ErrValidation)
		}
		moneyIn = true
	case domain.AdjustmentCorrection, domain.AdjustmentOther:
		moneyIn = req.Amount.IsPositive()
	default:
		return nil, fmt.Errorf("%w: unknown adjustment type %q", apperrors.ErrValidation, req.Type)
	}

	amount := req.Amount.Abs()
	description := fmt.Sprintf("[RECON ADJ:%s] %s", req.Type, req.Description)

	bankLeg := dto.EntryInput{ChartAccountID: ledger.ChartAccountID, Description: description}
	counterLeg := dto.EntryInput{ChartAccountID: req.CounterAccountID, Description: description}
	if moneyIn {
		bankLeg.DebitAmount = amount
		counterLeg.CreditAmount = amount
	} else {
		bankLeg.CreditAmount = amount
		counterLeg.DebitAmount = amount
	}

	return s.ledgerSvc.CreateBalancedSet(ctx, entityID, dto.CreateBalancedSetRequest{
		BankLedgerID: req.BankLedgerID,
		Description:  description,
		Date:         req.Date,
		Entries:      []dto.EntryInput{bankLeg, counterLeg},
	}, creatorUserID)
}

// ReconciliationSummary reports the reconciliation position of a bank ledger
// against a specific statement, or its latest statement when none is named.
func (s *reconciliationService) ReconciliationSummary(ctx context.Context, entityID string, bankLedgerID string, statementID *string) (*domain.ReconciliationSummary, error) {
	ledger, err := s.ledgerSvc.GetBankLedgerByID(ctx, entityID, bankLedgerID)
	if err != nil {
		return nil, err
	}

	var statement *domain.BankStatement
	if statementID != nil {
		statement, err = s.statementRepo.FindStatementByID(ctx, *statementID)
		if err != nil {
			return nil, fmt.Errorf("failed to find statement %s: %w", *statementID, err)
		}
		if statement.BankLedgerID != ledger.BankLedgerID {
			return nil, fmt.Errorf("%w: statement %s does not belong to bank ledger %s", apperrors.ErrValidation, *statementID, ledger.BankLedgerID)
		}
	} else {
		statement, err = s.statementRepo.FindLatestStatement(ctx, ledger.BankLedgerID)
		if err != nil {
			return nil, fmt.Errorf("failed to find latest statement for bank ledger %s: %w", ledger.BankLedgerID, err)
		}
	}

	reconciled, unreconciled, err := s.ledgerRepo.CountCashLegsInPeriod(ctx, ledger.BankLedgerID, statement.PeriodStart, statement.PeriodEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to count cash legs: %w", err)
	}

	difference := ledger.CurrentBalance.Sub(statement.ClosingBalance)
	summary := &domain.ReconciliationSummary{
		BankLedgerID:      ledger.BankLedgerID,
		StatementID:       &statement.StatementID,
		OpeningBalance:    statement.OpeningBalance,
		ClosingBalance:    statement.ClosingBalance,
		BookBalance:       ledger.CurrentBalance,
		BalanceDifference: difference,
		ReconciledCount:   reconciled,
		UnreconciledCount: unreconciled,
		IsReconciled:      unreconciled == 0 && difference.Abs().LessThan(balanceTolerance),
	}
	return summary, nil
}
