package services

import (
	"context"

	"github.com/propfolio/property_ledger/internal/core/domain"
	"github.com/propfolio/property_ledger/internal/dto"
)

// ReconciliationSvcFacade defines the bank reconciliation engine.
type ReconciliationSvcFacade interface {
	// ImportStatement persists a statement and its transactions atomically;
	// an overlapping period for the same bank ledger is rejected with
	// ErrConflict.
	ImportStatement(ctx context.Context, entityID string, req dto.ImportStatementRequest, creatorUserID string) (*domain.BankStatement, error)

	// SuggestMatches pairs unreconciled ledger entries with candidate bank
	// transactions. Advisory only: it never reconciles anything.
	SuggestMatches(ctx context.Context, entityID string, bankLedgerID string) ([]domain.MatchSuggestion, error)

	// CreateReconciliation records confirmed matches, marks the ledger entries
	// reconciled and recomputes completeness.
	CreateReconciliation(ctx context.Context, entityID string, req dto.CreateReconciliationRequest, creatorUserID string) (*domain.BankReconciliation, error)

	// CreateAdjustmentEntry records an out-of-band bank transaction discovered
	// during reconciliation as a balanced pair with an audit prefix.
	CreateAdjustmentEntry(ctx context.Context, entityID string, req dto.AdjustmentRequest, creatorUserID string) ([]domain.LedgerEntry, error)

	// ReconciliationSummary reports balances and reconciled/unreconciled counts
	// for a bank ledger, against a specific statement or the latest one.
	ReconciliationSummary(ctx context.Context, entityID string, bankLedgerID string, statementID *string) (*domain.ReconciliationSummary, error)
}
