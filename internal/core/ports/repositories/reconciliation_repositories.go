package repositories

import (
	"context"

	"github.com/propfolio/property_ledger/internal/core/domain"
)

// ReconciliationReader defines read operations for reconciliation data
type ReconciliationReader interface {
	// FindReconciliationByID retrieves a reconciliation with its matches.
	FindReconciliationByID(ctx context.Context, reconciliationID string) (*domain.BankReconciliation, error)

	// FindReconciliationByStatement retrieves the reconciliation recorded against
	// a statement, or ErrNotFound when none exists.
	FindReconciliationByStatement(ctx context.Context, statementID string) (*domain.BankReconciliation, error)
}

// ReconciliationWriter defines write operations for reconciliation data.
// SaveReconciliation must, in one database transaction, insert the
// reconciliation and its matches and mark every matched ledger entry
// reconciled.
type ReconciliationWriter interface {
	SaveReconciliation(ctx context.Context, reconciliation domain.BankReconciliation, matches []domain.ReconciliationMatch) error

	// UpdateReconciliationStatus moves a reconciliation to the given status.
	UpdateReconciliationStatus(ctx context.Context, reconciliationID string, status domain.ReconciliationStatus, updatedBy string) error
}

// ReconciliationRepositoryFacade combines all reconciliation repository interfaces
type ReconciliationRepositoryFacade interface {
	ReconciliationReader
	ReconciliationWriter
}
