package repositories

import (
	"context"
	"time"

	"github.com/propfolio/property_ledger/internal/core/domain"
)

// StatementReader defines read operations for bank statement data
type StatementReader interface {
	// FindStatementByID retrieves a statement and its transactions.
	FindStatementByID(ctx context.Context, statementID string) (*domain.BankStatement, error)

	// FindLatestStatement retrieves the most recent statement for a bank ledger,
	// or ErrNotFound when none exists.
	FindLatestStatement(ctx context.Context, bankLedgerID string) (*domain.BankStatement, error)

	// HasOverlappingStatement reports whether any statement for the bank ledger
	// overlaps the given period.
	HasOverlappingStatement(ctx context.Context, bankLedgerID string, start, end time.Time) (bool, error)

	// FindUnmatchedTransactions retrieves statement transactions not yet part of
	// an active reconciliation match.
	FindUnmatchedTransactions(ctx context.Context, bankLedgerID string) ([]domain.BankTransaction, error)
}

// StatementWriter defines write operations for bank statement data
type StatementWriter interface {
	// SaveStatement persists a statement and its owned transactions atomically.
	SaveStatement(ctx context.Context, statement domain.BankStatement) error
}

// StatementRepositoryFacade combines all statement repository interfaces
type StatementRepositoryFacade interface {
	StatementReader
	StatementWriter
}
