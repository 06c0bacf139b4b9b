package repositories

import (
	"context"
	"time"

	"github.com/propfolio/property_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EntryFilter is the typed filter for ledger entry queries. A nil field means
// "no restriction". Entity scope is never part of the filter: repositories
// derive it by joining through the owning bank ledger.
type EntryFilter struct {
	BankLedgerID   *string
	ChartAccountID *string
	From           *time.Time
	To             *time.Time
	Reconciled     *bool
}

// BankLedgerReader defines read operations for bank ledger data
type BankLedgerReader interface {
	// FindBankLedgerByID retrieves a bank ledger by its unique identifier.
	FindBankLedgerByID(ctx context.Context, bankLedgerID string) (*domain.BankLedger, error)

	// ListBankLedgers retrieves all active bank ledgers for an entity.
	ListBankLedgers(ctx context.Context, entityID string) ([]domain.BankLedger, error)
}

// BankLedgerWriter defines write operations for bank ledger data
type BankLedgerWriter interface {
	// SaveBankLedger persists a new bank ledger.
	SaveBankLedger(ctx context.Context, ledger domain.BankLedger) error
}

// LedgerEntryReader defines read operations for ledger entry data
type LedgerEntryReader interface {
	// FindEntryByID retrieves a single ledger entry.
	FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error)

	// ListEntries retrieves a paginated list of entries for an entity using
	// token-based pagination, restricted by the given filter.
	ListEntries(ctx context.Context, entityID string, filter EntryFilter, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)

	// FindUnreconciledCashLegs retrieves the unreconciled cash-leg entries of a
	// bank ledger, optionally restricted to a date range.
	FindUnreconciledCashLegs(ctx context.Context, bankLedgerID string, from, to *time.Time) ([]domain.LedgerEntry, error)

	// CountCashLegsInPeriod returns reconciled and unreconciled cash-leg counts
	// for a bank ledger within a period.
	CountCashLegsInPeriod(ctx context.Context, bankLedgerID string, from, to time.Time) (reconciled int, unreconciled int, err error)
}

// LedgerEntryWriter defines write operations for ledger entry data.
// Implementations must apply entry writes and the owning bank ledger's balance
// delta inside one database transaction, locking the bank ledger row so that
// concurrent writers to the same ledger serialize.
type LedgerEntryWriter interface {
	// SaveEntries persists a validated balanced set and applies the cash-leg
	// balance delta to each affected bank ledger.
	SaveEntries(ctx context.Context, entries []domain.LedgerEntry, balanceDeltas map[string]decimal.Decimal) error

	// DeleteEntry removes an entry and reverses its balance delta on the owning
	// bank ledger atomically.
	DeleteEntry(ctx context.Context, entry domain.LedgerEntry, balanceDelta decimal.Decimal) error
}

// LedgerRepositoryFacade combines all ledger-related repository interfaces
type LedgerRepositoryFacade interface {
	BankLedgerReader
	BankLedgerWriter
	LedgerEntryReader
	LedgerEntryWriter
}

// LedgerRepositoryWithTx extends LedgerRepositoryFacade with transaction capabilities
type LedgerRepositoryWithTx interface {
	LedgerRepositoryFacade
	TransactionManager
}
