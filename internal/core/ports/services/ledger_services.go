package services

import (
	"context"

	"github.com/propfolio/property_ledger/internal/core/domain"
	"github.com/propfolio/property_ledger/internal/dto"
)

// LedgerSvcFacade defines the operations of the ledger entry service.
// All mutations are atomic: either the whole balanced set commits together
// with the bank ledger balance update, or nothing does.
type LedgerSvcFacade interface {
	// CreateBankLedger registers a bank account linked to an Asset GL account.
	CreateBankLedger(ctx context.Context, entityID string, req dto.CreateBankLedgerRequest, creatorUserID string) (*domain.BankLedger, error)

	// GetBankLedgerByID retrieves a bank ledger scoped to the entity.
	GetBankLedgerByID(ctx context.Context, entityID string, bankLedgerID string) (*domain.BankLedger, error)

	// ListBankLedgers retrieves all active bank ledgers of an entity.
	ListBankLedgers(ctx context.Context, entityID string) ([]domain.BankLedger, error)

	// CreateBalancedSet validates and persists a balanced set of entries.
	CreateBalancedSet(ctx context.Context, entityID string, req dto.CreateBalancedSetRequest, creatorUserID string) ([]domain.LedgerEntry, error)

	// RecordSimpleTransaction derives the two-leg pair for a deposit,
	// withdrawal or payment and delegates to CreateBalancedSet.
	RecordSimpleTransaction(ctx context.Context, entityID string, req dto.SimpleTransactionRequest, creatorUserID string) ([]domain.LedgerEntry, error)

	// RecordCheckDeposit records a multi-check deposit as a single balanced set
	// with one debit cash leg and one credit per check.
	RecordCheckDeposit(ctx context.Context, entityID string, req dto.CheckDepositRequest, creatorUserID string) ([]domain.LedgerEntry, error)

	// DeleteEntry removes an entry and reverses its balance effect; entries that
	// are part of a reconciliation are rejected with ErrConflict.
	DeleteEntry(ctx context.Context, entityID string, entryID string) error

	// ListEntries retrieves a filtered, paginated list of entries.
	ListEntries(ctx context.Context, entityID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}
