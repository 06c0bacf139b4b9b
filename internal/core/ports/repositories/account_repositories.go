package repositories

import (
	"context"
	"time"

	"github.com/propfolio/property_ledger/internal/core/domain"
)

// ChartAccountReader defines read operations for chart of accounts data
type ChartAccountReader interface {
	// FindAccountByID retrieves a specific chart account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.ChartAccount, error)

	// FindAccountByCode retrieves a chart account by its code within an entity.
	FindAccountByCode(ctx context.Context, entityID string, code string) (*domain.ChartAccount, error)

	// FindAccountsByIDs retrieves multiple chart accounts by their IDs.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.ChartAccount, error)

	// ListAccounts retrieves the chart of accounts for an entity, ordered by code.
	ListAccounts(ctx context.Context, entityID string, includeInactive bool) ([]domain.ChartAccount, error)
}

// ChartAccountWriter defines write operations for chart of accounts data
type ChartAccountWriter interface {
	// SaveAccount persists a new chart account.
	SaveAccount(ctx context.Context, account domain.ChartAccount) error

	// UpdateAccount updates an existing chart account's details.
	UpdateAccount(ctx context.Context, account domain.ChartAccount) error

	// DeactivateAccount marks a chart account as inactive.
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error
}

// ChartAccountRepositoryFacade combines all chart account repository interfaces
type ChartAccountRepositoryFacade interface {
	ChartAccountReader
	ChartAccountWriter
}
