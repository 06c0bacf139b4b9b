package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/propfolio/property_ledger/internal/apperrors"
	"github.com/propfolio/property_ledger/internal/core/domain"
	portsrepo "github.com/propfolio/property_ledger/internal/core/ports/repositories"
	"github.com/propfolio/property_ledger/internal/models"
	"github.com/propfolio/property_ledger/internal/utils/mapping"
)

type PgxChartAccountRepository struct {
	BaseRepository
}

// newPgxChartAccountRepository creates a new repository for chart of accounts data.
func newPgxChartAccountRepository(pool *pgxpool.Pool) portsrepo.ChartAccountRepositoryFacade {
	return &PgxChartAccountRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxChartAccountRepository implements portsrepo.ChartAccountRepositoryFacade
var _ portsrepo.ChartAccountRepositoryFacade = (*PgxChartAccountRepository)(nil)

const chartAccountColumns = `account_id, entity_id, code, name, account_type, parent_account_id, cash_flow_category, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanChartAccount(row pgx.Row) (*models.ChartAccount, error) {
	var m models.ChartAccount
	err := row.Scan(
		&m.AccountID,
		&m.EntityID,
		&m.Code,
		&m.Name,
		&m.AccountType,
		&m.ParentAccountID,
		&m.CashFlowCategory,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveAccount inserts a new chart account.
func (r *PgxChartAccountRepository) SaveAccount(ctx context.Context, account domain.ChartAccount) error {
	m := mapping.ToModelChartAccount(account)

	query := `
		INSERT INTO chart_accounts (` + chartAccountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.EntityID,
		m.Code,
		m.Name,
		m.AccountType,
		m.ParentAccountID,
		m.CashFlowCategory,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: account code %s already exists in entity %s", apperrors.ErrDuplicate, m.Code, m.EntityID)
		}
		return fmt.Errorf("failed to save account %s: %w", m.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves a chart account by its ID.
func (r *PgxChartAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.ChartAccount, error) {
	query := `SELECT ` + chartAccountColumns + ` FROM chart_accounts WHERE account_id = $1;`

	m, err := scanChartAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}

	acc := mapping.ToDomainChartAccount(*m)
	return &acc, nil
}

// FindAccountByCode retrieves a chart account by its code within an entity.
func (r *PgxChartAccountRepository) FindAccountByCode(ctx context.Context, entityID string, code string) (*domain.ChartAccount, error) {
	query := `SELECT ` + chartAccountColumns + ` FROM chart_accounts WHERE entity_id = $1 AND code = $2;`

	m, err := scanChartAccount(r.Pool.QueryRow(ctx, query, entityID, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by code %s in entity %s: %w", code, entityID, err)
	}

	acc := mapping.ToDomainChartAccount(*m)
	return &acc, nil
}

// FindAccountsByIDs retrieves multiple chart accounts keyed by their IDs.
// IDs with no matching row are simply absent from the result map.
func (r *PgxChartAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.ChartAccount, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.ChartAccount{}, nil
	}

	query := `SELECT ` + chartAccountColumns + ` FROM chart_accounts WHERE account_id = ANY($1);`

	rows, err := r.Pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by IDs: %w", err)
	}
	defer rows.Close()

	result := make(map[string]domain.ChartAccount, len(accountIDs))
	for rows.Next() {
		m, err := scanChartAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		result[m.AccountID] = mapping.ToDomainChartAccount(*m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}

	return result, nil
}

// ListAccounts retrieves the chart of accounts for an entity, ordered by code.
func (r *PgxChartAccountRepository) ListAccounts(ctx context.Context, entityID string, includeInactive bool) ([]domain.ChartAccount, error) {
	query := `SELECT ` + chartAccountColumns + ` FROM chart_accounts WHERE entity_id = $1`
	if !includeInactive {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY code;`

	rows, err := r.Pool.Query(ctx, query, entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts for entity %s: %w", entityID, err)
	}
	defer rows.Close()

	accounts := []domain.ChartAccount{}
	for rows.Next() {
		m, err := scanChartAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, mapping.ToDomainChartAccount(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}

	return accounts, nil
}

// UpdateAccount updates the mutable details of a chart account.
func (r *PgxChartAccountRepository) UpdateAccount(ctx context.Context, account domain.ChartAccount) error {
	m := mapping.ToModelChartAccount(account)

	query := `
		UPDATE chart_accounts
		SET name = $2,
		    parent_account_id = $3,
		    cash_flow_category = $4,
		    is_active = $5,
		    last_updated_at = $6,
		    last_updated_by = $7
		WHERE account_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.Name,
		m.ParentAccountID,
		m.CashFlowCategory,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update account %s: %w", m.AccountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateAccount marks a chart account inactive.
func (r *PgxChartAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	query := `
		UPDATE chart_accounts
		SET is_active = FALSE,
		    last_updated_at = $2,
		    last_updated_by = $3
		WHERE account_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, accountID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate account %s: %w", accountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
