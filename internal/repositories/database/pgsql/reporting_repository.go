package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/propfolio/property_ledger/internal/apperrors"
	portsrepo "github.com/propfolio/property_ledger/internal/core/ports/repositories"
	"github.com/propfolio/property_ledger/internal/models"
	"github.com/propfolio/property_ledger/internal/utils/mapping"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// activitySelect returns per-account debit/credit totals for an entity.
// Accounts with no entries in range appear with zero totals.
const activitySelect = `
	SELECT
		a.account_id, a.entity_id, a.code, a.name, a.account_type, a.parent_account_id,
		a.cash_flow_category, a.is_active, a.created_at, a.created_by, a.last_updated_at, a.last_updated_by,
		COALESCE(SUM(e.debit_amount), 0) AS total_debit,
		COALESCE(SUM(e.credit_amount), 0) AS total_credit
	FROM chart_accounts a
	LEFT JOIN ledger_entries e ON e.chart_account_id = a.account_id
`

func scanAccountActivity(rows pgx.Rows) (*portsrepo.AccountActivity, error) {
	var m models.ChartAccount
	var activity portsrepo.AccountActivity
	err := rows.Scan(
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
		&activity.TotalDebit,
		&activity.TotalCredit,
	)
	if err != nil {
		return nil, err
	}
	activity.Account = mapping.ToDomainChartAccount(m)
	return &activity, nil
}

func (r *reportingRepository) queryActivities(ctx context.Context, query string, args ...interface{}) ([]portsrepo.AccountActivity, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying account activity: %w", err)
	}
	defer rows.Close()

	result := []portsrepo.AccountActivity{}
	for rows.Next() {
		activity, err := scanAccountActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning account activity row: %w", err)
		}
		result = append(result, *activity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account activity rows: %w", err)
	}

	return result, nil
}

// GetAccountActivity retrieves total debits and credits for one account,
// optionally restricted to entries on or before asOf.
func (r *reportingRepository) GetAccountActivity(ctx context.Context, entityID string, accountID string, asOf *time.Time) (*portsrepo.AccountActivity, error) {
	query := activitySelect + `
		WHERE a.entity_id = $1 AND a.account_id = $2
	`
	args := []interface{}{entityID, accountID}
	if asOf != nil {
		query = activitySelect + ` AND e.transaction_date <= $3
		WHERE a.entity_id = $1 AND a.account_id = $2
	`
		args = append(args, *asOf)
	}
	query += ` GROUP BY a.account_id`

	activities, err := r.queryActivities(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if len(activities) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &activities[0], nil
}

// GetTrialBalanceData retrieves per-account debit and credit totals for all
// accounts of an entity as of a specific date.
func (r *reportingRepository) GetTrialBalanceData(ctx context.Context, entityID string, asOf time.Time) ([]portsrepo.AccountActivity, error) {
	query := activitySelect + ` AND e.transaction_date <= $2
		WHERE a.entity_id = $1
		GROUP BY a.account_id
		ORDER BY a.code
	`
	return r.queryActivities(ctx, query, entityID, asOf)
}

// GetIncomeStatementData retrieves activity for Revenue and Expense accounts
// within a period.
func (r *reportingRepository) GetIncomeStatementData(ctx context.Context, entityID string, from, to time.Time) ([]portsrepo.AccountActivity, error) {
	query := activitySelect + ` AND e.transaction_date BETWEEN $2 AND $3
		WHERE a.entity_id = $1
		  AND a.account_type IN ('REVENUE', 'EXPENSE')
		GROUP BY a.account_id
		ORDER BY a.code
	`
	return r.queryActivities(ctx, query, entityID, from, to)
}

// GetBalanceSheetData retrieves activity for Asset, Liability and Equity
// accounts as of a specific date.
func (r *reportingRepository) GetBalanceSheetData(ctx context.Context, entityID string, asOf time.Time) ([]portsrepo.AccountActivity, error) {
	query := activitySelect + ` AND e.transaction_date <= $2
		WHERE a.entity_id = $1
		  AND a.account_type IN ('ASSET', 'LIABILITY', 'EQUITY')
		GROUP BY a.account_id
		ORDER BY a.code
	`
	return r.queryActivities(ctx, query, entityID, asOf)
}

// GetCashFlowData retrieves activity within a period for every account that is
// not a bank ledger's linked GL cash account. Cash legs are excluded because
// the cash flow statement explains the movement of the cash accounts through
// their counter activity.
func (r *reportingRepository) GetCashFlowData(ctx context.Context, entityID string, from, to time.Time) ([]portsrepo.AccountActivity, error) {
	query := activitySelect + ` AND e.transaction_date BETWEEN $2 AND $3
		WHERE a.entity_id = $1
		  AND a.account_id NOT IN (
			SELECT chart_account_id FROM bank_ledgers WHERE entity_id = $1
		  )
		GROUP BY a.account_id
		ORDER BY a.code
	`
	return r.queryActivities(ctx, query, entityID, from, to)
}
