package repositories

import (
	"context"
	"time"

	"github.com/propfolio/property_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountActivity is the raw debit/credit totals for one account over a range.
type AccountActivity struct {
	Account     domain.ChartAccount
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

// ReportingRepository defines operations for retrieving financial report data.
// All queries scope by entity through the chart account's entity_id and only
// consider entries whose owning bank ledger belongs to the same entity.
type ReportingRepository interface {
	// GetAccountActivity retrieves total debits and credits for one account,
	// optionally restricted to entries on or before asOf.
	GetAccountActivity(ctx context.Context, entityID string, accountID string, asOf *time.Time) (*AccountActivity, error)

	// GetTrialBalanceData retrieves per-account debit and credit totals for all
	// active accounts of an entity as of a specific date.
	GetTrialBalanceData(ctx context.Context, entityID string, asOf time.Time) ([]AccountActivity, error)

	// GetIncomeStatementData retrieves activity for Revenue and Expense accounts
	// within a period.
	GetIncomeStatementData(ctx context.Context, entityID string, from, to time.Time) ([]AccountActivity, error)

	// GetBalanceSheetData retrieves activity for Asset, Liability and Equity
	// accounts as of a specific date.
	GetBalanceSheetData(ctx context.Context, entityID string, asOf time.Time) ([]AccountActivity, error)

	// GetCashFlowData retrieves activity within a period for all accounts that
	// are not a bank ledger's linked GL cash account. The cash effect of an
	// account is its credits minus debits.
	GetCashFlowData(ctx context.Context, entityID string, from, to time.Time) ([]AccountActivity, error)
}
