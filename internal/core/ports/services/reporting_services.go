package services

import (
	"context"
	"time"

	"github.com/propfolio/property_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CashFlowClassifier buckets an account's activity into Operating, Investing
// or Financing. The default implementation honors an explicit account-level
// cash-flow category and falls back to a name heuristic; callers may inject
// their own policy.
type CashFlowClassifier interface {
	Classify(account domain.ChartAccount) domain.CashFlowCategory
}

// ReportingSvcFacade defines the balance calculator and statement generator.
// All operations are pure reads over a consistent snapshot.
type ReportingSvcFacade interface {
	// AccountBalance folds the account's entries with the normal-side rule,
	// optionally as of a date.
	AccountBalance(ctx context.Context, entityID string, accountID string, asOf *time.Time) (decimal.Decimal, error)

	// TrialBalance lists every active account's balance split into debit/credit
	// columns plus totals. A totals mismatch is surfaced as ErrIntegrity.
	TrialBalance(ctx context.Context, entityID string, asOf time.Time) (*domain.TrialBalanceReport, error)

	// FinancialSummary aggregates into the five classes and checks the
	// accounting equation.
	FinancialSummary(ctx context.Context, entityID string) (*domain.FinancialSummary, error)

	// IncomeStatement itemizes revenue and expenses over a period.
	IncomeStatement(ctx context.Context, entityID string, from, to time.Time) (*domain.IncomeStatementReport, error)

	// BalanceSheet states financial position as of a date.
	BalanceSheet(ctx context.Context, entityID string, asOf time.Time) (*domain.BalanceSheetReport, error)

	// CashFlowStatement nets activity into the three buckets using the
	// configured classifier.
	CashFlowStatement(ctx context.Context, entityID string, from, to time.Time) (*domain.CashFlowReport, error)
}
