package models

// AccountType mirrors domain.AccountType at the persistence layer.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// ChartAccount is the chart_accounts table row.
type ChartAccount struct {
	AccountID        string
	EntityID         string
	Code             string
	Name             string
	AccountType      AccountType
	ParentAccountID  *string
	CashFlowCategory string
	IsActive         bool
	AuditFields
}
