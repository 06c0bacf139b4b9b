package domain

// AccountType defines the fundamental accounting type of a chart account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// NormalSide is the debit or credit direction in which an account type
// naturally accumulates value.
type NormalSide string

const (
	DebitNormal  NormalSide = "DEBIT"
	CreditNormal NormalSide = "CREDIT"
)

// NormalSide returns the normal balance side for the account type.
// Asset and Expense accounts are debit-normal; Liability, Equity and
// Revenue accounts are credit-normal.
func (t AccountType) NormalSide() NormalSide {
	switch t {
	case Asset, Expense:
		return DebitNormal
	default:
		return CreditNormal
	}
}

// IsValid reports whether t is one of the five known account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// CashFlowCategory classifies an account's activity for the cash flow statement.
// Unset accounts fall back to the classifier's heuristic.
type CashFlowCategory string

const (
	CashFlowUnset     CashFlowCategory = ""
	CashFlowOperating CashFlowCategory = "OPERATING"
	CashFlowInvesting CashFlowCategory = "INVESTING"
	CashFlowFinancing CashFlowCategory = "FINANCING"
)

// ChartAccount represents one account in an entity's chart of accounts.
// Code is unique per entity and determines ordering in reports.
type ChartAccount struct {
	AccountID        string           `json:"accountID"`        // Primary Key (UUID)
	EntityID         string           `json:"entityID"`         // Owning entity (NON-NULL)
	Code             string           `json:"code"`             // Numeric code, unique per entity
	Name             string           `json:"name"`             // User-defined name
	AccountType      AccountType      `json:"accountType"`      // ASSET, LIABILITY, etc.
	ParentAccountID  *string          `json:"parentAccountID"`  // Nullable self-reference
	CashFlowCategory CashFlowCategory `json:"cashFlowCategory"` // Optional explicit cash-flow bucket
	IsActive         bool             `json:"isActive"`
	AuditFields
}
