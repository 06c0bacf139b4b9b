package domain

import "github.com/shopspring/decimal"

// BankLedger represents a real bank account on which ledger entries are recorded.
//
// ChartAccountID links the bank account to its GL cash account (an Asset chart
// account). An entry moves CurrentBalance only when its chart account is this
// linked account ("cash leg"); counter legs never touch the balance.
//
// CurrentBalance is a cached derived value equal to the sum of all cash-leg
// signed amounts (debit minus credit). It is owned exclusively by the ledger
// repository, which updates it inside the same transaction as the entry writes.
type BankLedger struct {
	BankLedgerID   string          `json:"bankLedgerID"` // Primary Key (UUID)
	EntityID       string          `json:"entityID"`     // Owning entity (NON-NULL)
	AccountName    string          `json:"accountName"`
	AccountNumber  string          `json:"accountNumber"`
	ChartAccountID string          `json:"chartAccountID"` // FK -> ChartAccount (Asset)
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	IsActive       bool            `json:"isActive"`
	AuditFields
}
