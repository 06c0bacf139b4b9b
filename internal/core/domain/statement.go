package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankStatement is an imported statement for one bank ledger covering one period.
// No two statements for the same bank ledger may have overlapping periods.
type BankStatement struct {
	StatementID    string            `json:"statementID"` // Primary Key (UUID)
	BankLedgerID   string            `json:"bankLedgerID"`
	PeriodStart    time.Time         `json:"periodStart"`
	PeriodEnd      time.Time         `json:"periodEnd"`
	OpeningBalance decimal.Decimal   `json:"openingBalance"`
	ClosingBalance decimal.Decimal   `json:"closingBalance"`
	Transactions   []BankTransaction `json:"transactions,omitempty"`
	AuditFields
}

// BankTransaction is a single line on an imported bank statement.
// Amount is signed from the bank's perspective: positive for money in,
// negative for money out.
type BankTransaction struct {
	TransactionID   string           `json:"transactionID"` // Primary Key (UUID)
	StatementID     string           `json:"statementID"`
	TransactionDate time.Time        `json:"transactionDate"`
	Amount          decimal.Decimal  `json:"amount"`
	Description     string           `json:"description"`
	ReferenceNumber *string          `json:"referenceNumber"`
	RunningBalance  *decimal.Decimal `json:"runningBalance"` // As reported by the bank, if present
}
