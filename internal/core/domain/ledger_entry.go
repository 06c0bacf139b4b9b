package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a ledger entry is a Debit or a Credit.
type TransactionType string

const (
	Debit  TransactionType = "DEBIT"
	Credit TransactionType = "CREDIT"
)

// SimpleTransactionType names the convenience shapes the ledger service can
// derive a two-leg balanced pair from.
type SimpleTransactionType string

const (
	Deposit    SimpleTransactionType = "DEPOSIT"
	Withdrawal SimpleTransactionType = "WITHDRAWAL"
	Payment    SimpleTransactionType = "PAYMENT"
)

// AdjustmentType tags out-of-band bank transactions recorded during reconciliation.
type AdjustmentType string

const (
	AdjustmentBankFee    AdjustmentType = "BANK_FEE"
	AdjustmentInterest   AdjustmentType = "INTEREST"
	AdjustmentNSFFee     AdjustmentType = "NSF_FEE"
	AdjustmentCorrection AdjustmentType = "CORRECTION"
	AdjustmentOther      AdjustmentType = "OTHER"
)

// LedgerEntry is a single leg of a balanced transaction set. Exactly one of
// DebitAmount/CreditAmount is non-zero; Amount mirrors the non-zero side and
// TransactionType records which side it is.
//
// Entries are soft-immutable: once reconciled they may only be undone through
// a compensating entry, never edited or deleted in place.
type LedgerEntry struct {
	EntryID         string          `json:"entryID"`      // Primary Key (UUID)
	BankLedgerID    string          `json:"bankLedgerID"` // FK -> BankLedger (Not Null)
	ChartAccountID  string          `json:"chartAccountID"`
	DebitAmount     decimal.Decimal `json:"debitAmount"`
	CreditAmount    decimal.Decimal `json:"creditAmount"`
	Amount          decimal.Decimal `json:"amount"` // The non-zero side
	TransactionType TransactionType `json:"transactionType"`
	Description     string          `json:"description"`
	TransactionDate time.Time       `json:"transactionDate"`
	ReferenceID     *string         `json:"referenceID"`     // Nullable link to an external record
	ReferenceNumber *string         `json:"referenceNumber"` // Nullable check/reference number
	Reconciled      bool            `json:"reconciled"`
	RunningBalance  decimal.Decimal `json:"runningBalance"` // Bank balance after this entry (cash legs only)
	AuditFields
}

// SignedAmount returns the entry's effect on its bank ledger balance:
// debit minus credit.
func (e LedgerEntry) SignedAmount() decimal.Decimal {
	return e.DebitAmount.Sub(e.CreditAmount)
}

// IsCashLeg reports whether the entry moves the owning bank ledger's balance,
// i.e. its chart account is the ledger's linked GL cash account.
func (e LedgerEntry) IsCashLeg(ledger BankLedger) bool {
	return e.ChartAccountID == ledger.ChartAccountID
}
