package dto

import (
	"time"

	"github.com/propfolio/property_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BankTransactionInput is one statement line in an import request.
type BankTransactionInput struct {
	TransactionDate time.Time        `json:"transactionDate" binding:"required" time_format:"2006-01-02"`
	Amount          decimal.Decimal  `json:"amount" binding:"required"`
	Description     string           `json:"description" binding:"required"`
	ReferenceNumber *string          `json:"referenceNumber"`
	RunningBalance  *decimal.Decimal `json:"runningBalance"`
}

// ImportStatementRequest is the payload for importing a bank statement.
type ImportStatementRequest struct {
	BankLedgerID   string                 `json:"bankLedgerID" binding:"required"`
	PeriodStart    time.Time              `json:"periodStart" binding:"required" time_format:"2006-01-02"`
	PeriodEnd      time.Time              `json:"periodEnd" binding:"required" time_format:"2006-01-02"`
	OpeningBalance decimal.Decimal        `json:"openingBalance"`
	ClosingBalance decimal.Decimal        `json:"closingBalance"`
	Transactions   []BankTransactionInput `json:"transactions" binding:"required,dive"`
}

// MatchInput proposes one ledger-entry/bank-transaction pairing.
type MatchInput struct {
	LedgerEntryID     string  `json:"ledgerEntryID" binding:"required"`
	BankTransactionID string  `json:"bankTransactionID" binding:"required"`
	MatchNotes        *string `json:"matchNotes"`
}

// CreateReconciliationRequest records a set of confirmed matches against a
// statement.
type CreateReconciliationRequest struct {
	BankLedgerID string       `json:"bankLedgerID" binding:"required"`
	StatementID  string       `json:"statementID" binding:"required"`
	Matches      []MatchInput `json:"matches" binding:"required,min=1,dive"`
}

// AdjustmentRequest records an out-of-band bank transaction (fee, interest)
// discovered during reconciliation.
type AdjustmentRequest struct {
	Type             domain.AdjustmentType `json:"type" binding:"required,oneof=BANK_FEE INTEREST NSF_FEE CORRECTION OTHER"`
	BankLedgerID     string                `json:"bankLedgerID" binding:"required"`
	CounterAccountID string                `json:"counterAccountID" binding:"required"`
	Amount           decimal.Decimal       `json:"amount" binding:"required"`
	Description      string                `json:"description" binding:"required"`
	Date             time.Time             `json:"date" binding:"required" time_format:"2006-01-02"`
}
