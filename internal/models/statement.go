package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankStatement is the bank_statements table row.
type BankStatement struct {
	StatementID    string
	BankLedgerID   string
	PeriodStart    time.Time
	PeriodEnd      time.Time
	OpeningBalance decimal.Decimal
	ClosingBalance decimal.Decimal
	AuditFields
}

// BankTransaction is the bank_transactions table row.
type BankTransaction struct {
	TransactionID   string
	StatementID     string
	TransactionDate time.Time
	Amount          decimal.Decimal
	Description     string
	ReferenceNumber *string
	RunningBalance  *decimal.Decimal
}

// BankReconciliation is the bank_reconciliations table row.
type BankReconciliation struct {
	ReconciliationID   string
	BankLedgerID       string
	StatementID        string
	ReconciliationDate time.Time
	Status             string
	AuditFields
}

// ReconciliationMatch is the reconciliation_matches table row.
type ReconciliationMatch struct {
	MatchID           string
	ReconciliationID  string
	LedgerEntryID     string
	BankTransactionID string
	MatchNotes        *string
}
