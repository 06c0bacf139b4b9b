package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType mirrors domain.TransactionType at the persistence layer.
type TransactionType string

const (
	Debit  TransactionType = "DEBIT"
	Credit TransactionType = "CREDIT"
)

// BankLedger is the bank_ledgers table row.
type BankLedger struct {
	BankLedgerID   string
	EntityID       string
	AccountName    string
	AccountNumber  string
	ChartAccountID string
	CurrentBalance decimal.Decimal
	IsActive       bool
	AuditFields
}

// LedgerEntry is the ledger_entries table row.
type LedgerEntry struct {
	EntryID         string
	BankLedgerID    string
	ChartAccountID  string
	DebitAmount     decimal.Decimal
	CreditAmount    decimal.Decimal
	Amount          decimal.Decimal
	TransactionType TransactionType
	Description     string
	TransactionDate time.Time
	ReferenceID     *string
	ReferenceNumber *string
	Reconciled      bool
	RunningBalance  decimal.Decimal
	AuditFields
}
