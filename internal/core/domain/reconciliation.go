package domain

import "time"

// ReconciliationStatus is the state of a bank reconciliation.
// The only transition is IN_PROGRESS -> COMPLETED; COMPLETED is terminal.
type ReconciliationStatus string

const (
	ReconciliationInProgress ReconciliationStatus = "IN_PROGRESS"
	ReconciliationCompleted  ReconciliationStatus = "COMPLETED"
)

// BankReconciliation records the matching of ledger entries against one
// imported bank statement.
type BankReconciliation struct {
	ReconciliationID   string                `json:"reconciliationID"` // Primary Key (UUID)
	BankLedgerID       string                `json:"bankLedgerID"`
	StatementID        string                `json:"statementID"`
	ReconciliationDate time.Time             `json:"reconciliationDate"`
	Status             ReconciliationStatus  `json:"status"`
	Matches            []ReconciliationMatch `json:"matches,omitempty"`
	AuditFields
}

// ReconciliationMatch pairs one ledger entry with one bank transaction.
// A ledger entry or bank transaction appears in at most one active match.
type ReconciliationMatch struct {
	MatchID           string  `json:"matchID"` // Primary Key (UUID)
	ReconciliationID  string  `json:"reconciliationID"`
	LedgerEntryID     string  `json:"ledgerEntryID"`
	BankTransactionID string  `json:"bankTransactionID"`
	MatchNotes        *string `json:"matchNotes"`
}
