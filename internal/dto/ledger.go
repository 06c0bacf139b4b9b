package dto

import (
	"time"

	"github.com/propfolio/property_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EntryInput is one proposed leg of a balanced set. Exactly one of
// DebitAmount/CreditAmount must be non-zero; the validator enforces this.
type EntryInput struct {
	ChartAccountID  string          `json:"chartAccountID" binding:"required"`
	DebitAmount     decimal.Decimal `json:"debitAmount"`
	CreditAmount    decimal.Decimal `json:"creditAmount"`
	Description     string          `json:"description"`
	TransactionDate *time.Time      `json:"transactionDate"`
	ReferenceNumber *string         `json:"referenceNumber"`
}

// CreateBalancedSetRequest is the payload for recording a balanced set of
// ledger entries against one bank ledger.
type CreateBalancedSetRequest struct {
	BankLedgerID string       `json:"bankLedgerID" binding:"required"`
	Description  string       `json:"description" binding:"required"`
	Date         time.Time    `json:"date" binding:"required" time_format:"2006-01-02"`
	Entries      []EntryInput `json:"entries" binding:"required,min=2,dive"`
}

// SimpleTransactionRequest records a deposit, withdrawal or payment as a
// derived two-leg balanced pair.
type SimpleTransactionRequest struct {
	Type             domain.SimpleTransactionType `json:"type" binding:"required,oneof=DEPOSIT WITHDRAWAL PAYMENT"`
	BankLedgerID     string                       `json:"bankLedgerID" binding:"required"`
	CounterAccountID string                       `json:"counterAccountID" binding:"required"`
	Amount           decimal.Decimal              `json:"amount" binding:"required,dgt0"`
	Description      string                       `json:"description" binding:"required"`
	Date             time.Time                    `json:"date" binding:"required" time_format:"2006-01-02"`
	ReferenceNumber  *string                      `json:"referenceNumber"`
}

// CheckInput is one check within a batch deposit.
type CheckInput struct {
	Amount          decimal.Decimal `json:"amount" binding:"required,dgt0"`
	IncomeAccountID string          `json:"incomeAccountID" binding:"required"`
	CheckNumber     string          `json:"checkNumber" binding:"required"`
	Description     string          `json:"description"`
}

// CheckDepositRequest records a multi-check deposit: one debit to the bank for
// the total, one credit per check.
type CheckDepositRequest struct {
	BankLedgerID string       `json:"bankLedgerID" binding:"required"`
	DepositDate  time.Time    `json:"depositDate" binding:"required" time_format:"2006-01-02"`
	Checks       []CheckInput `json:"checks" binding:"required,min=1,dive"`
}

// CreateBankLedgerRequest is the payload for registering a bank account.
type CreateBankLedgerRequest struct {
	AccountName    string `json:"accountName" binding:"required"`
	AccountNumber  string `json:"accountNumber" binding:"required"`
	ChartAccountID string `json:"chartAccountID" binding:"required"`
}

// ListEntriesParams carries the typed filters and pagination for entry listing.
type ListEntriesParams struct {
	BankLedgerID   *string    `form:"bankLedgerID"`
	ChartAccountID *string    `form:"chartAccountID"`
	From           *time.Time `form:"from" time_format:"2006-01-02"`
	To             *time.Time `form:"to" time_format:"2006-01-02"`
	Reconciled     *bool      `form:"reconciled"`
	Limit          int        `form:"limit"`
	NextToken      *string    `form:"nextToken"`
}

// LedgerEntryResponse is the API representation of a ledger entry.
type LedgerEntryResponse struct {
	EntryID         string                 `json:"entryID"`
	BankLedgerID    string                 `json:"bankLedgerID"`
	ChartAccountID  string                 `json:"chartAccountID"`
	DebitAmount     decimal.Decimal        `json:"debitAmount"`
	CreditAmount    decimal.Decimal        `json:"creditAmount"`
	Amount          decimal.Decimal        `json:"amount"`
	TransactionType domain.TransactionType `json:"transactionType"`
	Description     string                 `json:"description"`
	TransactionDate string                 `json:"transactionDate"`
	ReferenceNumber *string                `json:"referenceNumber,omitempty"`
	Reconciled      bool                   `json:"reconciled"`
	RunningBalance  decimal.Decimal        `json:"runningBalance"`
	CreatedAt       time.Time              `json:"createdAt"`
	CreatedBy       string                 `json:"createdBy"`
}

// ToLedgerEntryResponse converts a domain LedgerEntry to its response form.
func ToLedgerEntryResponse(e *domain.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		EntryID:         e.EntryID,
		BankLedgerID:    e.BankLedgerID,
		ChartAccountID:  e.ChartAccountID,
		DebitAmount:     e.DebitAmount,
		CreditAmount:    e.CreditAmount,
		Amount:          e.Amount,
		TransactionType: e.TransactionType,
		Description:     e.Description,
		TransactionDate: e.TransactionDate.Format("2006-01-02"),
		ReferenceNumber: e.ReferenceNumber,
		Reconciled:      e.Reconciled,
		RunningBalance:  e.RunningBalance,
		CreatedAt:       e.CreatedAt,
		CreatedBy:       e.CreatedBy,
	}
}

// ToLedgerEntryResponses converts a slice of domain entries.
func ToLedgerEntryResponses(entries []domain.LedgerEntry) []LedgerEntryResponse {
	out := make([]LedgerEntryResponse, len(entries))
	for i := range entries {
		out[i] = ToLedgerEntryResponse(&entries[i])
	}
	return out
}

// ListEntriesResponse is a page of ledger entries.
type ListEntriesResponse struct {
	Entries   []LedgerEntryResponse `json:"entries"`
	NextToken *string               `json:"nextToken,omitempty"`
}
