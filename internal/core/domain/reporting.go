package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrialBalanceRow represents a single row in a trial balance report.
// A non-zero account balance lands in exactly one of the two columns,
// according to the account's normal side.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalanceReport is the full trial balance including the totals row.
type TrialBalanceReport struct {
	AsOf        time.Time         `json:"asOf"`
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
}

// AccountAmount represents an account with its net amount for financial reports.
type AccountAmount struct {
	AccountID string          `json:"accountID"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	NetAmount decimal.Decimal `json:"netAmount"`
}

// FinancialSummary aggregates the trial balance into the five account classes
// and checks the accounting equation Assets = Liabilities + Equity + NetIncome.
type FinancialSummary struct {
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal `json:"totalEquity"`
	TotalRevenue     decimal.Decimal `json:"totalRevenue"`
	TotalExpenses    decimal.Decimal `json:"totalExpenses"`
	NetIncome        decimal.Decimal `json:"netIncome"`
	IsBalanced       bool            `json:"isBalanced"`
	Discrepancy      decimal.Decimal `json:"discrepancy"` // Zero when the equation holds
}

// IncomeStatementReport itemizes revenue and expenses over a period.
type IncomeStatementReport struct {
	From          time.Time       `json:"from"`
	To            time.Time       `json:"to"`
	Revenue       []AccountAmount `json:"revenue"`
	Expenses      []AccountAmount `json:"expenses"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetIncome     decimal.Decimal `json:"netIncome"`
}

// BalanceSheetReport states financial position as of a date.
type BalanceSheetReport struct {
	AsOf                      time.Time       `json:"asOf"`
	Assets                    []AccountAmount `json:"assets"`
	Liabilities               []AccountAmount `json:"liabilities"`
	Equity                    []AccountAmount `json:"equity"`
	TotalAssets               decimal.Decimal `json:"totalAssets"`
	TotalLiabilities          decimal.Decimal `json:"totalLiabilities"`
	TotalEquity               decimal.Decimal `json:"totalEquity"`
	TotalLiabilitiesAndEquity decimal.Decimal `json:"totalLiabilitiesAndEquity"`
}

// CashFlowReport nets entry activity into the three standard buckets.
type CashFlowReport struct {
	From        time.Time       `json:"from"`
	To          time.Time       `json:"to"`
	Operating   decimal.Decimal `json:"operating"`
	Investing   decimal.Decimal `json:"investing"`
	Financing   decimal.Decimal `json:"financing"`
	NetCashFlow decimal.Decimal `json:"netCashFlow"`
}

// MatchCandidate is one bank transaction considered for a ledger entry,
// with its heuristic confidence in [0, 1].
type MatchCandidate struct {
	BankTransaction BankTransaction `json:"bankTransaction"`
	Confidence      decimal.Decimal `json:"confidence"`
}

// MatchSuggestion lists candidate bank transactions for one unreconciled
// ledger entry, best candidate first. Suggestions are advisory only.
type MatchSuggestion struct {
	Entry      LedgerEntry      `json:"entry"`
	Candidates []MatchCandidate `json:"candidates"`
}

// ReconciliationSummary reports the reconciliation position of a bank ledger
// against a statement.
type ReconciliationSummary struct {
	BankLedgerID      string          `json:"bankLedgerID"`
	StatementID       *string         `json:"statementID"`
	OpeningBalance    decimal.Decimal `json:"openingBalance"`
	ClosingBalance    decimal.Decimal `json:"closingBalance"`
	BookBalance       decimal.Decimal `json:"bookBalance"`
	BalanceDifference decimal.Decimal `json:"balanceDifference"`
	ReconciledCount   int             `json:"reconciledCount"`
	UnreconciledCount int             `json:"unreconciledCount"`
	IsReconciled      bool            `json:"isReconciled"`
}
