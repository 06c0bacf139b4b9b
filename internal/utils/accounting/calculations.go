package accounting

import (
	"fmt"

	"github.com/propfolio/property_ledger/internal/apperrors"
	"github.com/propfolio/property_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceCheck is the result of validating a proposed balanced set.
type BalanceCheck struct {
	IsValid      bool            `json:"isValid"`
	TotalDebits  decimal.Decimal `json:"totalDebits"`
	TotalCredits decimal.Decimal `json:"totalCredits"`
	Difference   decimal.Decimal `json:"difference"` // TotalDebits - TotalCredits
}

// CalculateSignedAmount applies the correct sign to an entry amount based on
// account type and transaction type. This is used in both services and
// repositories to ensure consistent accounting logic.
//
// DEBIT to ASSET/EXPENSE -> Positive (+)
// CREDIT to ASSET/EXPENSE -> Negative (-)
// DEBIT to LIABILITY/EQUITY/REVENUE -> Negative (-)
// CREDIT to LIABILITY/EQUITY/REVENUE -> Positive (+)
func CalculateSignedAmount(entry domain.LedgerEntry, accountType domain.AccountType) (decimal.Decimal, error) {
	signedAmount := entry.Amount
	isDebit := entry.TransactionType == domain.Debit

	switch accountType {
	case domain.Asset, domain.Expense:
		if !isDebit { // Credit to Asset/Expense
			signedAmount = signedAmount.Neg()
		}
	case domain.Liability, domain.Equity, domain.Revenue:
		if isDebit { // Debit to Liability/Equity/Revenue
			signedAmount = signedAmount.Neg()
		}
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s' encountered for account ID %s", accountType, entry.ChartAccountID)
	}
	return signedAmount, nil
}

// ValidateBalancedSet verifies a proposed list of entries forms a balanced
// double-entry transaction set. It is a pure function with no side effects and
// must run before any persistence.
//
// Rules: every entry has exactly one of debit/credit non-zero and positive,
// and the debit and credit totals must be exactly equal at the smallest
// currency unit (no tolerance).
func ValidateBalancedSet(entries []domain.LedgerEntry) (BalanceCheck, error) {
	check := BalanceCheck{
		TotalDebits:  decimal.Zero,
		TotalCredits: decimal.Zero,
	}

	if len(entries) < 2 {
		return check, fmt.Errorf("%w: a balanced set requires at least two entries", apperrors.ErrValidation)
	}

	for i, entry := range entries {
		hasDebit := !entry.DebitAmount.IsZero()
		hasCredit := !entry.CreditAmount.IsZero()
		if hasDebit == hasCredit {
			// Both set or both zero
			return check, fmt.Errorf("%w: entry %d must have exactly one of debit/credit non-zero", apperrors.ErrValidation, i)
		}
		if entry.DebitAmount.IsNegative() || entry.CreditAmount.IsNegative() {
			return check, fmt.Errorf("%w: entry %d amounts must be positive", apperrors.ErrValidation, i)
		}
		check.TotalDebits = check.TotalDebits.Add(entry.DebitAmount)
		check.TotalCredits = check.TotalCredits.Add(entry.CreditAmount)
	}

	check.Difference = check.TotalDebits.Sub(check.TotalCredits)
	if !check.Difference.IsZero() {
		return check, fmt.Errorf("%w: debits %s do not equal credits %s (difference %s)",
			apperrors.ErrValidation, check.TotalDebits.String(), check.TotalCredits.String(), check.Difference.String())
	}

	check.IsValid = true
	return check, nil
}
