package accounting

import (
	"testing"

	"github.com/propfolio/property_ledger/internal/apperrors"
	"github.com/propfolio/property_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func debitEntry(amount string) domain.LedgerEntry {
	return domain.LedgerEntry{
		DebitAmount:     decimal.RequireFromString(amount),
		CreditAmount:    decimal.Zero,
		Amount:          decimal.RequireFromString(amount),
		TransactionType: domain.Debit,
	}
}

func creditEntry(amount string) domain.LedgerEntry {
	return domain.LedgerEntry{
		DebitAmount:     decimal.Zero,
		CreditAmount:    decimal.RequireFromString(amount),
		Amount:          decimal.RequireFromString(amount),
		TransactionType: domain.Credit,
	}
}

func TestCalculateSignedAmount(t *testing.T) {
	tests := []struct {
		name        string
		entry       domain.LedgerEntry
		accountType domain.AccountType
		want        string
		wantErr     bool
	}{
		{name: "debit to asset is positive", entry: debitEntry("100.00"), accountType: domain.Asset, want: "100.00"},
		{name: "credit to asset is negative", entry: creditEntry("100.00"), accountType: domain.Asset, want: "-100.00"},
		{name: "debit to expense is positive", entry: debitEntry("42.50"), accountType: domain.Expense, want: "42.50"},
		{name: "debit to liability is negative", entry: debitEntry("75.00"), accountType: domain.Liability, want: "-75.00"},
		{name: "credit to revenue is positive", entry: creditEntry("1500.00"), accountType: domain.Revenue, want: "1500.00"},
		{name: "credit to equity is positive", entry: creditEntry("9000.00"), accountType: domain.Equity, want: "9000.00"},
		{name: "unknown account type", entry: debitEntry("1.00"), accountType: domain.AccountType("BOGUS"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CalculateSignedAmount(tt.entry, tt.accountType)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s, want %s", got, tt.want)
		})
	}
}

func TestValidateBalancedSet_Success(t *testing.T) {
	entries := []domain.LedgerEntry{
		debitEntry("1500.00"),
		creditEntry("1500.00"),
	}

	check, err := ValidateBalancedSet(entries)
	assert.NoError(t, err)
	assert.True(t, check.IsValid)
	assert.True(t, check.TotalDebits.Equal(decimal.RequireFromString("1500.00")))
	assert.True(t, check.TotalCredits.Equal(decimal.RequireFromString("1500.00")))
	assert.True(t, check.Difference.IsZero())
}

func TestValidateBalancedSet_MultiLeg(t *testing.T) {
	// One debit split across three credits
	entries := []domain.LedgerEntry{
		debitEntry("2750.00"),
		creditEntry("1500.00"),
		creditEntry("1200.00"),
		creditEntry("50.00"),
	}

	check, err := ValidateBalancedSet(entries)
	assert.NoError(t, err)
	assert.True(t, check.IsValid)
}

func TestValidateBalancedSet_Unbalanced(t *testing.T) {
	entries := []domain.LedgerEntry{
		debitEntry("100.00"),
		creditEntry("99.99"),
	}

	check, err := ValidateBalancedSet(entries)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.False(t, check.IsValid)
	assert.True(t, check.Difference.Equal(decimal.RequireFromString("0.01")), "difference should be exactly 0.01, got %s", check.Difference)
}

func TestValidateBalancedSet_TooFewEntries(t *testing.T) {
	_, err := ValidateBalancedSet([]domain.LedgerEntry{debitEntry("100.00")})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = ValidateBalancedSet(nil)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestValidateBalancedSet_BothSidesSet(t *testing.T) {
	bad := domain.LedgerEntry{
		DebitAmount:  decimal.RequireFromString("100.00"),
		CreditAmount: decimal.RequireFromString("100.00"),
	}
	_, err := ValidateBalancedSet([]domain.LedgerEntry{bad, creditEntry("100.00")})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestValidateBalancedSet_NeitherSideSet(t *testing.T) {
	empty := domain.LedgerEntry{}
	_, err := ValidateBalancedSet([]domain.LedgerEntry{empty, creditEntry("100.00")})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestValidateBalancedSet_NegativeAmount(t *testing.T) {
	bad := domain.LedgerEntry{
		DebitAmount: decimal.RequireFromString("-100.00"),
	}
	_, err := ValidateBalancedSet([]domain.LedgerEntry{bad, creditEntry("100.00")})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
