package domain_test

import (
	"testing"

	"github.com/propfolio/property_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLedgerEntry_SignedAmount(t *testing.T) {
	tests := []struct {
		name  string
		entry domain.LedgerEntry
		want  string
	}{
		{
			name: "debit entry is positive",
			entry: domain.LedgerEntry{
				DebitAmount:     decimal.RequireFromString("1500.00"),
				CreditAmount:    decimal.Zero,
				TransactionType: domain.Debit,
			},
			want: "1500.00",
		},
		{
			name: "credit entry is negative",
			entry: domain.LedgerEntry{
				DebitAmount:     decimal.Zero,
				CreditAmount:    decimal.RequireFromString("85.00"),
				TransactionType: domain.Credit,
			},
			want: "-85.00",
		},
		{
			name:  "empty entry is zero",
			entry: domain.LedgerEntry{},
			want:  "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.entry.SignedAmount()
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s, want %s", got, tt.want)
		})
	}
}

func TestLedgerEntry_IsCashLeg(t *testing.T) {
	ledger := domain.BankLedger{
		BankLedgerID:   "bl-1",
		ChartAccountID: "acc-cash",
	}

	cashLeg := domain.LedgerEntry{BankLedgerID: "bl-1", ChartAccountID: "acc-cash"}
	counterLeg := domain.LedgerEntry{BankLedgerID: "bl-1", ChartAccountID: "acc-rent"}

	assert.True(t, cashLeg.IsCashLeg(ledger))
	assert.False(t, counterLeg.IsCashLeg(ledger))
}

func TestAccountType_NormalSide(t *testing.T) {
	assert.Equal(t, domain.DebitNormal, domain.Asset.NormalSide())
	assert.Equal(t, domain.DebitNormal, domain.Expense.NormalSide())
	assert.Equal(t, domain.CreditNormal, domain.Liability.NormalSide())
	assert.Equal(t, domain.CreditNormal, domain.Equity.NormalSide())
	assert.Equal(t, domain.CreditNormal, domain.Revenue.NormalSide())
}
