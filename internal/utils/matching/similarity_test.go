package matching

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Rent - Unit 4A", "rentunit4a"},
		{"RENT UNIT4A", "rentunit4a"},
		{"CHECK #1042", "check1042"},
		{"  ", ""},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), "Normalize(%q)", tt.in)
	}
}

func TestStringSimilarity(t *testing.T) {
	// Identical after normalization
	sim := StringSimilarity("Rent - Unit 4A", "RENT UNIT4A")
	assert.True(t, sim.Equal(decimal.NewFromInt(1)), "normalized-identical strings should score 1, got %s", sim)

	// Completely different
	sim = StringSimilarity("abcd", "wxyz")
	assert.True(t, sim.IsZero(), "disjoint strings should score 0, got %s", sim)

	// Both empty
	sim = StringSimilarity("", "- -")
	assert.True(t, sim.Equal(decimal.NewFromInt(1)), "two empty normalized strings are identical")

	// Partial overlap scores strictly between 0 and 1
	sim = StringSimilarity("Plumbing repair unit 2B", "Plumbing repair 2B")
	assert.True(t, sim.GreaterThan(decimal.Zero) && sim.LessThan(decimal.NewFromInt(1)),
		"partial overlap should land in (0, 1), got %s", sim)
}

func TestDaysApart(t *testing.T) {
	base := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, DaysApart(base, base))
	assert.Equal(t, 2, DaysApart(base, base.AddDate(0, 0, 2)))
	assert.Equal(t, 2, DaysApart(base.AddDate(0, 0, 2), base), "order should not matter")
	assert.Equal(t, 0, DaysApart(base, base.Add(12*time.Hour)), "partial days round down")
}

func TestConfidence_ExactMatchScenario(t *testing.T) {
	// Entry "Rent - Unit 4A" for 250.00 two days before the bank shows
	// "RENT UNIT4A" for the same amount: 0.4 + 0.15 + 0.3*1.0 = 0.85.
	entryDate := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	txnDate := time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)

	score := Confidence(
		decimal.RequireFromString("250.00"), decimal.RequireFromString("250.00"),
		entryDate, txnDate,
		"Rent - Unit 4A", "RENT UNIT4A",
	)
	assert.True(t, score.Equal(decimal.RequireFromString("0.85")), "expected 0.85, got %s", score)
}

func TestConfidence_PerfectMatch(t *testing.T) {
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	score := Confidence(
		decimal.RequireFromString("1500.00"), decimal.RequireFromString("1500.00"),
		date, date,
		"March rent", "March rent",
	)
	assert.True(t, score.Equal(decimal.NewFromInt(1)), "expected 1, got %s", score)
}

func TestConfidence_AmountMismatch(t *testing.T) {
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	score := Confidence(
		decimal.RequireFromString("1500.00"), decimal.RequireFromString("1500.01"),
		date, date,
		"March rent", "March rent",
	)
	// No amount weight, but full date and description credit: 0.3 + 0.3.
	assert.True(t, score.Equal(decimal.RequireFromString("0.6")), "expected 0.6, got %s", score)
}

func TestConfidence_SignInsensitiveAmount(t *testing.T) {
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	// A withdrawal leg (credit, negative signed amount) against a negative
	// bank amount still counts as an exact amount match.
	score := Confidence(
		decimal.RequireFromString("-85.00"), decimal.RequireFromString("85.00"),
		date, date,
		"Bank fee", "SERVICE FEE",
	)
	assert.True(t, score.GreaterThanOrEqual(decimal.RequireFromString("0.7")),
		"amount and date should contribute 0.7 regardless of sign, got %s", score)
}

func TestConfidence_DateTiers(t *testing.T) {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	amt := decimal.RequireFromString("100.00")

	within1 := Confidence(amt, amt, base, base.AddDate(0, 0, 1), "x", "x")
	within3 := Confidence(amt, amt, base, base.AddDate(0, 0, 3), "x", "x")
	beyond := Confidence(amt, amt, base, base.AddDate(0, 0, 10), "x", "x")

	assert.True(t, within1.Equal(decimal.RequireFromString("1")), "got %s", within1)
	assert.True(t, within3.Equal(decimal.RequireFromString("0.85")), "got %s", within3)
	assert.True(t, beyond.Equal(decimal.RequireFromString("0.7")), "got %s", beyond)
}
