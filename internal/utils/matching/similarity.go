package matching

import (
	"strings"
	"time"
	"unicode"

	"github.com/agnivade/levenshtein"
	"github.com/shopspring/decimal"
)

// Confidence score weights. The sum of the maxima is 1.0, so scores always
// land in [0, 1].
var (
	weightAmount      = decimal.RequireFromString("0.4")
	weightDateClose   = decimal.RequireFromString("0.3")  // within 1 day
	weightDateNear    = decimal.RequireFromString("0.15") // within 3 days
	weightDescription = decimal.RequireFromString("0.3")
)

// Normalize lower-cases a description and strips everything that is not a
// letter or digit, so that formatting noise ("Rent - Unit 4A" vs "RENT UNIT4A")
// does not defeat the similarity comparison.
func Normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// StringSimilarity returns the normalized Levenshtein similarity of two
// descriptions: 1 - distance/max(len1, len2) over their normalized forms.
// Two empty strings are considered identical.
func StringSimilarity(a, b string) decimal.Decimal {
	na, nb := Normalize(a), Normalize(b)
	maxLen := len([]rune(na))
	if l := len([]rune(nb)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return decimal.NewFromInt(1)
	}
	dist := levenshtein.ComputeDistance(na, nb)
	return decimal.NewFromInt(1).Sub(decimal.NewFromInt(int64(dist)).Div(decimal.NewFromInt(int64(maxLen))))
}

// DaysApart returns the absolute difference between two dates in whole days.
func DaysApart(a, b time.Time) int {
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return int(d.Hours() / 24)
}

// Confidence scores a candidate ledger-entry/bank-transaction pair:
// 0.4 for an exact absolute-amount match, 0.3 if the dates are within one day
// (0.15 within three days), and up to 0.3 for description similarity.
func Confidence(entryAmount, txnAmount decimal.Decimal, entryDate, txnDate time.Time, entryDesc, txnDesc string) decimal.Decimal {
	score := decimal.Zero

	if entryAmount.Abs().Equal(txnAmount.Abs()) {
		score = score.Add(weightAmount)
	}

	switch days := DaysApart(entryDate, txnDate); {
	case days <= 1:
		score = score.Add(weightDateClose)
	case days <= 3:
		score = score.Add(weightDateNear)
	}

	score = score.Add(weightDescription.Mul(StringSimilarity(entryDesc, txnDesc)))
	return score
}
