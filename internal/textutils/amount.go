// Package textutils holds the per-line heuristics of the leak engine: amount
// parsing, debit/credit direction and merchant labels.
package textutils

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// numberPattern matches a thousands-grouped amount (1,234.56), a lakh-grouped
// one (1,50,000.00) or a plain one (1234.56 / 1234). The grouped forms need at
// least one comma group so that a plain 50000 is not cut short to 500.
const numberPattern = `(\d{1,3}(?:,\d{3})+(?:\.\d{2})?|\d{1,2}(?:,\d{2})+,\d{3}(?:\.\d{2})?|\d+(?:\.\d{2})?)`

var (
	markedAmountRe = regexp.MustCompile(`(?:₹|\bRs\.?|\bINR)\s*` + numberPattern)
	plainAmountRe  = regexp.MustCompile(numberPattern)
)

// ParseAmount extracts the monetary amount of a statement line. The first
// amount carrying a currency marker (₹, Rs, Rs., INR) wins; without any
// marker the first bare number wins. ok is false when nothing parses or the
// amount is zero; callers skip such lines.
//
// A line showing both an amount and a running balance is ambiguous and the
// earlier figure is used.
func ParseAmount(line string) (amount decimal.Decimal, ok bool) {
	m := markedAmountRe.FindStringSubmatch(line)
	if m == nil {
		m = plainAmountRe.FindStringSubmatch(line)
	}
	if m == nil {
		return decimal.Zero, false
	}

	amount, err := decimal.NewFromString(strings.ReplaceAll(m[1], ",", ""))
	if err != nil || !amount.IsPositive() {
		return decimal.Zero, false
	}
	return amount, true
}
