package models

import "github.com/shopspring/decimal"

// Round2 rounds an amount half away from zero to two decimal places and
// converts it for JSON output.
func Round2(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
