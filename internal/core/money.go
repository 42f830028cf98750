package core

import "github.com/shopspring/decimal"

// FormatCurrency renders an amount with two fixed decimals and the sign ahead
// of the dollar symbol: 9835 -> "$9835.00", -500 -> "-$500.00".
// Rounding happens here and nowhere earlier.
func FormatCurrency(d decimal.Decimal) string {
	rounded := d.Round(2)
	if rounded.IsNegative() {
		return "-$" + rounded.Neg().StringFixed(2)
	}
	return "$" + rounded.StringFixed(2)
}
