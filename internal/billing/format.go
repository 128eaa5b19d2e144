package billing

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// FormatCurrency renders an amount with the configured currency symbol at
// 2 decimal places, e.g. "RM12.45".
func FormatCurrency(symbol string, amount decimal.Decimal) string {
	return symbol + amount.StringFixed(2)
}

// FormatPercentage returns count as a percentage of total, rounded to one
// decimal place. A zero total yields zero rather than a division fault.
func FormatPercentage(count, total int64) decimal.Decimal {
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(count).Mul(hundred).Div(decimal.NewFromInt(total)).Round(1)
}
