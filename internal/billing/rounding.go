package billing

import "github.com/shopspring/decimal"

// RoundingStrategy names a cash-rounding policy. Two policies coexist:
// receipts printed at the payment counter use the decimal-bucket rule,
// while reports and most other displays use nearest-nickel. They disagree
// on some inputs and are deliberately kept distinct; callers select one
// explicitly.
type RoundingStrategy string

const (
	RoundNone          RoundingStrategy = "none"
	RoundNearestNickel RoundingStrategy = "nearest_nickel"
	RoundDecimalBucket RoundingStrategy = "decimal_bucket"
)

// RoundForCashTender applies the named rounding strategy to an amount.
// Unknown strategies fall back to plain 2-decimal rounding.
func RoundForCashTender(amount decimal.Decimal, strategy RoundingStrategy) decimal.Decimal {
	switch strategy {
	case RoundNearestNickel:
		return NearestNickel(amount)
	case RoundDecimalBucket:
		return DecimalBucket(amount)
	default:
		return amount.Round(2)
	}
}

var twenty = decimal.NewFromInt(20)

// NearestNickel rounds to the nearest 0.05 currency unit: round(x*20)/20.
// Idempotent: applying it twice equals applying it once.
func NearestNickel(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(twenty).Round(0).Div(twenty)
}

// DecimalBucket implements the payment-counter rounding rule. The
// hundredths digit pair of the 2-decimal amount selects the rounded
// fraction: {11,12} round to .10, {13,14,16,17} to .15, {18,19} to .20.
// Any other pair is left at the standard half-up 2-decimal rounding.
func DecimalBucket(amount decimal.Decimal) decimal.Decimal {
	rounded := amount.Round(2)
	cents := rounded.Mul(decimal.NewFromInt(100)).IntPart()
	pair := cents % 100
	if pair < 0 {
		pair += 100
	}
	whole := rounded.Sub(decimal.New(pair, -2))

	switch pair {
	case 11, 12:
		return whole.Add(decimal.New(10, -2))
	case 13, 14, 16, 17:
		return whole.Add(decimal.New(15, -2))
	case 18, 19:
		return whole.Add(decimal.New(20, -2))
	default:
		return rounded
	}
}
