package billing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Tender constants for payment methods.
const (
	TenderCash = "cash"
	TenderCard = "card"
	TenderTNG  = "tng"
)

// ErrInvalidDiscount is returned when a discount exceeds the configured
// maximum or the bill total. Discounts are rejected, never silently
// clamped, so the cashier sees why the bill did not change.
var ErrInvalidDiscount = errors.New("invalid discount")

// LineItem is a single billable order line: quantity at the unit price
// captured when the item was ordered.
type LineItem struct {
	Quantity  int
	UnitPrice decimal.Decimal
}

// Subtotal returns the undiscounted sum of quantity times unit price over
// all items, at 2 decimal places. An empty item list yields zero.
func Subtotal(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		line := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(line)
	}
	return total.Round(2)
}

// TaxBreakdown carries a bill's subtotal and the two configured surcharges,
// displayed separately on receipts.
type TaxBreakdown struct {
	Subtotal         decimal.Decimal `json:"subtotal"`
	TaxAmount        decimal.Decimal `json:"tax_amount"`
	ServiceTaxAmount decimal.Decimal `json:"service_tax_amount"`
	Total            decimal.Decimal `json:"total"`
}

// ApplyTaxes computes the tax and service tax surcharges on a subtotal.
// Rates are fractional (0.06 for 6%) and come from configuration; they are
// trusted as-is, so a misconfigured rate produces a wrong total rather
// than an error.
func ApplyTaxes(subtotal, taxRate, serviceTaxRate decimal.Decimal) TaxBreakdown {
	taxAmount := subtotal.Mul(taxRate).Round(2)
	serviceTaxAmount := subtotal.Mul(serviceTaxRate).Round(2)
	return TaxBreakdown{
		Subtotal:         subtotal,
		TaxAmount:        taxAmount,
		ServiceTaxAmount: serviceTaxAmount,
		Total:            subtotal.Add(taxAmount).Add(serviceTaxAmount),
	}
}

// DiscountKind enumerates the discount reasons a cashier may pick. All but
// Custom map to a configured percentage; Custom takes a literal amount.
type DiscountKind string

const (
	DiscountBirthday  DiscountKind = "birthday"
	DiscountStaff     DiscountKind = "staff"
	DiscountReview    DiscountKind = "review"
	DiscountComplaint DiscountKind = "complaint"
	DiscountCustom    DiscountKind = "custom"
)

// ValidDiscountKind reports whether kind is a known discount kind.
func ValidDiscountKind(kind DiscountKind) bool {
	switch kind {
	case DiscountBirthday, DiscountStaff, DiscountReview, DiscountComplaint, DiscountCustom:
		return true
	default:
		return false
	}
}

// DiscountConfig holds the configured percentage per discount kind and the
// maximum discount amount allowed on a single bill.
type DiscountConfig struct {
	Percentages map[DiscountKind]decimal.Decimal
	MaxAmount   decimal.Decimal
}

// Discount is a cashier's discount directive. Amount is only consulted for
// DiscountCustom; the other kinds derive their amount from configuration.
type Discount struct {
	Kind   DiscountKind
	Amount decimal.Decimal
	Reason string
}

// DiscountResult is the outcome of applying a discount: the computed
// discount amount, the new total, and the reason recorded for the receipt.
type DiscountResult struct {
	Amount   decimal.Decimal
	NewTotal decimal.Decimal
	Reason   string
}

// ApplyDiscount computes the discount for the given directive against a
// bill total. It returns ErrInvalidDiscount when the discount would exceed
// the configured maximum or the bill total; a bill can never go negative.
func ApplyDiscount(total decimal.Decimal, d Discount, cfg DiscountConfig) (DiscountResult, error) {
	if !ValidDiscountKind(d.Kind) {
		return DiscountResult{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidDiscount, d.Kind)
	}

	var amount decimal.Decimal
	if d.Kind == DiscountCustom {
		amount = d.Amount.Round(2)
	} else {
		percent, ok := cfg.Percentages[d.Kind]
		if !ok {
			return DiscountResult{}, fmt.Errorf("%w: no percentage configured for kind %q", ErrInvalidDiscount, d.Kind)
		}
		amount = total.Mul(percent).Div(decimal.NewFromInt(100)).Round(2)
	}

	if amount.IsNegative() {
		return DiscountResult{}, fmt.Errorf("%w: discount amount must not be negative", ErrInvalidDiscount)
	}
	if cfg.MaxAmount.IsPositive() && amount.GreaterThan(cfg.MaxAmount) {
		return DiscountResult{}, fmt.Errorf("%w: %s exceeds maximum allowed %s", ErrInvalidDiscount, amount.StringFixed(2), cfg.MaxAmount.StringFixed(2))
	}
	if amount.GreaterThan(total) {
		return DiscountResult{}, fmt.Errorf("%w: %s exceeds bill total %s", ErrInvalidDiscount, amount.StringFixed(2), total.StringFixed(2))
	}

	reason := d.Reason
	if reason == "" {
		reason = string(d.Kind)
	}

	return DiscountResult{
		Amount:   amount,
		NewTotal: total.Sub(amount),
		Reason:   reason,
	}, nil
}
