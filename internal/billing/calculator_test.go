package billing

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestSubtotal(t *testing.T) {
	tests := []struct {
		name  string
		items []LineItem
		want  string
	}{
		{"empty list", nil, "0.00"},
		{"single item", []LineItem{{Quantity: 2, UnitPrice: dec("4.50")}}, "9.00"},
		{
			"multiple items",
			[]LineItem{
				{Quantity: 1, UnitPrice: dec("12.90")},
				{Quantity: 3, UnitPrice: dec("2.50")},
				{Quantity: 2, UnitPrice: dec("0.00")},
			},
			"20.40",
		},
		{"zero quantity contributes nothing", []LineItem{{Quantity: 0, UnitPrice: dec("99.99")}}, "0.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Subtotal(tt.items)
			if got.StringFixed(2) != tt.want {
				t.Errorf("Subtotal() = %s, want %s", got.StringFixed(2), tt.want)
			}
		})
	}
}

func TestApplyTaxes(t *testing.T) {
	b := ApplyTaxes(dec("100.00"), dec("0.06"), dec("0.10"))
	if b.TaxAmount.StringFixed(2) != "6.00" {
		t.Errorf("TaxAmount = %s, want 6.00", b.TaxAmount.StringFixed(2))
	}
	if b.ServiceTaxAmount.StringFixed(2) != "10.00" {
		t.Errorf("ServiceTaxAmount = %s, want 10.00", b.ServiceTaxAmount.StringFixed(2))
	}
	if b.Total.StringFixed(2) != "116.00" {
		t.Errorf("Total = %s, want 116.00", b.Total.StringFixed(2))
	}
}

func TestApplyTaxesZeroRates(t *testing.T) {
	b := ApplyTaxes(dec("48.70"), decimal.Zero, decimal.Zero)
	if !b.Total.Equal(dec("48.70")) {
		t.Errorf("Total with zero rates = %s, want 48.70", b.Total)
	}
}

func testDiscountConfig() DiscountConfig {
	return DiscountConfig{
		Percentages: map[DiscountKind]decimal.Decimal{
			DiscountBirthday:  dec("10"),
			DiscountStaff:     dec("20"),
			DiscountReview:    dec("5"),
			DiscountComplaint: dec("15"),
		},
		MaxAmount: dec("50.00"),
	}
}

func TestApplyDiscount(t *testing.T) {
	cfg := testDiscountConfig()

	tests := []struct {
		name       string
		total      string
		discount   Discount
		wantAmount string
		wantTotal  string
		wantErr    bool
	}{
		{"birthday percent", "50.00", Discount{Kind: DiscountBirthday}, "5.00", "45.00", false},
		{"staff percent", "100.00", Discount{Kind: DiscountStaff}, "20.00", "80.00", false},
		{"custom amount", "30.00", Discount{Kind: DiscountCustom, Amount: dec("7.50")}, "7.50", "22.50", false},
		{"custom exceeds total", "50.00", Discount{Kind: DiscountCustom, Amount: dec("60.00")}, "", "", true},
		{"custom exceeds cap", "500.00", Discount{Kind: DiscountCustom, Amount: dec("55.00")}, "", "", true},
		{"negative amount", "50.00", Discount{Kind: DiscountCustom, Amount: dec("-1.00")}, "", "", true},
		{"unknown kind", "50.00", Discount{Kind: DiscountKind("loyalty")}, "", "", true},
		{"full custom discount allowed", "40.00", Discount{Kind: DiscountCustom, Amount: dec("40.00")}, "40.00", "0.00", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ApplyDiscount(dec(tt.total), tt.discount, cfg)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDiscount) {
					t.Fatalf("ApplyDiscount() error = %v, want ErrInvalidDiscount", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ApplyDiscount() unexpected error: %v", err)
			}
			if got.Amount.StringFixed(2) != tt.wantAmount {
				t.Errorf("Amount = %s, want %s", got.Amount.StringFixed(2), tt.wantAmount)
			}
			if got.NewTotal.StringFixed(2) != tt.wantTotal {
				t.Errorf("NewTotal = %s, want %s", got.NewTotal.StringFixed(2), tt.wantTotal)
			}
		})
	}
}

func TestApplyDiscountRecordsReason(t *testing.T) {
	cfg := testDiscountConfig()

	got, err := ApplyDiscount(dec("50.00"), Discount{Kind: DiscountBirthday, Reason: "birthday of guest"}, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Reason != "birthday of guest" {
		t.Errorf("Reason = %q, want explicit reason preserved", got.Reason)
	}

	got, err = ApplyDiscount(dec("50.00"), Discount{Kind: DiscountStaff}, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Reason != "staff" {
		t.Errorf("Reason = %q, want kind name as fallback", got.Reason)
	}
}
