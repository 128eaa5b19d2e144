package services

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"resto_pos_backend/internal/billing"
	"resto_pos_backend/internal/models"
)

func testTaxSettings() *models.TaxSettings {
	return &models.TaxSettings{
		TaxRate:                  decimal.NewFromFloat(0.06),
		ServiceTaxRate:           decimal.NewFromFloat(0.10),
		CurrencySymbol:           "RM",
		DiscountsEnabled:         true,
		DiscountBirthdayPercent:  decimal.NewFromInt(10),
		DiscountStaffPercent:     decimal.NewFromInt(20),
		DiscountReviewPercent:    decimal.NewFromInt(5),
		DiscountComplaintPercent: decimal.NewFromInt(15),
		MaxDiscountAmount:        decimal.NewFromInt(50),
	}
}

func testPaymentService() *paymentService {
	return &paymentService{settings: &settingsService{}}
}

func orderLine(qty int, price string) models.OrderItem {
	p, err := decimal.NewFromString(price)
	if err != nil {
		panic(err)
	}
	return models.OrderItem{Quantity: qty, UnitPrice: p}
}

func TestComputeTotals(t *testing.T) {
	svc := testPaymentService()
	ts := testTaxSettings()

	items := []models.OrderItem{orderLine(2, "10.00"), orderLine(1, "5.50")}
	totals, err := svc.computeTotals(items, nil, ts, Actor{})
	if err != nil {
		t.Fatalf("computeTotals returned error: %v", err)
	}

	if got, want := totals.Subtotal.StringFixed(2), "25.50"; got != want {
		t.Errorf("Subtotal = %s, want %s", got, want)
	}
	if got, want := totals.TaxAmount.StringFixed(2), "1.53"; got != want {
		t.Errorf("TaxAmount = %s, want %s", got, want)
	}
	if got, want := totals.ServiceTaxAmount.StringFixed(2), "2.55"; got != want {
		t.Errorf("ServiceTaxAmount = %s, want %s", got, want)
	}
	if got, want := totals.GrandTotal.StringFixed(2), "29.58"; got != want {
		t.Errorf("GrandTotal = %s, want %s", got, want)
	}
	if !totals.DiscountAmount.IsZero() {
		t.Errorf("DiscountAmount = %s, want 0", totals.DiscountAmount)
	}
}

func TestComputeTotalsCashRounding(t *testing.T) {
	svc := testPaymentService()
	ts := testTaxSettings()
	ts.TaxRate = decimal.Zero
	ts.ServiceTaxRate = decimal.Zero

	tests := []struct {
		price string
		want  string
	}{
		{"69.11", "69.10"},
		{"69.13", "69.15"},
		{"69.18", "69.20"},
		{"69.05", "69.05"},
	}
	for _, tt := range tests {
		items := []models.OrderItem{orderLine(1, tt.price)}
		totals, err := svc.computeTotals(items, nil, ts, Actor{})
		if err != nil {
			t.Fatalf("computeTotals(%s) returned error: %v", tt.price, err)
		}
		if got := totals.CashRoundedTotal.StringFixed(2); got != tt.want {
			t.Errorf("CashRoundedTotal for %s = %s, want %s", tt.price, got, tt.want)
		}
	}
}

func TestComputeTotalsPercentDiscount(t *testing.T) {
	svc := testPaymentService()
	ts := testTaxSettings()
	actor := Actor{Username: "aina", Permissions: []string{models.PermDiscountsApply}}

	items := []models.OrderItem{orderLine(2, "10.00"), orderLine(1, "5.50")}
	directive := &DiscountDirective{Kind: billing.DiscountBirthday}

	totals, err := svc.computeTotals(items, directive, ts, actor)
	if err != nil {
		t.Fatalf("computeTotals returned error: %v", err)
	}
	if got, want := totals.DiscountAmount.StringFixed(2), "2.96"; got != want {
		t.Errorf("DiscountAmount = %s, want %s", got, want)
	}
	if got, want := totals.GrandTotal.StringFixed(2), "26.62"; got != want {
		t.Errorf("GrandTotal after discount = %s, want %s", got, want)
	}
	if totals.DiscountReason == "" {
		t.Error("DiscountReason should default to the discount kind")
	}
}

func TestComputeTotalsDiscountGates(t *testing.T) {
	svc := testPaymentService()
	items := []models.OrderItem{orderLine(1, "50.00")}
	directive := &DiscountDirective{Kind: billing.DiscountStaff}

	t.Run("disabled in settings", func(t *testing.T) {
		ts := testTaxSettings()
		ts.DiscountsEnabled = false
		actor := Actor{Permissions: []string{models.PermDiscountsApply}}
		_, err := svc.computeTotals(items, directive, ts, actor)
		if !errors.Is(err, ErrDiscountsDisabled) {
			t.Errorf("expected ErrDiscountsDisabled, got %v", err)
		}
	})

	t.Run("missing permission", func(t *testing.T) {
		ts := testTaxSettings()
		actor := Actor{Permissions: []string{models.PermOrdersManage}}
		_, err := svc.computeTotals(items, directive, ts, actor)
		if !errors.Is(err, ErrDiscountNotAllowed) {
			t.Errorf("expected ErrDiscountNotAllowed, got %v", err)
		}
	})

	t.Run("custom discount over total is rejected", func(t *testing.T) {
		ts := testTaxSettings()
		ts.MaxDiscountAmount = decimal.NewFromInt(500)
		actor := Actor{Permissions: []string{models.PermDiscountsApply}}
		over := &DiscountDirective{Kind: billing.DiscountCustom, Amount: decimal.NewFromInt(100)}
		_, err := svc.computeTotals(items, over, ts, actor)
		if !errors.Is(err, billing.ErrInvalidDiscount) {
			t.Errorf("expected ErrInvalidDiscount, got %v", err)
		}
	})
}

func TestValidTender(t *testing.T) {
	tests := []struct {
		method string
		want   bool
	}{
		{billing.TenderCash, true},
		{billing.TenderCard, true},
		{billing.TenderTNG, true},
		{"cheque", false},
		{"", false},
		{"CASH", false},
	}
	for _, tt := range tests {
		if got := ValidTender(tt.method); got != tt.want {
			t.Errorf("ValidTender(%q) = %v, want %v", tt.method, got, tt.want)
		}
	}
}

func TestActorCan(t *testing.T) {
	actor := Actor{Permissions: []string{models.PermOrdersManage, models.PermDiscountsApply}}
	if !actor.Can(models.PermDiscountsApply) {
		t.Error("expected actor to hold discounts.apply")
	}
	if actor.Can(models.PermSettingsManage) {
		t.Error("actor should not hold settings.manage")
	}
	if (Actor{}).Can(models.PermOrdersManage) {
		t.Error("empty actor should hold no permissions")
	}
}
