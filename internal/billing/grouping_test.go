package billing

import (
	"testing"
	"time"
)

func at(hour, min, sec int) time.Time {
	return time.Date(2025, 3, 14, hour, min, sec, 0, time.UTC)
}

func TestGroupPaymentsMergedBillUsesLatestAmount(t *testing.T) {
	payments := []PaymentRecord{
		{ID: 1, TableNumber: 5, Amount: dec("9.46"), Method: TenderCash, PaidAt: at(14, 30, 5)},
		{ID: 2, TableNumber: 5, Amount: dec("18.92"), Method: TenderCash, PaidAt: at(14, 30, 42)},
	}

	groups := GroupPayments(payments)
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	g := groups[0]
	if g.DisplayAmount.StringFixed(2) != "18.92" {
		t.Errorf("DisplayAmount = %s, want latest payment amount 18.92", g.DisplayAmount.StringFixed(2))
	}
	if g.NaiveSum.StringFixed(2) != "28.38" {
		t.Errorf("NaiveSum = %s, want 28.38", g.NaiveSum.StringFixed(2))
	}
	if len(g.Payments) != 2 || g.Payments[0].ID != 1 || g.Payments[1].ID != 2 {
		t.Errorf("group members should be in chronological order")
	}
}

func TestGroupPaymentsSeparatesTablesAndMinutes(t *testing.T) {
	payments := []PaymentRecord{
		{ID: 1, TableNumber: 5, Amount: dec("10.00"), Method: TenderCard, PaidAt: at(14, 30, 10)},
		{ID: 2, TableNumber: 6, Amount: dec("20.00"), Method: TenderCard, PaidAt: at(14, 30, 20)},
		{ID: 3, TableNumber: 5, Amount: dec("30.00"), Method: TenderCard, PaidAt: at(14, 31, 5)},
	}

	groups := GroupPayments(payments)
	if len(groups) != 3 {
		t.Fatalf("expected 3 separate groups, got %d", len(groups))
	}
	// Most recent minute first.
	if groups[0].TableNumber != 5 || !groups[0].Minute.Equal(at(14, 31, 0)) {
		t.Errorf("groups should be ordered most recent first, got table %d at %v", groups[0].TableNumber, groups[0].Minute)
	}
}

func TestGroupPaymentsSingleMember(t *testing.T) {
	received := dec("50.00")
	change := dec("1.10")
	payments := []PaymentRecord{
		{
			ID: 7, TableNumber: 2, Amount: dec("48.90"), Method: TenderCash,
			CashReceived: &received, ChangeAmount: &change, PaidAt: at(12, 1, 30),
		},
	}

	groups := GroupPayments(payments)
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	g := groups[0]
	if g.DisplayAmount.StringFixed(2) != "48.90" {
		t.Errorf("DisplayAmount = %s, want 48.90", g.DisplayAmount.StringFixed(2))
	}
	if g.CashReceived == nil || g.CashReceived.StringFixed(2) != "50.00" {
		t.Errorf("CashReceived should carry through for cash tender")
	}
	if g.ChangeAmount == nil || g.ChangeAmount.StringFixed(2) != "1.10" {
		t.Errorf("ChangeAmount should carry through for cash tender")
	}
}

func TestGroupPaymentsWalletTenderHasNoCashFields(t *testing.T) {
	ref := "TNG-8891"
	payments := []PaymentRecord{
		{ID: 1, TableNumber: 9, Amount: dec("23.10"), Method: TenderTNG, WalletReference: &ref, PaidAt: at(19, 5, 2)},
		{ID: 2, TableNumber: 9, Amount: dec("23.10"), Method: TenderTNG, WalletReference: &ref, PaidAt: at(19, 5, 40)},
	}

	groups := GroupPayments(payments)
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	g := groups[0]
	if g.CashReceived != nil {
		t.Errorf("CashReceived for tng must be nil (not applicable), got %s", g.CashReceived)
	}
	if g.ChangeAmount != nil {
		t.Errorf("ChangeAmount for tng must be nil (not applicable), got %s", g.ChangeAmount)
	}
	if len(g.Methods) != 1 || g.Methods[0] != TenderTNG {
		t.Errorf("Methods = %v, want [tng]", g.Methods)
	}
}

func TestGroupPaymentsEmptyInput(t *testing.T) {
	groups := GroupPayments(nil)
	if len(groups) != 0 {
		t.Errorf("expected no groups for empty input, got %d", len(groups))
	}
}

func TestGroupPaymentsMixedMethods(t *testing.T) {
	payments := []PaymentRecord{
		{ID: 1, TableNumber: 3, Amount: dec("15.00"), Method: TenderCard, PaidAt: at(20, 10, 1)},
		{ID: 2, TableNumber: 3, Amount: dec("40.00"), Method: TenderCash, PaidAt: at(20, 10, 50)},
	}

	groups := GroupPayments(payments)
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	if len(groups[0].Methods) != 2 {
		t.Errorf("Methods = %v, want both tenders listed", groups[0].Methods)
	}
	if groups[0].DisplayAmount.StringFixed(2) != "40.00" {
		t.Errorf("DisplayAmount = %s, want latest 40.00", groups[0].DisplayAmount.StringFixed(2))
	}
}
