package billing

import "testing"

func TestNearestNickel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"12.43", "12.45"},
		{"18.92", "18.90"},
		{"10.00", "10.00"},
		{"0.02", "0.00"},
		{"0.03", "0.05"},
		{"7.78", "7.80"},
		{"7.72", "7.70"},
	}
	for _, tt := range tests {
		got := NearestNickel(dec(tt.in))
		if got.StringFixed(2) != tt.want {
			t.Errorf("NearestNickel(%s) = %s, want %s", tt.in, got.StringFixed(2), tt.want)
		}
	}
}

func TestNearestNickelIdempotent(t *testing.T) {
	inputs := []string{"12.43", "18.92", "0.01", "99.97", "5.125", "3.33"}
	for _, in := range inputs {
		once := NearestNickel(dec(in))
		twice := NearestNickel(once)
		if !once.Equal(twice) {
			t.Errorf("NearestNickel not idempotent for %s: once=%s twice=%s", in, once, twice)
		}
	}
}

func TestDecimalBucket(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"69.11", "69.10"},
		{"69.12", "69.10"},
		{"69.13", "69.15"},
		{"69.14", "69.15"},
		{"69.16", "69.15"},
		{"69.17", "69.15"},
		{"69.18", "69.20"},
		{"69.19", "69.20"},
		{"69.05", "69.05"},
		{"69.10", "69.10"},
		{"69.15", "69.15"},
		{"42.00", "42.00"},
	}
	for _, tt := range tests {
		got := DecimalBucket(dec(tt.in))
		if got.StringFixed(2) != tt.want {
			t.Errorf("DecimalBucket(%s) = %s, want %s", tt.in, got.StringFixed(2), tt.want)
		}
	}
}

func TestRoundForCashTenderSelectsStrategy(t *testing.T) {
	in := dec("69.13")
	// The two policies disagree on this input; callers must get the one
	// they asked for.
	if got := RoundForCashTender(in, RoundNearestNickel); got.StringFixed(2) != "69.15" {
		t.Errorf("nearest nickel: got %s, want 69.15", got.StringFixed(2))
	}
	if got := RoundForCashTender(in, RoundDecimalBucket); got.StringFixed(2) != "69.15" {
		t.Errorf("decimal bucket: got %s, want 69.15", got.StringFixed(2))
	}

	in = dec("69.12")
	if got := RoundForCashTender(in, RoundNearestNickel); got.StringFixed(2) != "69.10" {
		t.Errorf("nearest nickel: got %s, want 69.10", got.StringFixed(2))
	}
	if got := RoundForCashTender(in, RoundDecimalBucket); got.StringFixed(2) != "69.10" {
		t.Errorf("decimal bucket: got %s, want 69.10", got.StringFixed(2))
	}

	if got := RoundForCashTender(dec("5.678"), RoundNone); got.StringFixed(2) != "5.68" {
		t.Errorf("none: got %s, want plain 2dp rounding 5.68", got.StringFixed(2))
	}
}

func TestFormatPercentage(t *testing.T) {
	if got := FormatPercentage(0, 0); !got.IsZero() {
		t.Errorf("FormatPercentage(0, 0) = %s, want 0", got)
	}
	if got := FormatPercentage(1, 4); got.StringFixed(1) != "25.0" {
		t.Errorf("FormatPercentage(1, 4) = %s, want 25.0", got.StringFixed(1))
	}
	if got := FormatPercentage(1, 3); got.StringFixed(1) != "33.3" {
		t.Errorf("FormatPercentage(1, 3) = %s, want 33.3", got.StringFixed(1))
	}
}

func TestFormatCurrency(t *testing.T) {
	if got := FormatCurrency("RM", dec("12.4")); got != "RM12.40" {
		t.Errorf("FormatCurrency = %q, want RM12.40", got)
	}
}
