package services

import "testing"

func TestValidOrderStatus(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{StatusPending, true},
		{StatusProcessing, true},
		{StatusCompleted, true},
		{StatusCancelled, true},
		{"paid", false},
		{"", false},
		{"Pending", false},
	}
	for _, tt := range tests {
		if got := ValidOrderStatus(tt.status); got != tt.want {
			t.Errorf("ValidOrderStatus(%q) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestValidStatusTransition(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		want bool
	}{
		{"pending to processing", StatusPending, StatusProcessing, true},
		{"pending to completed", StatusPending, StatusCompleted, true},
		{"pending to cancelled", StatusPending, StatusCancelled, true},
		{"processing to completed", StatusProcessing, StatusCompleted, true},
		{"processing to cancelled", StatusProcessing, StatusCancelled, true},
		{"processing back to pending", StatusProcessing, StatusPending, false},
		{"completed is terminal", StatusCompleted, StatusPending, false},
		{"completed to cancelled", StatusCompleted, StatusCancelled, false},
		{"cancelled is terminal", StatusCancelled, StatusProcessing, false},
		{"no self transition", StatusPending, StatusPending, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidStatusTransition(tt.from, tt.to); got != tt.want {
				t.Errorf("ValidStatusTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestOrderEditable(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{StatusPending, true},
		{StatusProcessing, true},
		{StatusCompleted, false},
		{StatusCancelled, false},
	}
	for _, tt := range tests {
		if got := OrderEditable(tt.status); got != tt.want {
			t.Errorf("OrderEditable(%q) = %v, want %v", tt.status, got, tt.want)
		}
	}
}
