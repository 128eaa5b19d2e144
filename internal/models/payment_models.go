package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment statuses.
const (
	PaymentStatusCompleted = "completed"
	PaymentStatusPending   = "pending"
)

// Payment is one settlement row. There is no persisted bill identifier;
// rows sharing a table number and a minute-level timestamp are inferred to
// belong to one logical bill after the fact.
type Payment struct {
	ID              int64            `json:"id"`
	OrderID         int64            `json:"order_id" db:"order_id"`
	TableNumber     int              `json:"table_number" db:"table_number"`
	Amount          decimal.Decimal  `json:"amount" db:"amount"`
	Method          string           `json:"method" db:"method"`
	CashReceived    *decimal.Decimal `json:"cash_received,omitempty" db:"cash_received"`
	ChangeAmount    *decimal.Decimal `json:"change_amount,omitempty" db:"change_amount"`
	WalletReference *string          `json:"wallet_reference,omitempty" db:"wallet_reference"`
	DiscountAmount  *decimal.Decimal `json:"discount_amount,omitempty" db:"discount_amount"`
	DiscountType    *string          `json:"discount_type,omitempty" db:"discount_type"`
	DiscountReason  *string          `json:"discount_reason,omitempty" db:"discount_reason"`
	ProcessedBy     string           `json:"processed_by" db:"processed_by"`
	Status          string           `json:"status" db:"status"`
	PaidAt          time.Time        `json:"paid_at" db:"paid_at"`
	CreatedAt       time.Time        `json:"created_at" db:"created_at"`
}

// PaymentFilters defines the available filters for querying payments.
type PaymentFilters struct {
	TableNumber *int    `form:"table_number"`
	Method      *string `form:"method"`
	Date        *string `form:"date"` // YYYY-MM-DD
}
