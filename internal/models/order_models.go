package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is a dine-in order for a table. Items are appended while the
// order is pending or processing; once settled the order is completed.
type Order struct {
	ID        int64     `json:"id"`
	TableID   int64     `json:"table_id" db:"table_id"`
	StaffID   *int64    `json:"staff_id,omitempty" db:"staff_id"`
	Status    string    `json:"status" db:"status"`
	Notes     *string   `json:"notes,omitempty" db:"notes"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	TableNumber *int        `json:"table_number,omitempty"`
	StaffName   *string     `json:"staff_name,omitempty"`
	OrderItems  []OrderItem `json:"order_items,omitempty"`
}

// OrderItem is one order line. UnitPrice is frozen from the menu at order
// time and immutable thereafter.
type OrderItem struct {
	ID                 int64           `json:"id"`
	OrderID            int64           `json:"order_id" db:"order_id"`
	MenuItemID         int64           `json:"menu_item_id" db:"menu_item_id"`
	Quantity           int             `json:"quantity" db:"quantity"`
	UnitPrice          decimal.Decimal `json:"unit_price" db:"unit_price"`
	SpecialInstruction *string         `json:"special_instruction,omitempty" db:"special_instruction"`
	CreatedAt          time.Time       `json:"created_at" db:"created_at"`

	ItemName *string `json:"item_name,omitempty"`
}

// LineTotal is the line's quantity times its frozen unit price.
func (i *OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity))).Round(2)
}

// OrderFilters defines the available filters for querying orders, used by
// both the service and repository layers.
type OrderFilters struct {
	TableID  *int64  `form:"table_id"`
	StaffID  *int64  `form:"staff_id"`
	Status   *string `form:"status"`
	Date     *string `form:"date"` // YYYY-MM-DD
	Page     int     `form:"page"`
	PageSize int     `form:"page_size"`
}
