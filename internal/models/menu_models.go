package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MenuCategory groups menu items for display and reporting.
type MenuCategory struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name" db:"name" binding:"required"`
	Description *string   `json:"description,omitempty" db:"description"`
	SortOrder   int       `json:"sort_order" db:"sort_order"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// MenuItem is a sellable item. Price is the current menu price; order
// lines capture their own unit price at order time, so later price edits
// never change an existing bill.
type MenuItem struct {
	ID          int64           `json:"id"`
	CategoryID  int64           `json:"category_id" db:"category_id"`
	Name        string          `json:"name" db:"name" binding:"required"`
	Description *string         `json:"description,omitempty" db:"description"`
	Price       decimal.Decimal `json:"price" db:"price"`
	IsAvailable bool            `json:"is_available" db:"is_available"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`

	CategoryName *string `json:"category_name,omitempty"`
}
