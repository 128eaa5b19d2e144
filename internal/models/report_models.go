package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportRequestParams holds the common query parameters for reports.
type ReportRequestParams struct {
	StartDate  string
	EndDate    string
	TableID    *int64
	CategoryID *int64
}

// SalesSummary is the daily sales report. Revenue is grouped-bill aware:
// payment rows inferred to belong to one logical bill count once, at the
// consolidated amount, so merged settlements do not double-count.
type SalesSummary struct {
	Date             string           `json:"date"`
	BillCount        int              `json:"bill_count"`
	PaymentRowCount  int              `json:"payment_row_count"`
	GrossRevenue     decimal.Decimal  `json:"gross_revenue"`
	RoundedRevenue   decimal.Decimal  `json:"rounded_revenue"`
	TotalDiscounts   decimal.Decimal  `json:"total_discounts"`
	MethodBreakdown  []MethodShare    `json:"method_breakdown"`
	CurrencySymbol   string           `json:"currency_symbol"`
}

// MethodShare is one payment method's slice of the day's bills.
type MethodShare struct {
	Method     string          `json:"method"`
	BillCount  int             `json:"bill_count"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage decimal.Decimal `json:"percentage"`
}

// ItemSalesRow is one menu item's sales over a period.
type ItemSalesRow struct {
	MenuItemID   int64           `json:"menu_item_id"`
	ItemName     string          `json:"item_name"`
	CategoryName string          `json:"category_name"`
	QuantitySold int             `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// DashboardSummary carries the key metrics for the back-office landing page.
type DashboardSummary struct {
	OpenOrdersCount     int             `json:"open_orders_count"`
	OccupiedTablesCount int             `json:"occupied_tables_count"`
	TodayBillCount      int             `json:"today_bill_count"`
	TodayRevenue        decimal.Decimal `json:"today_revenue"`
	GeneratedAt         time.Time       `json:"generated_at"`
}
