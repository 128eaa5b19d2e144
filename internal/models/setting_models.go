package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ApplicationSetting represents a key-value pair for application
// configuration stored in the database.
type ApplicationSetting struct {
	ID           int64     `json:"id" db:"id"`
	SettingKey   string    `json:"setting_key" db:"setting_key" binding:"required"`
	SettingValue *string   `json:"setting_value,omitempty" db:"setting_value"`
	Description  *string   `json:"description,omitempty" db:"description"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Setting keys consumed by the billing flows.
const (
	SettingTaxRate                  = "tax_rate"
	SettingServiceTaxRate           = "service_tax_rate"
	SettingCurrencySymbol           = "currency_symbol"
	SettingDiscountsEnabled         = "discounts_enabled"
	SettingDiscountBirthdayPercent  = "discount_birthday_percent"
	SettingDiscountStaffPercent     = "discount_staff_percent"
	SettingDiscountReviewPercent    = "discount_review_percent"
	SettingDiscountComplaintPercent = "discount_complaint_percent"
	SettingMaxDiscountAmount        = "max_discount_amount"
	SettingQRCodeTTLHours           = "qr_code_ttl_hours"
)

// TaxSettings is the typed view of the billing-relevant settings. Rates
// are fractional (0.06 for 6%); they are read as configured without
// validation, so a misconfigured rate yields a wrong total, not an error.
type TaxSettings struct {
	TaxRate          decimal.Decimal `json:"tax_rate"`
	ServiceTaxRate   decimal.Decimal `json:"service_tax_rate"`
	CurrencySymbol   string          `json:"currency_symbol"`
	DiscountsEnabled bool            `json:"discounts_enabled"`

	DiscountBirthdayPercent  decimal.Decimal `json:"discount_birthday_percent"`
	DiscountStaffPercent     decimal.Decimal `json:"discount_staff_percent"`
	DiscountReviewPercent    decimal.Decimal `json:"discount_review_percent"`
	DiscountComplaintPercent decimal.Decimal `json:"discount_complaint_percent"`
	MaxDiscountAmount        decimal.Decimal `json:"max_discount_amount"`
}
