package services

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"resto_pos_backend/internal/billing"
	"resto_pos_backend/internal/models"
	"resto_pos_backend/internal/repositories"
)

var ErrSettingNotFound = errors.New("application setting not found")

// Defaults used when a billing setting has never been configured.
var (
	defaultTaxRate        = decimal.NewFromFloat(0.06)
	defaultServiceTaxRate = decimal.NewFromFloat(0.10)
	defaultMaxDiscount    = decimal.NewFromInt(50)
)

const defaultCurrencySymbol = "RM"

// SettingsService exposes the raw key/value settings plus the typed view
// consumed by billing flows.
type SettingsService interface {
	GetAll() ([]models.ApplicationSetting, error)
	GetByKey(key string) (*models.ApplicationSetting, error)
	Upsert(setting *models.ApplicationSetting) error
	DeleteByKey(key string) error

	GetTaxSettings() (*models.TaxSettings, error)
	DiscountConfig(ts *models.TaxSettings) billing.DiscountConfig
}

type settingsService struct {
	settingsRepo repositories.SettingsRepository
	db           *sql.DB
}

// NewSettingsService creates a new instance of SettingsService.
func NewSettingsService(sr repositories.SettingsRepository, db *sql.DB) SettingsService {
	return &settingsService{settingsRepo: sr, db: db}
}

func (s *settingsService) GetAll() ([]models.ApplicationSetting, error) {
	settings, err := s.settingsRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return settings, nil
}

func (s *settingsService) GetByKey(key string) (*models.ApplicationSetting, error) {
	setting, err := s.settingsRepo.GetByKey(key)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrSettingNotFound
		}
		return nil, fmt.Errorf("failed to get setting %q: %w", key, err)
	}
	return setting, nil
}

func (s *settingsService) Upsert(setting *models.ApplicationSetting) error {
	if err := s.settingsRepo.Upsert(s.db, setting); err != nil {
		return fmt.Errorf("failed to upsert setting %q: %w", setting.SettingKey, err)
	}
	return nil
}

func (s *settingsService) DeleteByKey(key string) error {
	err := s.settingsRepo.DeleteByKey(s.db, key)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrSettingNotFound
		}
		return fmt.Errorf("failed to delete setting %q: %w", key, err)
	}
	return nil
}

// GetTaxSettings assembles the typed billing configuration from the
// key/value store, falling back to defaults for missing keys. Rates are
// read as configured with no range validation; a misconfigured rate is
// the operator's responsibility.
func (s *settingsService) GetTaxSettings() (*models.TaxSettings, error) {
	raw, err := s.settingsRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load billing settings: %w", err)
	}

	values := make(map[string]string, len(raw))
	for _, setting := range raw {
		if setting.SettingValue != nil {
			values[setting.SettingKey] = *setting.SettingValue
		}
	}

	ts := &models.TaxSettings{
		TaxRate:                  decimalSetting(values, models.SettingTaxRate, defaultTaxRate),
		ServiceTaxRate:           decimalSetting(values, models.SettingServiceTaxRate, defaultServiceTaxRate),
		CurrencySymbol:           stringSetting(values, models.SettingCurrencySymbol, defaultCurrencySymbol),
		DiscountsEnabled:         boolSetting(values, models.SettingDiscountsEnabled, true),
		DiscountBirthdayPercent:  decimalSetting(values, models.SettingDiscountBirthdayPercent, decimal.NewFromInt(10)),
		DiscountStaffPercent:     decimalSetting(values, models.SettingDiscountStaffPercent, decimal.NewFromInt(20)),
		DiscountReviewPercent:    decimalSetting(values, models.SettingDiscountReviewPercent, decimal.NewFromInt(5)),
		DiscountComplaintPercent: decimalSetting(values, models.SettingDiscountComplaintPercent, decimal.NewFromInt(15)),
		MaxDiscountAmount:        decimalSetting(values, models.SettingMaxDiscountAmount, defaultMaxDiscount),
	}
	return ts, nil
}

// DiscountConfig maps the typed settings into the billing package's
// discount configuration.
func (s *settingsService) DiscountConfig(ts *models.TaxSettings) billing.DiscountConfig {
	return billing.DiscountConfig{
		Percentages: map[billing.DiscountKind]decimal.Decimal{
			billing.DiscountBirthday:  ts.DiscountBirthdayPercent,
			billing.DiscountStaff:     ts.DiscountStaffPercent,
			billing.DiscountReview:    ts.DiscountReviewPercent,
			billing.DiscountComplaint: ts.DiscountComplaintPercent,
		},
		MaxAmount: ts.MaxDiscountAmount,
	}
}

func stringSetting(values map[string]string, key, fallback string) string {
	if v, ok := values[key]; ok && v != "" {
		return v
	}
	return fallback
}

func boolSetting(values map[string]string, key string, fallback bool) bool {
	v, ok := values[key]
	if !ok {
		return fallback
	}
	return v == "true" || v == "1"
}

func decimalSetting(values map[string]string, key string, fallback decimal.Decimal) decimal.Decimal {
	v, ok := values[key]
	if !ok {
		return fallback
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return fallback
	}
	return d
}
