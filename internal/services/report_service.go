package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"resto_pos_backend/internal/billing"
	"resto_pos_backend/internal/models"
	"resto_pos_backend/internal/repositories"
)

var ErrInvalidDateRange = errors.New("invalid report date range")

const reportDateLayout = "2006-01-02"

// ReportService aggregates settled payments into the back-office reports.
// Revenue figures are grouped-bill aware: rows inferred to belong to one
// logical bill count once, at the consolidated amount.
type ReportService interface {
	DailySalesSummary(date string) (*models.SalesSummary, error)
	ItemSales(params models.ReportRequestParams) ([]models.ItemSalesRow, error)
	DashboardSummary() (*models.DashboardSummary, error)
}

type reportService struct {
	paymentRepo repositories.PaymentRepository
	orderRepo   repositories.OrderRepository
	tableRepo   repositories.TableRepository
	settings    SettingsService
	now         func() time.Time
}

// NewReportService creates a new instance of ReportService.
func NewReportService(
	pr repositories.PaymentRepository,
	or repositories.OrderRepository,
	tr repositories.TableRepository,
	ss SettingsService,
) ReportService {
	return &reportService{paymentRepo: pr, orderRepo: or, tableRepo: tr, settings: ss, now: time.Now}
}

func (s *reportService) groupedBillsForDate(date string) ([]billing.BillGroup, []models.Payment, error) {
	payments, err := s.paymentRepo.GetPayments(models.PaymentFilters{Date: &date})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch payments for %s: %w", date, err)
	}

	records := make([]billing.PaymentRecord, 0, len(payments))
	for _, p := range payments {
		if p.Status != models.PaymentStatusCompleted {
			continue
		}
		records = append(records, billing.PaymentRecord{
			ID:           p.ID,
			OrderID:      p.OrderID,
			TableNumber:  p.TableNumber,
			Amount:       p.Amount,
			Method:       p.Method,
			CashReceived: p.CashReceived,
			ChangeAmount: p.ChangeAmount,
			ProcessedBy:  p.ProcessedBy,
			PaidAt:       p.PaidAt,
		})
	}
	return billing.GroupPayments(records), payments, nil
}

func (s *reportService) DailySalesSummary(date string) (*models.SalesSummary, error) {
	if _, err := time.Parse(reportDateLayout, date); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDateRange, date)
	}

	groups, payments, err := s.groupedBillsForDate(date)
	if err != nil {
		return nil, err
	}

	ts, err := s.settings.GetTaxSettings()
	if err != nil {
		return nil, err
	}

	summary := &models.SalesSummary{
		Date:           date,
		BillCount:      len(groups),
		GrossRevenue:   decimal.Zero,
		TotalDiscounts: decimal.Zero,
		CurrencySymbol: ts.CurrencySymbol,
	}

	type methodTally struct {
		count  int
		amount decimal.Decimal
	}
	byMethod := make(map[string]*methodTally)

	rounded := decimal.Zero
	for _, g := range groups {
		summary.GrossRevenue = summary.GrossRevenue.Add(g.DisplayAmount)
		// Report figures use the nickel rounding, not the receipt bucket.
		rounded = rounded.Add(billing.RoundForCashTender(g.DisplayAmount, billing.RoundNearestNickel))

		method := g.Payments[len(g.Payments)-1].Method
		tally, ok := byMethod[method]
		if !ok {
			tally = &methodTally{amount: decimal.Zero}
			byMethod[method] = tally
		}
		tally.count++
		tally.amount = tally.amount.Add(g.DisplayAmount)
	}
	summary.RoundedRevenue = rounded.Round(2)

	for _, p := range payments {
		if p.Status != models.PaymentStatusCompleted {
			continue
		}
		summary.PaymentRowCount++
		if p.DiscountAmount != nil {
			summary.TotalDiscounts = summary.TotalDiscounts.Add(*p.DiscountAmount)
		}
	}

	for _, method := range []string{billing.TenderCash, billing.TenderCard, billing.TenderTNG} {
		tally, ok := byMethod[method]
		if !ok {
			continue
		}
		summary.MethodBreakdown = append(summary.MethodBreakdown, models.MethodShare{
			Method:     method,
			BillCount:  tally.count,
			Amount:     tally.amount,
			Percentage: billing.FormatPercentage(int64(tally.count), int64(len(groups))),
		})
	}

	return summary, nil
}

func (s *reportService) ItemSales(params models.ReportRequestParams) ([]models.ItemSalesRow, error) {
	start, err := time.Parse(reportDateLayout, params.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: start date %s", ErrInvalidDateRange, params.StartDate)
	}
	end, err := time.Parse(reportDateLayout, params.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: end date %s", ErrInvalidDateRange, params.EndDate)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end %s is before start %s", ErrInvalidDateRange, params.EndDate, params.StartDate)
	}

	rows, err := s.paymentRepo.GetItemSales(start, end.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch item sales: %w", err)
	}
	return rows, nil
}

func (s *reportService) DashboardSummary() (*models.DashboardSummary, error) {
	now := s.now()
	today := now.Format(reportDateLayout)

	groups, _, err := s.groupedBillsForDate(today)
	if err != nil {
		return nil, err
	}
	revenue := decimal.Zero
	for _, g := range groups {
		revenue = revenue.Add(g.DisplayAmount)
	}

	openOrders := 0
	for _, status := range []string{StatusPending, StatusProcessing} {
		st := status
		_, total, err := s.orderRepo.GetOrders(models.OrderFilters{Status: &st, Page: 1, PageSize: 1})
		if err != nil {
			return nil, fmt.Errorf("failed to count %s orders: %w", status, err)
		}
		openOrders += total
	}

	tables, err := s.tableRepo.GetTables()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tables: %w", err)
	}
	occupied := 0
	for _, t := range tables {
		if t.Status == models.TableStatusOccupied {
			occupied++
		}
	}

	return &models.DashboardSummary{
		OpenOrdersCount:     openOrders,
		OccupiedTablesCount: occupied,
		TodayBillCount:      len(groups),
		TodayRevenue:        revenue.Round(2),
		GeneratedAt:         now,
	}, nil
}
