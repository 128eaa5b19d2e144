package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"resto_pos_backend/internal/billing"
	"resto_pos_backend/internal/models"
	"resto_pos_backend/internal/repositories"
)

var (
	ErrPaymentNotFound     = errors.New("payment not found")
	ErrOrderAlreadySettled = errors.New("order already has a completed payment")
	ErrInvalidTender       = errors.New("invalid payment method")
	ErrInsufficientCash    = errors.New("cash received is less than the amount due")
	ErrMissingWalletRef    = errors.New("wallet reference code is required for tng payments")
	ErrDiscountsDisabled   = errors.New("discounts are disabled in settings")
	ErrDiscountNotAllowed  = errors.New("staff member lacks the discount permission")
)

// Actor is the request-scoped authorization context: who is acting and
// what they are allowed to do. It is passed explicitly into permission-
// gated operations instead of being read from ambient session state.
type Actor struct {
	UserID      int64
	Username    string
	Permissions []string
}

// Can reports whether the actor holds the given permission string.
func (a Actor) Can(permission string) bool {
	for _, p := range a.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// DiscountDirective is the cashier's discount request from the form post.
type DiscountDirective struct {
	Kind   billing.DiscountKind `json:"discount_type" binding:"required"`
	Amount decimal.Decimal      `json:"discount_amount"`
	Reason string               `json:"discount_reason"`
}

// SettlePaymentRequest settles an order with a single tender.
type SettlePaymentRequest struct {
	Method       string             `json:"method" binding:"required"`
	CashReceived *decimal.Decimal   `json:"cash_received"`
	WalletRef    string             `json:"wallet_reference"`
	Discount     *DiscountDirective `json:"discount"`
}

// BillTotals is the totals object rendered on receipts and payment pages.
type BillTotals struct {
	Subtotal         decimal.Decimal          `json:"subtotal"`
	TaxAmount        decimal.Decimal          `json:"tax_amount"`
	ServiceTaxAmount decimal.Decimal          `json:"service_tax_amount"`
	DiscountAmount   decimal.Decimal          `json:"discount_amount"`
	DiscountReason   string                   `json:"discount_reason,omitempty"`
	GrandTotal       decimal.Decimal          `json:"grand_total"`
	CashRoundedTotal decimal.Decimal          `json:"cash_rounded_total"`
	RoundingStrategy billing.RoundingStrategy `json:"rounding_strategy"`
	CurrencySymbol   string                   `json:"currency_symbol"`
}

// GroupedBill is one inferred logical bill for display. CashReceived and
// ChangeAmount are the strings shown to the cashier: "not applicable" for
// wallet tenders, never "0.00".
type GroupedBill struct {
	TableNumber   int              `json:"table_number"`
	Minute        time.Time        `json:"minute"`
	DisplayAmount decimal.Decimal  `json:"display_amount"`
	NaiveSum      decimal.Decimal  `json:"naive_sum"`
	Methods       []string         `json:"methods"`
	CashReceived  string           `json:"cash_received"`
	ChangeAmount  string           `json:"change_amount"`
	Payments      []models.Payment `json:"payments"`
}

// Receipt is the printable settlement record for one payment.
type Receipt struct {
	Payment        *models.Payment `json:"payment"`
	Order          *models.Order   `json:"order"`
	Totals         BillTotals      `json:"totals"`
	FormattedTotal string          `json:"formatted_total"`
	ProcessedBy    string          `json:"processed_by"`
}

// NotApplicable is the display value for cash fields of non-cash tenders.
const NotApplicable = "not applicable"

// PaymentService runs the billing pipeline over orders and persists the
// resulting payment rows.
type PaymentService interface {
	PreviewBill(orderID int64, discount *DiscountDirective, actor Actor) (*BillTotals, error)
	SettleOrder(orderID int64, req SettlePaymentRequest, actor Actor) (*models.Payment, error)
	GetPaymentByID(id int64) (*models.Payment, error)
	GetGroupedBills(filters models.PaymentFilters) ([]GroupedBill, error)
	GetReceipt(paymentID int64) (*Receipt, error)
}

type paymentService struct {
	paymentRepo repositories.PaymentRepository
	orderRepo   repositories.OrderRepository
	tableRepo   repositories.TableRepository
	settings    SettingsService
	db          *sql.DB
}

// NewPaymentService creates a new instance of PaymentService.
func NewPaymentService(
	pr repositories.PaymentRepository,
	or repositories.OrderRepository,
	tr repositories.TableRepository,
	ss SettingsService,
	db *sql.DB,
) PaymentService {
	return &paymentService{paymentRepo: pr, orderRepo: or, tableRepo: tr, settings: ss, db: db}
}

// ValidTender reports whether method is a known payment method.
func ValidTender(method string) bool {
	switch method {
	case billing.TenderCash, billing.TenderCard, billing.TenderTNG:
		return true
	default:
		return false
	}
}

// computeTotals runs the billing pipeline: subtotal over the frozen line
// prices, the two configured surcharges, an optional gated discount, and
// the payment-counter cash rounding. The rounded figure only matters for
// cash tenders but is always reported for display.
func (s *paymentService) computeTotals(items []models.OrderItem, discount *DiscountDirective, ts *models.TaxSettings, actor Actor) (*BillTotals, error) {
	lines := make([]billing.LineItem, 0, len(items))
	for _, item := range items {
		lines = append(lines, billing.LineItem{Quantity: item.Quantity, UnitPrice: item.UnitPrice})
	}

	subtotal := billing.Subtotal(lines)
	breakdown := billing.ApplyTaxes(subtotal, ts.TaxRate, ts.ServiceTaxRate)

	totals := &BillTotals{
		Subtotal:         breakdown.Subtotal,
		TaxAmount:        breakdown.TaxAmount,
		ServiceTaxAmount: breakdown.ServiceTaxAmount,
		DiscountAmount:   decimal.Zero,
		GrandTotal:       breakdown.Total,
		RoundingStrategy: billing.RoundDecimalBucket,
		CurrencySymbol:   ts.CurrencySymbol,
	}

	if discount != nil {
		if !ts.DiscountsEnabled {
			return nil, ErrDiscountsDisabled
		}
		if !actor.Can(models.PermDiscountsApply) {
			return nil, ErrDiscountNotAllowed
		}
		result, err := billing.ApplyDiscount(totals.GrandTotal, billing.Discount{
			Kind:   discount.Kind,
			Amount: discount.Amount,
			Reason: discount.Reason,
		}, s.settings.DiscountConfig(ts))
		if err != nil {
			return nil, err
		}
		totals.DiscountAmount = result.Amount
		totals.DiscountReason = result.Reason
		totals.GrandTotal = result.NewTotal
	}

	totals.CashRoundedTotal = billing.RoundForCashTender(totals.GrandTotal, totals.RoundingStrategy)
	return totals, nil
}

func (s *paymentService) PreviewBill(orderID int64, discount *DiscountDirective, actor Actor) (*BillTotals, error) {
	_, items, err := s.loadOrderWithItems(orderID)
	if err != nil {
		return nil, err
	}
	ts, err := s.settings.GetTaxSettings()
	if err != nil {
		return nil, err
	}
	return s.computeTotals(items, discount, ts, actor)
}

func (s *paymentService) loadOrderWithItems(orderID int64) (*models.Order, []models.OrderItem, error) {
	order, err := s.orderRepo.GetOrderByID(orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil, ErrOrderNotFound
		}
		return nil, nil, fmt.Errorf("failed to fetch order: %w", err)
	}
	items, err := s.orderRepo.GetOrderItemsByOrderID(orderID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch order items: %w", err)
	}
	return order, items, nil
}

// SettleOrder computes the bill, validates the tender, writes the payment
// row, and completes the order — all in one transaction, so the recorded
// amount always equals subtotal + taxes − discount with the cash rounding
// applied at write time.
func (s *paymentService) SettleOrder(orderID int64, req SettlePaymentRequest, actor Actor) (*models.Payment, error) {
	if !ValidTender(req.Method) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTender, req.Method)
	}

	order, items, err := s.loadOrderWithItems(orderID)
	if err != nil {
		return nil, err
	}
	if order.Status == StatusCompleted || order.Status == StatusCancelled {
		return nil, fmt.Errorf("%w: order status is %s", ErrOrderAlreadySettled, order.Status)
	}

	existing, err := s.paymentRepo.GetPaymentsByOrderID(orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing payments: %w", err)
	}
	for _, p := range existing {
		if p.Status == models.PaymentStatusCompleted {
			return nil, ErrOrderAlreadySettled
		}
	}

	ts, err := s.settings.GetTaxSettings()
	if err != nil {
		return nil, err
	}
	totals, err := s.computeTotals(items, req.Discount, ts, actor)
	if err != nil {
		return nil, err
	}

	table, err := s.tableRepo.GetTableByID(order.TableID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch table for payment: %w", err)
	}

	payment := &models.Payment{
		OrderID:     orderID,
		TableNumber: table.TableNumber,
		Method:      req.Method,
		ProcessedBy: actor.Username,
		Status:      models.PaymentStatusCompleted,
		PaidAt:      time.Now(),
	}

	switch req.Method {
	case billing.TenderCash:
		// Cash tenders settle at the counter-rounded amount.
		due := totals.CashRoundedTotal
		if req.CashReceived == nil {
			return nil, fmt.Errorf("%w: cash_received is required", ErrValidation)
		}
		if req.CashReceived.LessThan(due) {
			return nil, fmt.Errorf("%w: received %s, due %s", ErrInsufficientCash,
				req.CashReceived.StringFixed(2), due.StringFixed(2))
		}
		change := req.CashReceived.Sub(due)
		payment.Amount = due
		payment.CashReceived = req.CashReceived
		payment.ChangeAmount = &change
	case billing.TenderCard:
		payment.Amount = totals.GrandTotal.Round(2)
	case billing.TenderTNG:
		// Wallet tenders carry a reference code and no cash pair.
		if req.WalletRef == "" {
			return nil, ErrMissingWalletRef
		}
		payment.Amount = totals.GrandTotal.Round(2)
		payment.WalletReference = &req.WalletRef
	}

	if totals.DiscountAmount.IsPositive() {
		discountAmount := totals.DiscountAmount
		discountType := string(req.Discount.Kind)
		payment.DiscountAmount = &discountAmount
		payment.DiscountType = &discountType
		payment.DiscountReason = models.NewNullString(totals.DiscountReason)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	paymentID, err := s.paymentRepo.CreatePayment(tx, payment)
	if err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}
	payment.ID = paymentID
	if err := s.orderRepo.UpdateOrderStatus(tx, orderID, StatusCompleted, time.Now()); err != nil {
		return nil, fmt.Errorf("failed to complete order: %w", err)
	}
	if err := s.tableRepo.UpdateTableStatus(tx, order.TableID, models.TableStatusAvailable); err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to release table: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit settlement: %w", err)
	}
	return payment, nil
}

func (s *paymentService) GetPaymentByID(id int64) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetPaymentByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return payment, nil
}

// GetGroupedBills reconstructs logical bills from flat payment rows and
// prepares the display fields, including the "not applicable" rendering
// for wallet tenders.
func (s *paymentService) GetGroupedBills(filters models.PaymentFilters) ([]GroupedBill, error) {
	payments, err := s.paymentRepo.GetPayments(filters)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch payments: %w", err)
	}

	index := make(map[int64]models.Payment, len(payments))
	records := make([]billing.PaymentRecord, 0, len(payments))
	for _, p := range payments {
		index[p.ID] = p
		records = append(records, billing.PaymentRecord{
			ID:              p.ID,
			OrderID:         p.OrderID,
			TableNumber:     p.TableNumber,
			Amount:          p.Amount,
			Method:          p.Method,
			CashReceived:    p.CashReceived,
			ChangeAmount:    p.ChangeAmount,
			WalletReference: p.WalletReference,
			ProcessedBy:     p.ProcessedBy,
			PaidAt:          p.PaidAt,
		})
	}

	groups := billing.GroupPayments(records)
	bills := make([]GroupedBill, 0, len(groups))
	for _, g := range groups {
		bill := GroupedBill{
			TableNumber:   g.TableNumber,
			Minute:        g.Minute,
			DisplayAmount: g.DisplayAmount,
			NaiveSum:      g.NaiveSum,
			Methods:       g.Methods,
			CashReceived:  NotApplicable,
			ChangeAmount:  NotApplicable,
		}
		if g.CashReceived != nil {
			bill.CashReceived = g.CashReceived.StringFixed(2)
		}
		if g.ChangeAmount != nil {
			bill.ChangeAmount = g.ChangeAmount.StringFixed(2)
		}
		for _, record := range g.Payments {
			bill.Payments = append(bill.Payments, index[record.ID])
		}
		bills = append(bills, bill)
	}
	return bills, nil
}

// GetReceipt rebuilds the totals for a settled payment. Legacy rows were
// written without enforcing amount = subtotal + taxes − discount, so the
// recomputed breakdown is displayed alongside the stored amount rather
// than replacing it.
func (s *paymentService) GetReceipt(paymentID int64) (*Receipt, error) {
	payment, err := s.GetPaymentByID(paymentID)
	if err != nil {
		return nil, err
	}

	order, items, err := s.loadOrderWithItems(payment.OrderID)
	if err != nil {
		return nil, err
	}
	order.OrderItems = items

	ts, err := s.settings.GetTaxSettings()
	if err != nil {
		return nil, err
	}

	lines := make([]billing.LineItem, 0, len(items))
	for _, item := range items {
		lines = append(lines, billing.LineItem{Quantity: item.Quantity, UnitPrice: item.UnitPrice})
	}
	subtotal := billing.Subtotal(lines)
	breakdown := billing.ApplyTaxes(subtotal, ts.TaxRate, ts.ServiceTaxRate)

	totals := BillTotals{
		Subtotal:         breakdown.Subtotal,
		TaxAmount:        breakdown.TaxAmount,
		ServiceTaxAmount: breakdown.ServiceTaxAmount,
		DiscountAmount:   decimal.Zero,
		GrandTotal:       breakdown.Total,
		RoundingStrategy: billing.RoundDecimalBucket,
		CurrencySymbol:   ts.CurrencySymbol,
	}
	if payment.DiscountAmount != nil {
		totals.DiscountAmount = *payment.DiscountAmount
		totals.GrandTotal = totals.GrandTotal.Sub(*payment.DiscountAmount)
		if payment.DiscountReason != nil {
			totals.DiscountReason = *payment.DiscountReason
		}
	}
	totals.CashRoundedTotal = billing.RoundForCashTender(totals.GrandTotal, totals.RoundingStrategy)

	return &Receipt{
		Payment:        payment,
		Order:          order,
		Totals:         totals,
		FormattedTotal: billing.FormatCurrency(ts.CurrencySymbol, totals.CashRoundedTotal),
		ProcessedBy:    payment.ProcessedBy,
	}, nil
}
