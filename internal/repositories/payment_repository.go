package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"resto_pos_backend/internal/models"
)

// PaymentRepository defines the interface for payment persistence. Reads
// return flat rows; reconstructing logical bills from them is the billing
// package's job.
type PaymentRepository interface {
	CreatePayment(executor SQLExecutor, payment *models.Payment) (int64, error)
	GetPaymentByID(id int64) (*models.Payment, error)
	GetPaymentsByOrderID(orderID int64) ([]models.Payment, error)
	GetPayments(filters models.PaymentFilters) ([]models.Payment, error)
	GetItemSales(start, end time.Time) ([]models.ItemSalesRow, error)
}

type paymentRepository struct {
	db *sql.DB
}

// NewPaymentRepository creates a new instance of PaymentRepository.
func NewPaymentRepository(db *sql.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) CreatePayment(executor SQLExecutor, payment *models.Payment) (int64, error) {
	query := `INSERT INTO payments
	            (order_id, table_number, amount, method, cash_received, change_amount,
	             wallet_reference, discount_amount, discount_type, discount_reason,
	             processed_by, status, paid_at, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	          RETURNING id`

	if payment.PaidAt.IsZero() {
		payment.PaidAt = time.Now()
	}
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = time.Now()
	}

	err := executor.QueryRow(query,
		payment.OrderID, payment.TableNumber, payment.Amount, payment.Method,
		nullDecimal(payment.CashReceived), nullDecimal(payment.ChangeAmount),
		payment.WalletReference, nullDecimal(payment.DiscountAmount), payment.DiscountType, payment.DiscountReason,
		payment.ProcessedBy, payment.Status, payment.PaidAt, payment.CreatedAt,
	).Scan(&payment.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating payment: %v", ErrDatabaseError, err)
	}
	return payment.ID, nil
}

const paymentSelectColumns = `id, order_id, table_number, amount, method, cash_received, change_amount,
	wallet_reference, discount_amount, discount_type, discount_reason, processed_by, status, paid_at, created_at`

func scanPayment(row interface{ Scan(...interface{}) error }, p *models.Payment) error {
	var cashReceived, changeAmount, discountAmount decimal.NullDecimal
	err := row.Scan(
		&p.ID, &p.OrderID, &p.TableNumber, &p.Amount, &p.Method, &cashReceived, &changeAmount,
		&p.WalletReference, &discountAmount, &p.DiscountType, &p.DiscountReason,
		&p.ProcessedBy, &p.Status, &p.PaidAt, &p.CreatedAt,
	)
	if err != nil {
		return err
	}
	p.CashReceived = fromNullDecimal(cashReceived)
	p.ChangeAmount = fromNullDecimal(changeAmount)
	p.DiscountAmount = fromNullDecimal(discountAmount)
	return nil
}

func (r *paymentRepository) GetPaymentByID(id int64) (*models.Payment, error) {
	payment := &models.Payment{}
	query := `SELECT ` + paymentSelectColumns + ` FROM payments WHERE id = $1`
	if err := scanPayment(r.db.QueryRow(query, id), payment); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting payment by ID %d: %v", ErrDatabaseError, id, err)
	}
	return payment, nil
}

func (r *paymentRepository) GetPaymentsByOrderID(orderID int64) ([]models.Payment, error) {
	query := `SELECT ` + paymentSelectColumns + ` FROM payments WHERE order_id = $1 ORDER BY paid_at`
	return r.queryPayments(query, orderID)
}

func (r *paymentRepository) GetPayments(filters models.PaymentFilters) ([]models.Payment, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + paymentSelectColumns + ` FROM payments`)

	var conditions []string
	var args []interface{}
	argCounter := 1

	if filters.TableNumber != nil {
		conditions = append(conditions, fmt.Sprintf("table_number = $%d", argCounter))
		args = append(args, *filters.TableNumber)
		argCounter++
	}
	if filters.Method != nil && *filters.Method != "" {
		conditions = append(conditions, fmt.Sprintf("method = $%d", argCounter))
		args = append(args, *filters.Method)
		argCounter++
	}
	if filters.Date != nil && *filters.Date != "" {
		parsedDate, err := time.Parse("2006-01-02", *filters.Date)
		if err == nil {
			startOfDay := time.Date(parsedDate.Year(), parsedDate.Month(), parsedDate.Day(), 0, 0, 0, 0, parsedDate.Location())
			endOfDay := startOfDay.AddDate(0, 0, 1).Add(-time.Nanosecond)
			conditions = append(conditions, fmt.Sprintf("paid_at BETWEEN $%d AND $%d", argCounter, argCounter+1))
			args = append(args, startOfDay, endOfDay)
			argCounter += 2
		}
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY paid_at DESC")

	return r.queryPayments(queryBuilder.String(), args...)
}

func (r *paymentRepository) queryPayments(query string, args ...interface{}) ([]models.Payment, error) {
	payments := []models.Payment{}
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying payments: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.Payment
		if err := scanPayment(rows, &p); err != nil {
			return nil, fmt.Errorf("%w: scanning payment: %v", ErrDatabaseError, err)
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// GetItemSales aggregates quantities and revenue per menu item over
// completed orders in the period.
func (r *paymentRepository) GetItemSales(start, end time.Time) ([]models.ItemSalesRow, error) {
	salesRows := []models.ItemSalesRow{}
	query := `SELECT oi.menu_item_id, mi.name, mc.name,
	                 SUM(oi.quantity) AS quantity_sold,
	                 SUM(oi.quantity * oi.unit_price) AS revenue
	          FROM order_items oi
	          JOIN orders o ON oi.order_id = o.id
	          JOIN menu_items mi ON oi.menu_item_id = mi.id
	          JOIN menu_categories mc ON mi.category_id = mc.id
	          WHERE o.status = 'completed' AND o.created_at BETWEEN $1 AND $2
	          GROUP BY oi.menu_item_id, mi.name, mc.name
	          ORDER BY revenue DESC`
	rows, err := r.db.Query(query, start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: querying item sales: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var row models.ItemSalesRow
		if err := rows.Scan(&row.MenuItemID, &row.ItemName, &row.CategoryName, &row.QuantitySold, &row.Revenue); err != nil {
			return nil, fmt.Errorf("%w: scanning item sales row: %v", ErrDatabaseError, err)
		}
		salesRows = append(salesRows, row)
	}
	return salesRows, rows.Err()
}

// nullDecimal converts an optional decimal to its SQL null wrapper.
func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func fromNullDecimal(nd decimal.NullDecimal) *decimal.Decimal {
	if !nd.Valid {
		return nil
	}
	d := nd.Decimal
	return &d
}
