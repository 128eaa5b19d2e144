package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"resto_pos_backend/internal/models"
)

// TableRepository defines the interface for dining tables and their QR
// session tokens.
type TableRepository interface {
	CreateTable(executor SQLExecutor, table *models.DiningTable) (int64, error)
	GetTableByID(id int64) (*models.DiningTable, error)
	GetTableByNumber(tableNumber int) (*models.DiningTable, error)
	GetTables() ([]models.DiningTable, error)
	UpdateTable(executor SQLExecutor, table *models.DiningTable) error
	UpdateTableStatus(executor SQLExecutor, id int64, status string) error
	DeleteTable(executor SQLExecutor, id int64) error

	// QR token lifecycle
	CreateQRCode(executor SQLExecutor, qr *models.TableQRCode) (int64, error)
	GetActiveQRCodeForTable(tableID int64, now time.Time) (*models.TableQRCode, error)
	GetQRCodeByToken(token string) (*models.TableQRCode, error)
	RevokeActiveQRCodes(executor SQLExecutor, tableID int64, revokedAt time.Time) (int64, error)
}

type tableRepository struct {
	db *sql.DB
}

// NewTableRepository creates a new instance of TableRepository.
func NewTableRepository(db *sql.DB) TableRepository {
	return &tableRepository{db: db}
}

func (r *tableRepository) CreateTable(executor SQLExecutor, table *models.DiningTable) (int64, error) {
	query := `INSERT INTO dining_tables (table_number, name, capacity, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id`
	now := time.Now()
	err := executor.QueryRow(query,
		table.TableNumber, table.Name, table.Capacity, table.Status, now, now,
	).Scan(&table.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, fmt.Errorf("%w: table number %d already exists", ErrDuplicateKey, table.TableNumber)
		}
		return 0, fmt.Errorf("%w: creating dining table: %v", ErrDatabaseError, err)
	}
	return table.ID, nil
}

func (r *tableRepository) scanTable(row interface{ Scan(...interface{}) error }) (*models.DiningTable, error) {
	table := &models.DiningTable{}
	err := row.Scan(
		&table.ID, &table.TableNumber, &table.Name, &table.Capacity, &table.Status,
		&table.CreatedAt, &table.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return table, nil
}

const tableSelect = `SELECT id, table_number, name, capacity, status, created_at, updated_at FROM dining_tables`

func (r *tableRepository) GetTableByID(id int64) (*models.DiningTable, error) {
	table, err := r.scanTable(r.db.QueryRow(tableSelect+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting dining table by ID %d: %v", ErrDatabaseError, id, err)
	}
	return table, nil
}

func (r *tableRepository) GetTableByNumber(tableNumber int) (*models.DiningTable, error) {
	table, err := r.scanTable(r.db.QueryRow(tableSelect+` WHERE table_number = $1`, tableNumber))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting dining table by number %d: %v", ErrDatabaseError, tableNumber, err)
	}
	return table, nil
}

func (r *tableRepository) GetTables() ([]models.DiningTable, error) {
	tables := []models.DiningTable{}
	rows, err := r.db.Query(tableSelect + ` ORDER BY table_number`)
	if err != nil {
		return nil, fmt.Errorf("%w: getting dining tables: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var table models.DiningTable
		if err := rows.Scan(
			&table.ID, &table.TableNumber, &table.Name, &table.Capacity, &table.Status,
			&table.CreatedAt, &table.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning dining table: %v", ErrDatabaseError, err)
		}
		tables = append(tables, table)
	}
	return tables, rows.Err()
}

func (r *tableRepository) UpdateTable(executor SQLExecutor, table *models.DiningTable) error {
	query := `UPDATE dining_tables
	          SET table_number = $1, name = $2, capacity = $3, status = $4, updated_at = $5
	          WHERE id = $6`
	result, err := executor.Exec(query, table.TableNumber, table.Name, table.Capacity, table.Status, time.Now(), table.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("%w: table number %d already exists", ErrDuplicateKey, table.TableNumber)
		}
		return fmt.Errorf("%w: updating dining table %d: %v", ErrDatabaseError, table.ID, err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *tableRepository) UpdateTableStatus(executor SQLExecutor, id int64, status string) error {
	result, err := executor.Exec(
		`UPDATE dining_tables SET status = $1, updated_at = $2 WHERE id = $3`,
		status, time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("%w: updating status for dining table %d: %v", ErrDatabaseError, id, err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *tableRepository) DeleteTable(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM dining_tables WHERE id = $1`, id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
			return fmt.Errorf("%w: dining table %d has orders", ErrForeignKeyInUse, id)
		}
		return fmt.Errorf("%w: deleting dining table %d: %v", ErrDatabaseError, id, err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// --- QR Token Methods ---

func (r *tableRepository) CreateQRCode(executor SQLExecutor, qr *models.TableQRCode) (int64, error) {
	query := `INSERT INTO table_qr_codes (table_id, token, issued_at, expires_at)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id`
	err := executor.QueryRow(query, qr.TableID, qr.Token, qr.IssuedAt, qr.ExpiresAt).Scan(&qr.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, fmt.Errorf("%w: QR token collision", ErrDuplicateKey)
		}
		return 0, fmt.Errorf("%w: creating QR code for table %d: %v", ErrDatabaseError, qr.TableID, err)
	}
	return qr.ID, nil
}

const qrSelect = `SELECT id, table_id, token, issued_at, expires_at, revoked_at FROM table_qr_codes`

func (r *tableRepository) GetActiveQRCodeForTable(tableID int64, now time.Time) (*models.TableQRCode, error) {
	qr := &models.TableQRCode{}
	query := qrSelect + ` WHERE table_id = $1 AND revoked_at IS NULL AND expires_at > $2
	          ORDER BY issued_at DESC LIMIT 1`
	err := r.db.QueryRow(query, tableID, now).Scan(
		&qr.ID, &qr.TableID, &qr.Token, &qr.IssuedAt, &qr.ExpiresAt, &qr.RevokedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting active QR code for table %d: %v", ErrDatabaseError, tableID, err)
	}
	return qr, nil
}

func (r *tableRepository) GetQRCodeByToken(token string) (*models.TableQRCode, error) {
	qr := &models.TableQRCode{}
	err := r.db.QueryRow(qrSelect+` WHERE token = $1`, token).Scan(
		&qr.ID, &qr.TableID, &qr.Token, &qr.IssuedAt, &qr.ExpiresAt, &qr.RevokedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting QR code by token: %v", ErrDatabaseError, err)
	}
	return qr, nil
}

func (r *tableRepository) RevokeActiveQRCodes(executor SQLExecutor, tableID int64, revokedAt time.Time) (int64, error) {
	result, err := executor.Exec(
		`UPDATE table_qr_codes SET revoked_at = $1 WHERE table_id = $2 AND revoked_at IS NULL`,
		revokedAt, tableID,
	)
	if err != nil {
		return 0, fmt.Errorf("%w: revoking QR codes for table %d: %v", ErrDatabaseError, tableID, err)
	}
	affected, _ := result.RowsAffected()
	return affected, nil
}
