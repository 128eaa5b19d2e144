package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"resto_pos_backend/internal/models"
	"resto_pos_backend/internal/repositories"
)

var (
	ErrTableNotFound      = errors.New("dining table not found")
	ErrTableNumberTaken   = errors.New("table number already in use")
	ErrTableHasOrders     = errors.New("dining table has orders and cannot be deleted")
	ErrQRCodeNotFound     = errors.New("QR code not found")
	ErrQRCodeExpired      = errors.New("QR code has expired or been revoked")
	ErrInvalidTableStatus = errors.New("invalid table status")
)

const defaultQRCodeTTL = 24 * time.Hour

// TableService manages dining tables and the QR session-token lifecycle:
// generate, expire, regenerate, resolve. QR image rendering is out of
// scope; clients render the token URL themselves.
type TableService interface {
	CreateTable(table *models.DiningTable) (*models.DiningTable, error)
	GetTables() ([]models.DiningTable, error)
	GetTableByID(id int64) (*models.DiningTable, error)
	UpdateTable(table *models.DiningTable) (*models.DiningTable, error)
	UpdateTableStatus(id int64, status string) (*models.DiningTable, error)
	DeleteTable(id int64) error

	GenerateQRCode(tableID int64, ttl time.Duration) (*models.TableQRCode, error)
	ExpireQRCode(tableID int64) error
	ResolveQRToken(token string) (*models.DiningTable, error)
}

type tableService struct {
	tableRepo repositories.TableRepository
	db        *sql.DB
	now       func() time.Time
}

// NewTableService creates a new instance of TableService.
func NewTableService(tr repositories.TableRepository, db *sql.DB) TableService {
	return &tableService{tableRepo: tr, db: db, now: time.Now}
}

func isValidTableStatus(status string) bool {
	switch status {
	case models.TableStatusAvailable, models.TableStatusOccupied, models.TableStatusReserved:
		return true
	default:
		return false
	}
}

func (s *tableService) CreateTable(table *models.DiningTable) (*models.DiningTable, error) {
	if table.TableNumber <= 0 {
		return nil, fmt.Errorf("%w: table number must be positive", ErrValidation)
	}
	if table.Status == "" {
		table.Status = models.TableStatusAvailable
	}
	if !isValidTableStatus(table.Status) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTableStatus, table.Status)
	}

	if _, err := s.tableRepo.CreateTable(s.db, table); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrTableNumberTaken
		}
		return nil, fmt.Errorf("failed to create dining table: %w", err)
	}
	return s.GetTableByID(table.ID)
}

func (s *tableService) GetTables() ([]models.DiningTable, error) {
	tables, err := s.tableRepo.GetTables()
	if err != nil {
		return nil, fmt.Errorf("failed to get dining tables: %w", err)
	}
	return tables, nil
}

func (s *tableService) GetTableByID(id int64) (*models.DiningTable, error) {
	table, err := s.tableRepo.GetTableByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrTableNotFound
		}
		return nil, fmt.Errorf("failed to get dining table: %w", err)
	}

	qr, err := s.tableRepo.GetActiveQRCodeForTable(id, s.now())
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to get active QR code: %w", err)
	}
	table.ActiveQRCode = qr
	return table, nil
}

func (s *tableService) UpdateTable(table *models.DiningTable) (*models.DiningTable, error) {
	if !isValidTableStatus(table.Status) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTableStatus, table.Status)
	}
	if err := s.tableRepo.UpdateTable(s.db, table); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return nil, ErrTableNotFound
		case errors.Is(err, repositories.ErrDuplicateKey):
			return nil, ErrTableNumberTaken
		}
		return nil, fmt.Errorf("failed to update dining table: %w", err)
	}
	return s.GetTableByID(table.ID)
}

func (s *tableService) UpdateTableStatus(id int64, status string) (*models.DiningTable, error) {
	if !isValidTableStatus(status) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTableStatus, status)
	}
	if err := s.tableRepo.UpdateTableStatus(s.db, id, status); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrTableNotFound
		}
		return nil, fmt.Errorf("failed to update table status: %w", err)
	}
	return s.GetTableByID(id)
}

func (s *tableService) DeleteTable(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := s.tableRepo.RevokeActiveQRCodes(tx, id, s.now()); err != nil {
		return fmt.Errorf("failed to revoke QR codes: %w", err)
	}
	if err := s.tableRepo.DeleteTable(tx, id); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return ErrTableNotFound
		case errors.Is(err, repositories.ErrForeignKeyInUse):
			return ErrTableHasOrders
		}
		return fmt.Errorf("failed to delete dining table: %w", err)
	}
	return tx.Commit()
}

// GenerateQRCode issues a fresh session token for a table, revoking any
// previously active token so at most one is valid at a time. Calling it
// on a table with an active token is the "regenerate" operation.
func (s *tableService) GenerateQRCode(tableID int64, ttl time.Duration) (*models.TableQRCode, error) {
	if _, err := s.tableRepo.GetTableByID(tableID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrTableNotFound
		}
		return nil, fmt.Errorf("failed to fetch table for QR generation: %w", err)
	}

	if ttl <= 0 {
		ttl = defaultQRCodeTTL
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	now := s.now()
	if _, err := s.tableRepo.RevokeActiveQRCodes(tx, tableID, now); err != nil {
		return nil, fmt.Errorf("failed to revoke previous QR codes: %w", err)
	}

	qr := &models.TableQRCode{
		TableID:   tableID,
		Token:     uuid.NewString(),
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}
	if _, err := s.tableRepo.CreateQRCode(tx, qr); err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit QR generation: %w", err)
	}
	return qr, nil
}

// ExpireQRCode revokes the table's active token without issuing a new one.
func (s *tableService) ExpireQRCode(tableID int64) error {
	if _, err := s.tableRepo.GetTableByID(tableID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrTableNotFound
		}
		return fmt.Errorf("failed to fetch table: %w", err)
	}

	revoked, err := s.tableRepo.RevokeActiveQRCodes(s.db, tableID, s.now())
	if err != nil {
		return fmt.Errorf("failed to revoke QR codes: %w", err)
	}
	if revoked == 0 {
		return ErrQRCodeNotFound
	}
	return nil
}

// ResolveQRToken maps a scanned token to its table. Expired or revoked
// tokens resolve to ErrQRCodeExpired so the client can prompt for a fresh
// scan.
func (s *tableService) ResolveQRToken(token string) (*models.DiningTable, error) {
	qr, err := s.tableRepo.GetQRCodeByToken(token)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrQRCodeNotFound
		}
		return nil, fmt.Errorf("failed to look up QR token: %w", err)
	}

	if !qr.Active(s.now()) {
		return nil, ErrQRCodeExpired
	}

	table, err := s.tableRepo.GetTableByID(qr.TableID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrTableNotFound
		}
		return nil, fmt.Errorf("failed to get table for QR token: %w", err)
	}
	table.ActiveQRCode = qr
	return table, nil
}
