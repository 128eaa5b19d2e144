package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"resto_pos_backend/internal/models"
)

// StaffRepository defines the interface for staff-related database
// operations, including the permission strings attached to each staff
// member.
type StaffRepository interface {
	CreateStaffMember(executor SQLExecutor, staff *models.StaffMember) (int64, error)
	GetStaffMemberByID(id int64) (*models.StaffMember, error)
	GetStaffMemberByUserID(userID int64) (*models.StaffMember, error)
	GetStaffMembers(page, pageSize int) ([]models.StaffMember, int, error)
	UpdateStaffMember(executor SQLExecutor, staff *models.StaffMember) error
	DeleteStaffMember(executor SQLExecutor, id int64) error
	ReplacePermissions(executor SQLExecutor, staffID int64, permissions []string) error
	GetPermissions(staffID int64) ([]string, error)
}

type staffRepository struct {
	db *sql.DB
}

// NewStaffRepository creates a new instance of StaffRepository.
func NewStaffRepository(db *sql.DB) StaffRepository {
	return &staffRepository{db: db}
}

func (r *staffRepository) CreateStaffMember(executor SQLExecutor, staff *models.StaffMember) (int64, error) {
	query := `INSERT INTO staff_members (user_id, position, phone_number, hired_at, is_active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id`
	now := time.Now()
	err := executor.QueryRow(query,
		staff.UserID, staff.Position, staff.PhoneNumber, staff.HiredAt, staff.IsActive, now, now,
	).Scan(&staff.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, fmt.Errorf("%w: staff member for user %d already exists", ErrDuplicateKey, staff.UserID)
		}
		return 0, fmt.Errorf("%w: creating staff member: %v", ErrDatabaseError, err)
	}
	return staff.ID, nil
}

const staffSelectColumns = `sm.id, sm.user_id, sm.position, sm.phone_number, sm.hired_at, sm.is_active,
	sm.created_at, sm.updated_at, u.username, u.email, u.full_name`

func scanStaffRow(row interface{ Scan(...interface{}) error }, staff *models.StaffMember) error {
	user := models.User{}
	err := row.Scan(
		&staff.ID, &staff.UserID, &staff.Position, &staff.PhoneNumber, &staff.HiredAt, &staff.IsActive,
		&staff.CreatedAt, &staff.UpdatedAt, &user.Username, &user.Email, &user.FullName,
	)
	if err != nil {
		return err
	}
	user.ID = staff.UserID
	staff.User = &user
	return nil
}

func (r *staffRepository) GetStaffMemberByID(id int64) (*models.StaffMember, error) {
	staff := &models.StaffMember{}
	query := `SELECT ` + staffSelectColumns + `
	          FROM staff_members sm JOIN users u ON sm.user_id = u.id
	          WHERE sm.id = $1`
	if err := scanStaffRow(r.db.QueryRow(query, id), staff); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting staff member by ID %d: %v", ErrDatabaseError, id, err)
	}
	return staff, nil
}

func (r *staffRepository) GetStaffMemberByUserID(userID int64) (*models.StaffMember, error) {
	staff := &models.StaffMember{}
	query := `SELECT ` + staffSelectColumns + `
	          FROM staff_members sm JOIN users u ON sm.user_id = u.id
	          WHERE sm.user_id = $1`
	if err := scanStaffRow(r.db.QueryRow(query, userID), staff); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting staff member by user ID %d: %v", ErrDatabaseError, userID, err)
	}
	return staff, nil
}

func (r *staffRepository) GetStaffMembers(page, pageSize int) ([]models.StaffMember, int, error) {
	staffMembers := []models.StaffMember{}
	totalCount := 0
	query := `SELECT ` + staffSelectColumns + `, COUNT(*) OVER() AS total_count
	          FROM staff_members sm JOIN users u ON sm.user_id = u.id
	          ORDER BY u.full_name NULLS LAST, sm.id
	          LIMIT $1 OFFSET $2`
	offset := (page - 1) * pageSize
	rows, err := r.db.Query(query, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: getting staff members: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var staff models.StaffMember
		user := models.User{}
		err := rows.Scan(
			&staff.ID, &staff.UserID, &staff.Position, &staff.PhoneNumber, &staff.HiredAt, &staff.IsActive,
			&staff.CreatedAt, &staff.UpdatedAt, &user.Username, &user.Email, &user.FullName,
			&totalCount,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: scanning staff member: %v", ErrDatabaseError, err)
		}
		user.ID = staff.UserID
		staff.User = &user
		staffMembers = append(staffMembers, staff)
	}
	return staffMembers, totalCount, rows.Err()
}

func (r *staffRepository) UpdateStaffMember(executor SQLExecutor, staff *models.StaffMember) error {
	query := `UPDATE staff_members
	          SET position = $1, phone_number = $2, hired_at = $3, is_active = $4, updated_at = $5
	          WHERE id = $6`
	result, err := executor.Exec(query, staff.Position, staff.PhoneNumber, staff.HiredAt, staff.IsActive, time.Now(), staff.ID)
	if err != nil {
		return fmt.Errorf("%w: updating staff member %d: %v", ErrDatabaseError, staff.ID, err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *staffRepository) DeleteStaffMember(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM staff_members WHERE id = $1`, id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
			return fmt.Errorf("%w: staff member %d", ErrForeignKeyInUse, id)
		}
		return fmt.Errorf("%w: deleting staff member %d: %v", ErrDatabaseError, id, err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *staffRepository) ReplacePermissions(executor SQLExecutor, staffID int64, permissions []string) error {
	if _, err := executor.Exec(`DELETE FROM staff_permissions WHERE staff_id = $1`, staffID); err != nil {
		return fmt.Errorf("%w: clearing permissions for staff %d: %v", ErrDatabaseError, staffID, err)
	}
	for _, p := range permissions {
		if _, err := executor.Exec(
			`INSERT INTO staff_permissions (staff_id, permission, created_at) VALUES ($1, $2, $3)`,
			staffID, p, time.Now(),
		); err != nil {
			return fmt.Errorf("%w: granting permission %q to staff %d: %v", ErrDatabaseError, p, staffID, err)
		}
	}
	return nil
}

func (r *staffRepository) GetPermissions(staffID int64) ([]string, error) {
	rows, err := r.db.Query(`SELECT permission FROM staff_permissions WHERE staff_id = $1 ORDER BY permission`, staffID)
	if err != nil {
		return nil, fmt.Errorf("%w: getting permissions for staff %d: %v", ErrDatabaseError, staffID, err)
	}
	defer rows.Close()

	var permissions []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("%w: scanning permission: %v", ErrDatabaseError, err)
		}
		permissions = append(permissions, p)
	}
	return permissions, rows.Err()
}
