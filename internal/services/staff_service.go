package services

import (
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"resto_pos_backend/internal/models"
	"resto_pos_backend/internal/repositories"
)

var (
	ErrStaffNotFound     = errors.New("staff member not found")
	ErrUnknownPermission = errors.New("unknown permission string")
)

// CreateStaffRequest creates a login account and a staff record together.
type CreateStaffRequest struct {
	Username    string   `json:"username" binding:"required"`
	Password    string   `json:"password" binding:"required,min=8"`
	Email       string   `json:"email" binding:"omitempty,email"`
	FullName    string   `json:"full_name" binding:"required"`
	Position    string   `json:"position" binding:"required"`
	PhoneNumber string   `json:"phone_number"`
	Permissions []string `json:"permissions"`
}

// UpdateStaffRequest updates the staff record; account credentials are
// managed through the auth flows.
type UpdateStaffRequest struct {
	Position    string  `json:"position" binding:"required"`
	PhoneNumber *string `json:"phone_number"`
	IsActive    *bool   `json:"is_active"`
}

// StaffService manages staff members and their permission strings.
type StaffService interface {
	CreateStaffMember(req CreateStaffRequest) (*models.StaffMember, error)
	GetStaffMembers(page, pageSize int) ([]models.StaffMember, int, error)
	GetStaffMemberByID(id int64) (*models.StaffMember, error)
	UpdateStaffMember(id int64, req UpdateStaffRequest) (*models.StaffMember, error)
	DeleteStaffMember(id int64) error
	SetPermissions(staffID int64, permissions []string) (*models.StaffMember, error)
}

type staffService struct {
	staffRepo repositories.StaffRepository
	authRepo  repositories.AuthRepository
	db        *sql.DB
}

// NewStaffService creates a new instance of StaffService.
func NewStaffService(sr repositories.StaffRepository, ar repositories.AuthRepository, db *sql.DB) StaffService {
	return &staffService{staffRepo: sr, authRepo: ar, db: db}
}

func (s *staffService) CreateStaffMember(req CreateStaffRequest) (*models.StaffMember, error) {
	if err := validatePermissions(req.Permissions); err != nil {
		return nil, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     req.Username,
		PasswordHash: string(hashedPasswordBytes),
		Email:        models.NewNullString(req.Email),
		FullName:     models.NewNullString(req.FullName),
		IsActive:     true,
	}
	if _, err := s.authRepo.CreateUser(tx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrUsernameExists
		}
		return nil, fmt.Errorf("failed to create staff user account: %w", err)
	}

	staff := &models.StaffMember{
		UserID:      user.ID,
		Position:    req.Position,
		PhoneNumber: models.NewNullString(req.PhoneNumber),
		IsActive:    true,
	}
	if _, err := s.staffRepo.CreateStaffMember(tx, staff); err != nil {
		return nil, fmt.Errorf("failed to create staff member: %w", err)
	}

	if err := s.staffRepo.ReplacePermissions(tx, staff.ID, req.Permissions); err != nil {
		return nil, fmt.Errorf("failed to grant permissions: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit staff creation: %w", err)
	}

	return s.GetStaffMemberByID(staff.ID)
}

func (s *staffService) GetStaffMembers(page, pageSize int) ([]models.StaffMember, int, error) {
	staff, total, err := s.staffRepo.GetStaffMembers(page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get staff members: %w", err)
	}
	return staff, total, nil
}

func (s *staffService) GetStaffMemberByID(id int64) (*models.StaffMember, error) {
	staff, err := s.staffRepo.GetStaffMemberByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, fmt.Errorf("failed to get staff member: %w", err)
	}

	permissions, err := s.staffRepo.GetPermissions(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get staff permissions: %w", err)
	}
	staff.Permissions = permissions
	return staff, nil
}

func (s *staffService) UpdateStaffMember(id int64, req UpdateStaffRequest) (*models.StaffMember, error) {
	staff, err := s.staffRepo.GetStaffMemberByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, fmt.Errorf("failed to fetch staff member for update: %w", err)
	}

	staff.Position = req.Position
	if req.PhoneNumber != nil {
		staff.PhoneNumber = req.PhoneNumber
	}
	if req.IsActive != nil {
		staff.IsActive = *req.IsActive
	}

	if err := s.staffRepo.UpdateStaffMember(s.db, staff); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, fmt.Errorf("failed to update staff member: %w", err)
	}
	return s.GetStaffMemberByID(id)
}

func (s *staffService) DeleteStaffMember(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.staffRepo.ReplacePermissions(tx, id, nil); err != nil {
		return fmt.Errorf("failed to clear permissions: %w", err)
	}
	if err := s.staffRepo.DeleteStaffMember(tx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrStaffNotFound
		}
		return fmt.Errorf("failed to delete staff member: %w", err)
	}
	return tx.Commit()
}

func (s *staffService) SetPermissions(staffID int64, permissions []string) (*models.StaffMember, error) {
	if err := validatePermissions(permissions); err != nil {
		return nil, err
	}
	if _, err := s.staffRepo.GetStaffMemberByID(staffID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, fmt.Errorf("failed to fetch staff member: %w", err)
	}
	if err := s.staffRepo.ReplacePermissions(s.db, staffID, permissions); err != nil {
		return nil, fmt.Errorf("failed to replace permissions: %w", err)
	}
	return s.GetStaffMemberByID(staffID)
}

func validatePermissions(permissions []string) error {
	known := make(map[string]bool, len(models.AllPermissions))
	for _, p := range models.AllPermissions {
		known[p] = true
	}
	for _, p := range permissions {
		if !known[p] {
			return fmt.Errorf("%w: %q", ErrUnknownPermission, p)
		}
	}
	return nil
}
