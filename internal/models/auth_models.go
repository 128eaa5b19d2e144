package models

import "time"

// User represents a back-office login account.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Email        *string   `json:"email,omitempty" db:"email"`
	FullName     *string   `json:"full_name,omitempty" db:"full_name"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// StaffMember links a user account to their restaurant role and the
// permission strings that gate what they may do.
type StaffMember struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id" db:"user_id"`
	Position    string    `json:"position" db:"position"`
	PhoneNumber *string   `json:"phone_number,omitempty" db:"phone_number"`
	HiredAt     *time.Time `json:"hired_at,omitempty" db:"hired_at"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`

	User        *User    `json:"user,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
}

// Permission strings known to the system. Authorization is a check of
// (user, permission-set, action) with no ambient session state.
const (
	PermMenuManage      = "menu.manage"
	PermStaffManage     = "staff.manage"
	PermTablesManage    = "tables.manage"
	PermOrdersManage    = "orders.manage"
	PermPaymentsProcess = "payments.process"
	PermDiscountsApply  = "discounts.apply"
	PermReportsView     = "reports.view"
	PermSettingsManage  = "settings.manage"
)

// AllPermissions lists every known permission string.
var AllPermissions = []string{
	PermMenuManage,
	PermStaffManage,
	PermTablesManage,
	PermOrdersManage,
	PermPaymentsProcess,
	PermDiscountsApply,
	PermReportsView,
	PermSettingsManage,
}
