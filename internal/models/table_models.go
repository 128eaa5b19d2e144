package models

import "time"

// Dining table statuses.
const (
	TableStatusAvailable = "available"
	TableStatusOccupied  = "occupied"
	TableStatusReserved  = "reserved"
)

// DiningTable is a physical table in the restaurant. TableNumber is what
// payments record and what bill grouping keys on.
type DiningTable struct {
	ID          int64     `json:"id"`
	TableNumber int       `json:"table_number" db:"table_number" binding:"required"`
	Name        *string   `json:"name,omitempty" db:"name"`
	Capacity    int       `json:"capacity" db:"capacity"`
	Status      string    `json:"status" db:"status"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`

	ActiveQRCode *TableQRCode `json:"active_qr_code,omitempty"`
}

// TableQRCode is one issued QR session token for a table. A table has at
// most one active (unrevoked, unexpired) token; regeneration revokes the
// previous one. Image rendering is the client's concern; the server only
// manages the token lifecycle.
type TableQRCode struct {
	ID        int64      `json:"id"`
	TableID   int64      `json:"table_id" db:"table_id"`
	Token     string     `json:"token" db:"token"`
	IssuedAt  time.Time  `json:"issued_at" db:"issued_at"`
	ExpiresAt time.Time  `json:"expires_at" db:"expires_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty" db:"revoked_at"`
}

// Active reports whether the token is currently usable.
func (q *TableQRCode) Active(now time.Time) bool {
	return q.RevokedAt == nil && now.Before(q.ExpiresAt)
}
