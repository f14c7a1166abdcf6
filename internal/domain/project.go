package domain

import (
	"time"

	"github.com/google/uuid"
)

type ProjectRole string

const (
	RoleOwner ProjectRole = "owner"
	RoleEdit  ProjectRole = "edit"
	RoleView  ProjectRole = "view"
)

type Project struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	OwnerID   string    `json:"owner_id" db:"owner_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type ProjectAccess struct {
	ProjectID uuid.UUID   `json:"project_id" db:"project_id"`
	UserID    string      `json:"user_id" db:"user_id"`
	Role      ProjectRole `json:"role" db:"role"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
}

// SeatUsage is derived from project_access at request time, never cached.
type SeatUsage struct {
	EditSeatsUsed int `json:"editSeatsUsed" db:"edit_seats_used"`
	ViewSeatsUsed int `json:"viewSeatsUsed" db:"view_seats_used"`
}
