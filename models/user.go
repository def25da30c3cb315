package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// UserRole classifies what a user may do in the system.
type UserRole string

const (
	RoleLitigant UserRole = "litigant"
	RoleLawyer   UserRole = "lawyer"
	RoleAdmin    UserRole = "admin"
)

// Valid reports whether the role is one of the known values.
func (r UserRole) Valid() bool {
	switch r {
	case RoleLitigant, RoleLawyer, RoleAdmin:
		return true
	}
	return false
}

// UserStats tracks per-user usage counters shown on the dashboard.
type UserStats struct {
	Cases     int `json:"cases"`
	Documents int `json:"documents"`
}

// Value implements driver.Valuer for JSONB
func (s UserStats) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan implements sql.Scanner for JSONB
func (s *UserStats) Scan(value interface{}) error {
	if value == nil {
		*s = UserStats{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		*s = UserStats{}
		return nil
	}

	if len(bytes) == 0 {
		*s = UserStats{}
		return nil
	}

	return json.Unmarshal(bytes, s)
}

// User represents a registered account. Accounts are never hard-deleted.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // never serialized
	Name         string    `json:"name"`
	Role         UserRole  `json:"role"`
	Stats        UserStats `json:"stats"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
