// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is an account that can sign in to the ministry site.
type User struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"` // Unique, stored lower-cased.
	PasswordHash string     `json:"-"`     // bcrypt hash, never serialized.
	FullName     string     `json:"full_name"`
	Role         Role       `json:"role"`
	IsActive     bool       `json:"is_active"` // Inactive accounts cannot sign in.
	LastLogin    *time.Time `json:"last_login,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
