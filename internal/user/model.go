package user

import (
	"time"
)

// User is the domain model for a registered account.
// TokenVersion is bumped on every successful login; tokens minted before
// the bump no longer validate. This is the only revocation mechanism.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // never expose the hash
	Name         string    `json:"name"`
	TokenVersion int       `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
