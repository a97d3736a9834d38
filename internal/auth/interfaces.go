package auth

import (
	"context"

	"github.com/rentora/rentora-api/internal/user"
)

// UserStore is the slice of user persistence the auth package needs.
// Implemented by user.Repository.
type UserStore interface {
	Create(ctx context.Context, email, passwordHash, name string) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	IncrementTokenVersion(ctx context.Context, id int64) (int, error)
}
