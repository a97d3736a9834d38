package auth

import (
	"context"

	"github.com/rentora/rentora-api/internal/user"
)

// ContextKey is a type for context keys to avoid collisions
type ContextKey string

// IdentityContextKey holds the authenticated user for the request
const IdentityContextKey ContextKey = "identity"

// WithIdentity returns a context carrying the authenticated user
func WithIdentity(ctx context.Context, u *user.User) context.Context {
	return context.WithValue(ctx, IdentityContextKey, u)
}

// IdentityFromContext extracts the authenticated user from the request
// context. Returns nil when the request is unauthenticated.
func IdentityFromContext(ctx context.Context) *user.User {
	u, _ := ctx.Value(IdentityContextKey).(*user.User)
	return u
}
