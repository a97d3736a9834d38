package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rentora/rentora-api/internal/httputil"
	"github.com/rentora/rentora-api/internal/logging"
	"github.com/rentora/rentora-api/internal/user"
)

// Middleware authenticates requests on protected routes. Public routes
// (login, register, docs) are mounted outside the protected group and
// never pass through it.
type Middleware struct {
	tokens TokenService
	users  UserStore
}

func NewMiddleware(tokens TokenService, users UserStore) *Middleware {
	return &Middleware{tokens: tokens, users: users}
}

// RequireAuth validates the bearer token and attaches the resolved user
// to the request context. Every failure is resolved here with a 401; the
// downstream handler never runs on a rejected request.
//
// Checks run in order and short-circuit: header present and well-formed,
// signature valid, not expired, subject exists, token version matches the
// user's current counter.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := logging.GetLoggerFromContext(r.Context())

		// An identity resolved by an earlier stage is never overwritten
		if IdentityFromContext(r.Context()) != nil {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			logger.Info("request rejected: missing authorization header")
			httputil.RespondErrorWithCode(w, "authentication required", httputil.CodeMissingAuth, http.StatusUnauthorized)
			return
		}

		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || token == "" {
			logger.Info("request rejected: invalid authorization header format")
			httputil.RespondErrorWithCode(w, "invalid authorization header format", httputil.CodeInvalidAuthHeader, http.StatusUnauthorized)
			return
		}

		claims, err := m.tokens.VerifyAndDecode(token)
		if err != nil {
			if errors.Is(err, ErrExpiredToken) {
				logger.Info("request rejected: token expired")
				httputil.RespondErrorWithCode(w, "token has expired", httputil.CodeTokenExpired, http.StatusUnauthorized)
				return
			}
			logger.Info("request rejected: malformed token")
			httputil.RespondErrorWithCode(w, "invalid token", httputil.CodeInvalidToken, http.StatusUnauthorized)
			return
		}

		u, err := m.users.GetByEmail(r.Context(), claims.Subject)
		if err != nil {
			if errors.Is(err, user.ErrNotFound) {
				logger.Info("request rejected: token subject not found")
				httputil.RespondErrorWithCode(w, "invalid token", httputil.CodeInvalidToken, http.StatusUnauthorized)
				return
			}
			logger.Error("failed to resolve token subject", "error", err.Error())
			httputil.RespondErrorWithCode(w, "authentication failed", httputil.CodeInternalError, http.StatusInternalServerError)
			return
		}

		// A version mismatch means a later login revoked this token
		if claims.TokenVersion != u.TokenVersion {
			logger.Info("request rejected: token revoked by a later login", "user_id", u.ID)
			httputil.RespondErrorWithCode(w, "token has been revoked", httputil.CodeTokenRevoked, http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), u)))
	})
}
