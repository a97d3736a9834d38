package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentora/rentora-api/internal/httputil"
	"github.com/rentora/rentora-api/internal/user"
)

func decodeErrorResponse(t *testing.T, rec *httptest.ResponseRecorder) httputil.ErrorResponse {
	t.Helper()
	var resp httputil.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

// middlewareFixture wires the middleware against an in-memory store with
// one registered user and returns a handler that records whether it ran.
type middlewareFixture struct {
	store   *fakeUserStore
	tokens  *JWTService
	handler http.Handler
	called  *bool
	seen    **user.User
}

func newMiddlewareFixture(t *testing.T) *middlewareFixture {
	t.Helper()

	store := newFakeUserStore()
	tokens := newTestJWTService(t)
	mw := NewMiddleware(tokens, store)

	called := false
	var seen *user.User
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		seen = IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	return &middlewareFixture{
		store:   store,
		tokens:  tokens,
		handler: mw.RequireAuth(next),
		called:  &called,
		seen:    &seen,
	}
}

func (f *middlewareFixture) registerUser(t *testing.T, email string) *user.User {
	t.Helper()
	u, err := f.store.Create(context.Background(), email, "$2a$10$hash", "Alice")
	require.NoError(t, err)
	return u
}

func (f *middlewareFixture) do(authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/rentals", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	f := newMiddlewareFixture(t)

	rec := f.do("")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, httputil.CodeMissingAuth, decodeErrorResponse(t, rec).Code)
	assert.False(t, *f.called)
}

func TestRequireAuth_InvalidHeaderFormat(t *testing.T) {
	f := newMiddlewareFixture(t)
	u := f.registerUser(t, "alice@example.com")

	token, err := f.tokens.Issue(u)
	require.NoError(t, err)

	for _, header := range []string{"Basic abc123", token, "Bearer"} {
		rec := f.do(header)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
		assert.Equal(t, httputil.CodeInvalidAuthHeader, decodeErrorResponse(t, rec).Code, "header %q", header)
	}
	assert.False(t, *f.called)
}

func TestRequireAuth_MalformedToken(t *testing.T) {
	f := newMiddlewareFixture(t)

	rec := f.do("Bearer not-a-real-token")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, httputil.CodeInvalidToken, decodeErrorResponse(t, rec).Code)
	assert.False(t, *f.called)
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	f := newMiddlewareFixture(t)
	u := f.registerUser(t, "alice@example.com")

	issuedAt := time.Now().Add(-time.Hour)
	f.tokens.now = func() time.Time { return issuedAt }
	token, err := f.tokens.Issue(u)
	require.NoError(t, err)
	f.tokens.now = time.Now

	rec := f.do("Bearer " + token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, httputil.CodeTokenExpired, decodeErrorResponse(t, rec).Code)
	assert.False(t, *f.called)
}

func TestRequireAuth_UnknownSubject(t *testing.T) {
	f := newMiddlewareFixture(t)

	ghost := &user.User{ID: 99, Email: "ghost@example.com", Name: "Ghost", TokenVersion: 1}
	token, err := f.tokens.Issue(ghost)
	require.NoError(t, err)

	rec := f.do("Bearer " + token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, httputil.CodeInvalidToken, decodeErrorResponse(t, rec).Code)
	assert.False(t, *f.called)
}

func TestRequireAuth_RevokedToken(t *testing.T) {
	f := newMiddlewareFixture(t)
	u := f.registerUser(t, "alice@example.com")

	token, err := f.tokens.Issue(u)
	require.NoError(t, err)

	// A later login bumps the stored version, revoking the token above
	_, err = f.store.IncrementTokenVersion(context.Background(), u.ID)
	require.NoError(t, err)

	rec := f.do("Bearer " + token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, httputil.CodeTokenRevoked, decodeErrorResponse(t, rec).Code)
	assert.False(t, *f.called)
}

func TestRequireAuth_ValidToken(t *testing.T) {
	f := newMiddlewareFixture(t)
	u := f.registerUser(t, "alice@example.com")

	token, err := f.tokens.Issue(u)
	require.NoError(t, err)

	rec := f.do("Bearer " + token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, *f.called)
	require.NotNil(t, *f.seen)
	assert.Equal(t, u.ID, (*f.seen).ID)
	assert.Equal(t, "alice@example.com", (*f.seen).Email)
}

func TestRequireAuth_ExistingIdentityPassesThrough(t *testing.T) {
	f := newMiddlewareFixture(t)

	preset := &user.User{ID: 42, Email: "preset@example.com", Name: "Preset", TokenVersion: 1}
	req := httptest.NewRequest(http.MethodGet, "/api/rentals", nil)
	req = req.WithContext(WithIdentity(req.Context(), preset))

	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, *f.seen)
	assert.Equal(t, int64(42), (*f.seen).ID)
}

func TestIdentityFromContext_Empty(t *testing.T) {
	assert.Nil(t, IdentityFromContext(context.Background()))
}
