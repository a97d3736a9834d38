package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentora/rentora-api/internal/user"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func newTestJWTService(t *testing.T) *JWTService {
	t.Helper()
	svc, err := NewJWTService(testSecret, 30*time.Minute)
	require.NoError(t, err)
	return svc
}

func testUser() *user.User {
	return &user.User{
		ID:           1,
		Email:        "alice@example.com",
		Name:         "Alice",
		TokenVersion: 1,
	}
}

func TestNewJWTService_RejectsShortKey(t *testing.T) {
	_, err := NewJWTService([]byte("too-short"), 30*time.Minute)
	require.Error(t, err)
}

func TestIssueAndVerify_RoundTrip(t *testing.T) {
	svc := newTestJWTService(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	u := testUser()
	u.TokenVersion = 7

	token, err := svc.Issue(u)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.VerifyAndDecode(token)
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", claims.Subject)
	assert.Equal(t, "Alice", claims.Name)
	assert.Equal(t, 7, claims.TokenVersion)
	assert.Equal(t, now.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, now.Add(30*time.Minute).Unix(), claims.ExpiresAt.Unix())
}

func TestVerifyAndDecode_Expired(t *testing.T) {
	svc := newTestJWTService(t)
	issuedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	svc.now = func() time.Time { return issuedAt }
	token, err := svc.Issue(testUser())
	require.NoError(t, err)

	// Still valid one minute before expiry
	svc.now = func() time.Time { return issuedAt.Add(29 * time.Minute) }
	_, err = svc.VerifyAndDecode(token)
	require.NoError(t, err)

	// Expired one minute after
	svc.now = func() time.Time { return issuedAt.Add(31 * time.Minute) }
	_, err = svc.VerifyAndDecode(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerifyAndDecode_Garbage(t *testing.T) {
	svc := newTestJWTService(t)

	for _, tokenStr := range []string{"", "not-a-token", "a.b.c"} {
		_, err := svc.VerifyAndDecode(tokenStr)
		assert.ErrorIs(t, err, ErrMalformedToken, "token %q", tokenStr)
	}
}

func TestVerifyAndDecode_WrongKey(t *testing.T) {
	svc := newTestJWTService(t)

	other, err := NewJWTService([]byte("ffffffffffffffffffffffffffffffff"), 30*time.Minute)
	require.NoError(t, err)

	token, err := other.Issue(testUser())
	require.NoError(t, err)

	_, err = svc.VerifyAndDecode(token)
	assert.ErrorIs(t, err, ErrMalformedToken)
}

func TestVerifyAndDecode_RejectsUnsignedToken(t *testing.T) {
	svc := newTestJWTService(t)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "alice@example.com",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	tokenStr, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.VerifyAndDecode(tokenStr)
	assert.ErrorIs(t, err, ErrMalformedToken)
}
