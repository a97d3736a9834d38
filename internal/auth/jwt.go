package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rentora/rentora-api/internal/user"
)

var (
	// ErrMalformedToken covers structurally invalid tokens and bad signatures
	ErrMalformedToken = errors.New("malformed token")
	// ErrExpiredToken means the token was valid but its expiry has passed
	ErrExpiredToken = errors.New("token has expired")
)

// Claims are the assertions embedded in every issued token.
// TokenVersion is a copy of the user's counter at issuance time; the
// authentication middleware compares it against the stored value to
// detect revoked tokens.
type Claims struct {
	Name         string `json:"name"`
	TokenVersion int    `json:"tokenVersion"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies bearer tokens
type TokenService interface {
	Issue(u *user.User) (string, error)
	VerifyAndDecode(tokenStr string) (*Claims, error)
}

// JWTService signs and verifies HS256 JWTs with a process-wide symmetric key
type JWTService struct {
	secret        []byte
	tokenDuration time.Duration
	now           func() time.Time
}

func NewJWTService(secret []byte, tokenDuration time.Duration) (*JWTService, error) {
	// HS256 keys shorter than the hash output weaken the MAC
	if len(secret) < 32 {
		return nil, fmt.Errorf("signing key must be at least 32 bytes, got %d", len(secret))
	}

	return &JWTService{
		secret:        secret,
		tokenDuration: tokenDuration,
		now:           time.Now,
	}, nil
}

// Issue mints a signed token for the user. Pure function of the user,
// the key, and the clock; no side effects.
func (s *JWTService) Issue(u *user.User) (string, error) {
	now := s.now()

	claims := Claims{
		Name:         u.Name,
		TokenVersion: u.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenDuration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// VerifyAndDecode parses and validates a token string. The signing
// algorithm is pinned to HS256; unsigned or differently-signed tokens are
// rejected as malformed. Expired tokens are reported distinctly so
// callers can prompt re-login instead of retrying.
func (s *JWTService) VerifyAndDecode(tokenStr string) (*Claims, error) {
	claims := new(Claims)

	token, err := jwt.ParseWithClaims(tokenStr, claims,
		func(token *jwt.Token) (any, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrMalformedToken
	}

	if !token.Valid {
		return nil, ErrMalformedToken
	}

	return claims, nil
}
