package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/rentora/rentora-api/internal/logging"
	"github.com/rentora/rentora-api/internal/user"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailRequired      = errors.New("email is required")
	ErrInvalidEmailFormat = errors.New("invalid email format")
	ErrPasswordRequired   = errors.New("password is required")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrPasswordTooLong    = errors.New("password must not exceed 72 characters")
	ErrNameLength         = errors.New("name must be between 3 and 20 characters")
)

// Service handles registration and login
type Service struct {
	users      UserStore
	tokens     TokenService
	logger     *logging.Logger
	bcryptCost int
}

func NewService(users UserStore, tokens TokenService, logger *logging.Logger, bcryptCost int) *Service {
	return &Service{
		users:      users,
		tokens:     tokens,
		logger:     logger,
		bcryptCost: bcryptCost,
	}
}

// Register creates a new account and returns a token for it (auto-login).
// The new user's token version starts at 1 and the issued token carries it.
func (s *Service) Register(ctx context.Context, email, password, name string) (string, *user.User, error) {
	email = NormalizeEmail(email)

	if email == "" {
		return "", nil, ErrEmailRequired
	}
	if len(email) > 254 {
		return "", nil, ErrInvalidEmailFormat
	}
	// A bare address only; display-name forms like "alice <a@b.c>" parse
	// but must not be persisted as the email
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", nil, ErrInvalidEmailFormat
	}
	if password == "" {
		return "", nil, ErrPasswordRequired
	}
	if len(password) < 8 {
		return "", nil, ErrPasswordTooShort
	}
	// bcrypt reads at most 72 bytes and rejects longer inputs outright
	if len(password) > 72 {
		return "", nil, ErrPasswordTooLong
	}
	if nameLen := len(strings.TrimSpace(name)); nameLen < 3 || nameLen > 20 {
		return "", nil, ErrNameLength
	}

	passwordHash, err := HashPassword(password, s.bcryptCost)
	if err != nil {
		return "", nil, fmt.Errorf("failed to hash password: %w", err)
	}

	newUser, err := s.users.Create(ctx, email, passwordHash, strings.TrimSpace(name))
	if err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			return "", nil, user.ErrDuplicateEmail
		}
		return "", nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokens.Issue(newUser)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return token, newUser, nil
}

// Login authenticates a user and returns a fresh token. The token version
// is incremented first, so every login invalidates all previously issued
// tokens for the account.
//
// Unknown email and wrong password produce the same error to prevent
// account enumeration.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	email = NormalizeEmail(email)

	if email == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to get user: %w", err)
	}

	if !VerifyPassword(existing.PasswordHash, password) {
		return "", ErrInvalidCredentials
	}

	version, err := s.users.IncrementTokenVersion(ctx, existing.ID)
	if err != nil {
		return "", fmt.Errorf("failed to increment token version: %w", err)
	}
	existing.TokenVersion = version

	token, err := s.tokens.Issue(existing)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	return token, nil
}

// NormalizeEmail lowercases and trims an email address. Applied before
// every lookup and before persistence so uniqueness is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
