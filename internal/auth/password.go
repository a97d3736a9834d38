package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword creates a salted bcrypt hash of the password. The salt is
// embedded in the output, so hashing the same password twice yields
// different strings.
func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether the password matches the stored hash.
// A malformed stored hash verifies as false rather than erroring.
func VerifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
