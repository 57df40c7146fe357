// Package auth implements the password gate and browser session handling.
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/ekaya-inc/sqlassist/pkg/apperrors"
)

// VerifyPassword compares a submitted plaintext password against the
// configured bcrypt hash. Returns apperrors.ErrInvalidPassword on mismatch.
func VerifyPassword(password, hashedPassword string) error {
	if password == "" {
		return apperrors.ErrInvalidPassword
	}

	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	if err == bcrypt.ErrMismatchedHashAndPassword {
		return apperrors.ErrInvalidPassword
	}
	if err != nil {
		// Malformed hash or unsupported cost - a configuration problem,
		// not a wrong password.
		return fmt.Errorf("verify password: %w", err)
	}
	return nil
}

// HashPassword produces a bcrypt hash suitable for HASHED_PASSWORD.
// Used by tests and by operators setting up the dashboard.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
