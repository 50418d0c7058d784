// Package auth handles admin authentication: password hashing, signed
// bearer tokens, and request authorization.
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is the work factor for password hashing.
const bcryptCost = 12

// ErrCorruptHash indicates a stored password hash that bcrypt cannot parse.
// This means stored-data corruption, not a bad login attempt.
var ErrCorruptHash = errors.New("auth: corrupt password hash")

// HashPassword creates a bcrypt hash of a password for storage.
// Each call produces a distinct hash because bcrypt embeds a fresh salt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword checks a password against a stored bcrypt hash.
// Returns (false, nil) on a mismatch and a wrapped ErrCorruptHash when the
// stored hash itself is malformed.
func VerifyPassword(password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %v", ErrCorruptHash, err)
	}
}
