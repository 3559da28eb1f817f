// Package cryptoutil provides the credential primitives used by the
// authentication stack: bcrypt password hashing and session token generation.
package cryptoutil

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	// MinPasswordCost is the floor for the bcrypt cost factor. Configured
	// costs below this are rejected so a bad deployment cannot weaken hashes.
	MinPasswordCost = 10
	// DefaultPasswordCost is used when no cost is configured.
	DefaultPasswordCost = 12

	// sessionTokenBytes of entropy per session token (256 bits).
	sessionTokenBytes = 32
)

// ErrPasswordMismatch is returned by CheckPassword when the candidate does
// not match the stored hash. Any other error indicates malformed input.
var ErrPasswordMismatch = errors.New("password mismatch")

// HashPassword hashes a plaintext password with bcrypt at the given cost.
// Costs below MinPasswordCost are an error, not silently clamped.
func HashPassword(password string, cost int) (string, error) {
	if password == "" {
		return "", errors.New("password must not be empty")
	}
	if cost == 0 {
		cost = DefaultPasswordCost
	}
	if cost < MinPasswordCost {
		return "", fmt.Errorf("bcrypt cost %d below minimum %d", cost, MinPasswordCost)
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(digest), nil
}

// CheckPassword verifies a candidate password against a stored bcrypt hash.
// A mismatch returns ErrPasswordMismatch; a malformed hash returns the
// underlying bcrypt error.
func CheckPassword(storedHash, candidate string) error {
	err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(candidate))
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrPasswordMismatch
	}
	return fmt.Errorf("check password: %w", err)
}

// NewSessionToken returns an opaque, URL-safe session token with 256 bits
// of entropy from the operating system CSPRNG.
func NewSessionToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
