package model

import (
	"errors"
	"time"
)

// Identity is the authentication service's record of a user: the opaque
// uid, the login email, and whether that email has been confirmed. It is
// what a signed-in session carries.
type Identity struct {
	UID           string    `json:"uid"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	EmailVerified bool      `json:"emailVerified"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Account is the board's own profile document, keyed by the identity uid
// but distinct from the identity itself. It is what the profile dropdown
// and item cards display.
type Account struct {
	ID            string `json:"id"`
	UID           string `json:"uid"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"emailVerified"`
	CreatedAt     string `json:"createdAt"`
}

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 8

// ValidatePassword checks password requirements.
func ValidatePassword(password string) error {
	if password == "" {
		return errors.New("password required")
	}
	if len(password) < MinPasswordLength {
		return errors.New("password must be at least 8 characters")
	}
	return nil
}
