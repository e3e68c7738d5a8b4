// Package users manages account records for the filing and CRM surfaces.
package users

import (
	"errors"
	"strings"
	"time"
)

// User is one account.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"fullName"`
	PasswordHash string    `json:"-"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CreateInput captures account creation input.
type CreateInput struct {
	Email    string
	FullName string
	Password string
}

// Validate ensures correctness.
func (in CreateInput) Validate() error {
	if !strings.Contains(in.Email, "@") {
		return errors.New("users: valid email required")
	}
	if strings.TrimSpace(in.FullName) == "" {
		return errors.New("users: full name required")
	}
	if len(in.Password) < 8 {
		return errors.New("users: password must be at least 8 characters")
	}
	return nil
}

var (
	// ErrUserNotFound occurs when a user id or email resolves to nothing.
	ErrUserNotFound = errors.New("users: not found")
	// ErrEmailTaken occurs on duplicate registration.
	ErrEmailTaken = errors.New("users: email already registered")
)
