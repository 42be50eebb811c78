package domain

import (
	"errors"
	"time"
)

// DefaultRole is assigned when a user is created without explicit roles.
const DefaultRole = "Employee"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("duplicate username or email")
	ErrUserInactive       = errors.New("user is inactive")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTokenInvalid covers both a bad signature and an expired token; the
	// two must be indistinguishable to the caller.
	ErrTokenInvalid = errors.New("invalid or expired token")
)

// User models an account that can authenticate and own notes.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Roles        []string  `json:"roles"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
