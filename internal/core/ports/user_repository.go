package ports

import (
	"context"

	"github.com/jpsm83/notes2025back/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
//
// Duplicate pre-checks here are a UX convenience; the unique indexes on
// username and email are the actual correctness guarantee, and writes
// surface store-level violations as domain.ErrUserExists.
type UserRepository interface {
	FindAll(ctx context.Context) ([]domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// IsTaken reports whether another user (excluding excludeID, which may be
	// empty) already holds the given username or email.
	IsTaken(ctx context.Context, username, email, excludeID string) (bool, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// Update overwrites username, email, roles and active; an empty
	// PasswordHash leaves the stored hash untouched.
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	// DeleteWithNotes removes the user and every note it owns inside a single
	// transaction and returns the number of notes deleted.
	DeleteWithNotes(ctx context.Context, id string) (int64, error)
}
