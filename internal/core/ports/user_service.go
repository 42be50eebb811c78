package ports

import (
	"context"

	"github.com/jpsm83/notes2025back/internal/core/domain"
)

// CreateUserInput carries registration data. Roles may be empty, in which case
// the default role is applied.
type CreateUserInput struct {
	Username string
	Password string
	Email    string
	Roles    []string
}

// UpdateUserInput replaces the mutable user fields. Password is optional; when
// empty the stored hash is kept.
type UpdateUserInput struct {
	Username string
	Email    string
	Roles    []string
	Active   bool
	Password string
}

// DeleteUserResult reports what a cascading delete removed.
type DeleteUserResult struct {
	Username     string
	NotesDeleted int64
}

// UserService defines use-case operations for user accounts.
type UserService interface {
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) (*DeleteUserResult, error)
}
