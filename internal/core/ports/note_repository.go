package ports

import (
	"context"

	"github.com/jpsm83/notes2025back/internal/core/domain"
)

// NoteRepository defines persistence operations for notes.
type NoteRepository interface {
	// FindAll returns every note joined with its owner's id and username.
	FindAll(ctx context.Context) ([]domain.NoteWithOwner, error)
	FindByID(ctx context.Context, id string) (*domain.NoteWithOwner, error)
	// TitleTaken reports whether the owner already has another note (excluding
	// excludeID, which may be empty) with the given title.
	TitleTaken(ctx context.Context, userID, title, excludeID string) (bool, error)
	// Create inserts the note and assigns its ticket number from the counter.
	Create(ctx context.Context, note *domain.Note) (*domain.Note, error)
	Update(ctx context.Context, note *domain.Note) (*domain.Note, error)
	Delete(ctx context.Context, id string) error
}
