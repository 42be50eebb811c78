package ports

import (
	"context"
	"time"

	"github.com/jpsm83/notes2025back/internal/core/domain"
)

// CreateNoteInput carries all data needed to create a note.
type CreateNoteInput struct {
	Title       string
	Description string
	DueDate     time.Time
	Priority    bool
	UserID      string
}

// UpdateNoteInput replaces all mutable note fields. The owner reference is
// immutable after creation and is therefore absent here.
type UpdateNoteInput struct {
	Title       string
	Description string
	DueDate     time.Time
	Priority    bool
	Completed   bool
}

// UpdateNoteResult reports the outcome of an update. Changed is false when the
// payload matched the stored note field for field.
type UpdateNoteResult struct {
	Note    *domain.Note
	Changed bool
}

// NoteService defines use-case operations for notes.
type NoteService interface {
	List(ctx context.Context) ([]domain.NoteWithOwner, error)
	Get(ctx context.Context, id string) (*domain.NoteWithOwner, error)
	Create(ctx context.Context, input CreateNoteInput) (*domain.Note, error)
	Update(ctx context.Context, id string, input UpdateNoteInput) (*UpdateNoteResult, error)
	Delete(ctx context.Context, id string) error
}
