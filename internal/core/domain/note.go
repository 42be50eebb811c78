package domain

import (
	"errors"
	"time"
)

const (
	// TicketSeqStart is the ticket number assigned to the first note ever created.
	TicketSeqStart = 500

	TitleMaxLen       = 40
	DescriptionMaxLen = 200
)

var (
	ErrNoteNotFound   = errors.New("note not found")
	ErrDuplicateTitle = errors.New("duplicate note title")
	ErrOwnerNotFound  = errors.New("note owner does not exist")
)

// Note is a single task-tracking entry owned by exactly one user.
// Title is unique per owner, enforced by a compound unique index.
type Note struct {
	ID          string    `json:"id"`
	Ticket      int64     `json:"ticket"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date"`
	Priority    bool      `json:"priority"`
	Completed   bool      `json:"completed"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NoteOwner is the slim user view embedded in note listings.
type NoteOwner struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// NoteWithOwner joins a note with its owner for read endpoints.
type NoteWithOwner struct {
	Note
	Owner NoteOwner `json:"user"`
}
