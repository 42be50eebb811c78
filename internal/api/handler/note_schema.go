package handler

import "time"

type createNoteRequest struct {
	Title       string    `json:"title"       validate:"required,max=40"`
	Description string    `json:"description" validate:"required,max=200"`
	DueDate     time.Time `json:"due_date"    validate:"required"`
	Priority    bool      `json:"priority"`
	UserID      string    `json:"user_id"     validate:"required"`
}

// updateNoteRequest requires every field; priority and completed are pointers
// so an omitted boolean fails validation instead of defaulting to false.
type updateNoteRequest struct {
	Title       string    `json:"title"       validate:"required,max=40"`
	Description string    `json:"description" validate:"required,max=200"`
	DueDate     time.Time `json:"due_date"    validate:"required"`
	Priority    *bool     `json:"priority"    validate:"required"`
	Completed   *bool     `json:"completed"   validate:"required"`
}
