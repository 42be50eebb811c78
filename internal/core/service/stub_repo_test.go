package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jpsm83/notes2025back/internal/core/domain"
)

// stubUserRepo is an in-memory ports.UserRepository used across service tests.
type stubUserRepo struct {
	users map[string]*domain.User
	notes map[string]int64 // user id → note count removed by DeleteWithNotes
	seq   int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User), notes: make(map[string]int64)}
}

func (r *stubUserRepo) add(u *domain.User) {
	r.users[u.ID] = u
}

func (r *stubUserRepo) FindAll(_ context.Context) ([]domain.User, error) {
	var out []domain.User
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) IsTaken(_ context.Context, username, email, excludeID string) (bool, error) {
	for id, u := range r.users {
		if id == excludeID {
			continue
		}
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if taken, _ := r.IsTaken(context.Background(), user.Username, user.Email, ""); taken {
		return nil, domain.ErrUserExists
	}
	r.seq++
	created := *user
	created.ID = "u" + strconv.Itoa(r.seq)
	r.users[created.ID] = &created
	clone := created
	return &clone, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	existing, ok := r.users[user.ID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	updated := *user
	if updated.PasswordHash == "" {
		updated.PasswordHash = existing.PasswordHash
	}
	updated.CreatedAt = existing.CreatedAt
	r.users[user.ID] = &updated
	clone := updated
	return &clone, nil
}

func (r *stubUserRepo) DeleteWithNotes(_ context.Context, id string) (int64, error) {
	if _, ok := r.users[id]; !ok {
		return 0, domain.ErrUserNotFound
	}
	delete(r.users, id)
	n := r.notes[id]
	delete(r.notes, id)
	return n, nil
}

// stubNoteRepo is an in-memory ports.NoteRepository.
type stubNoteRepo struct {
	notes map[string]*domain.NoteWithOwner
	seq   int
}

func newStubNoteRepo() *stubNoteRepo {
	return &stubNoteRepo{notes: make(map[string]*domain.NoteWithOwner)}
}

func (r *stubNoteRepo) FindAll(_ context.Context) ([]domain.NoteWithOwner, error) {
	var out []domain.NoteWithOwner
	for _, n := range r.notes {
		out = append(out, *n)
	}
	return out, nil
}

func (r *stubNoteRepo) FindByID(_ context.Context, id string) (*domain.NoteWithOwner, error) {
	n, ok := r.notes[id]
	if !ok {
		return nil, domain.ErrNoteNotFound
	}
	clone := *n
	return &clone, nil
}

func (r *stubNoteRepo) TitleTaken(_ context.Context, userID, title, excludeID string) (bool, error) {
	for id, n := range r.notes {
		if id == excludeID {
			continue
		}
		if n.UserID == userID && n.Title == title {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubNoteRepo) Create(_ context.Context, note *domain.Note) (*domain.Note, error) {
	r.seq++
	created := *note
	created.ID = fmt.Sprintf("n%d", r.seq)
	created.Ticket = int64(domain.TicketSeqStart + r.seq - 1)
	r.notes[created.ID] = &domain.NoteWithOwner{Note: created}
	clone := created
	return &clone, nil
}

func (r *stubNoteRepo) Update(_ context.Context, note *domain.Note) (*domain.Note, error) {
	existing, ok := r.notes[note.ID]
	if !ok {
		return nil, domain.ErrNoteNotFound
	}
	updated := *note
	updated.Ticket = existing.Ticket
	r.notes[note.ID] = &domain.NoteWithOwner{Note: updated, Owner: existing.Owner}
	clone := updated
	return &clone, nil
}

func (r *stubNoteRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.notes[id]; !ok {
		return domain.ErrNoteNotFound
	}
	delete(r.notes, id)
	return nil
}
