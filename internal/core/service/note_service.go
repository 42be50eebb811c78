package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jpsm83/notes2025back/internal/api/metrics"
	"github.com/jpsm83/notes2025back/internal/core/domain"
	"github.com/jpsm83/notes2025back/internal/core/ports"
)

// NotesCache abstracts the read-through listing cache (Redis). There is no
// invalidation on write; entries age out after a fixed TTL, so reads may lag
// writes by up to one TTL window.
type NotesCache interface {
	Get(ctx context.Context) ([]domain.NoteWithOwner, bool, error)
	Set(ctx context.Context, notes []domain.NoteWithOwner) error
}

// NoteService implements note CRUD. The owner reference is validated at
// creation time and immutable afterwards.
type NoteService struct {
	repo  ports.NoteRepository
	users ports.UserRepository
	cache NotesCache
	log   zerolog.Logger
}

func NewNoteService(repo ports.NoteRepository, users ports.UserRepository, cache NotesCache, log zerolog.Logger) *NoteService {
	return &NoteService{repo: repo, users: users, cache: cache, log: log}
}

// List serves the full listing read-through from the cache. Cache failures are
// non-fatal; the store remains the source of truth.
func (s *NoteService) List(ctx context.Context) ([]domain.NoteWithOwner, error) {
	if s.cache != nil {
		notes, hit, err := s.cache.Get(ctx)
		if err != nil {
			s.log.Warn().Err(err).Msg("notes cache read failed, falling back to store")
		} else if hit {
			metrics.NotesCacheTotal.WithLabelValues("hit").Inc()
			return notes, nil
		} else {
			metrics.NotesCacheTotal.WithLabelValues("miss").Inc()
		}
	}

	notes, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && len(notes) > 0 {
		if err := s.cache.Set(ctx, notes); err != nil {
			s.log.Warn().Err(err).Msg("notes cache write failed")
		}
	}
	return notes, nil
}

func (s *NoteService) Get(ctx context.Context, id string) (*domain.NoteWithOwner, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *NoteService) Create(ctx context.Context, input ports.CreateNoteInput) (*domain.Note, error) {
	if _, err := s.users.FindByID(ctx, input.UserID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrOwnerNotFound
		}
		return nil, fmt.Errorf("create note: %w", err)
	}

	taken, err := s.repo.TitleTaken(ctx, input.UserID, input.Title, "")
	if err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}
	if taken {
		return nil, domain.ErrDuplicateTitle
	}

	dueDate := input.DueDate
	if dueDate.IsZero() {
		dueDate = time.Now().UTC()
	}

	now := time.Now().UTC()
	note := &domain.Note{
		Title:       input.Title,
		Description: input.Description,
		DueDate:     dueDate,
		Priority:    input.Priority,
		UserID:      input.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, note)
	if err != nil {
		return nil, err
	}

	metrics.NotesCreatedTotal.Inc()
	s.log.Info().Str("title", created.Title).Int64("ticket", created.Ticket).Msg("note created")
	return created, nil
}

func (s *NoteService) Update(ctx context.Context, id string, input ports.UpdateNoteInput) (*ports.UpdateNoteResult, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	taken, err := s.repo.TitleTaken(ctx, existing.UserID, input.Title, id)
	if err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}
	if taken {
		return nil, domain.ErrDuplicateTitle
	}

	if input.Title == existing.Title &&
		input.Description == existing.Description &&
		input.DueDate.Equal(existing.DueDate) &&
		input.Priority == existing.Priority &&
		input.Completed == existing.Completed {
		return &ports.UpdateNoteResult{Note: &existing.Note, Changed: false}, nil
	}

	note := existing.Note
	note.Title = input.Title
	note.Description = input.Description
	note.DueDate = input.DueDate
	note.Priority = input.Priority
	note.Completed = input.Completed
	note.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, &note)
	if err != nil {
		return nil, err
	}
	return &ports.UpdateNoteResult{Note: updated, Changed: true}, nil
}

func (s *NoteService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
