package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jpsm83/notes2025back/internal/api/metrics"
	"github.com/jpsm83/notes2025back/internal/core/domain"
	"github.com/jpsm83/notes2025back/internal/core/ports"
)

const bcryptCost = 10

// UserService implements account CRUD. Duplicate pre-checks here are best
// effort; the repository maps unique-index violations to domain.ErrUserExists
// so a lost race still surfaces as a conflict.
type UserService struct {
	repo ports.UserRepository
	log  zerolog.Logger
}

func NewUserService(repo ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, log: log}
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.FindAll(ctx)
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) Create(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	taken, err := s.repo.IsTaken(ctx, input.Username, input.Email, "")
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	if taken {
		return nil, domain.ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("create user: hash password: %w", err)
	}

	roles := input.Roles
	if len(roles) == 0 {
		roles = []string{domain.DefaultRole}
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		Roles:        roles,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", created.Username).Msg("user created")
	return created, nil
}

func (s *UserService) Update(ctx context.Context, id string, input ports.UpdateUserInput) (*domain.User, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}

	taken, err := s.repo.IsTaken(ctx, input.Username, input.Email, id)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	if taken {
		return nil, domain.ErrUserExists
	}

	user := &domain.User{
		ID:        id,
		Username:  input.Username,
		Email:     input.Email,
		Roles:     input.Roles,
		Active:    input.Active,
		UpdatedAt: time.Now().UTC(),
	}
	if input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("update user: hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	return s.repo.Update(ctx, user)
}

// Delete removes the user and every note it owns in one transaction; either
// both deletions land or neither does.
func (s *UserService) Delete(ctx context.Context, id string) (*ports.DeleteUserResult, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	notesDeleted, err := s.repo.DeleteWithNotes(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("delete user: %w", err)
	}

	metrics.UsersDeletedTotal.Inc()
	s.log.Info().
		Str("username", user.Username).
		Int64("notes_deleted", notesDeleted).
		Msg("user deleted with notes")

	return &ports.DeleteUserResult{Username: user.Username, NotesDeleted: notesDeleted}, nil
}
