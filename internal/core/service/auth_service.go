package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jpsm83/notes2025back/internal/api/metrics"
	"github.com/jpsm83/notes2025back/internal/core/domain"
	"github.com/jpsm83/notes2025back/internal/core/ports"
	"github.com/jpsm83/notes2025back/internal/core/token"
)

// AuditLog records authentication failures durably. Implementations must never
// fail the calling request; write errors are swallowed internally.
type AuditLog interface {
	AuthFailure(username, reason string)
}

// AuthService implements login and refresh. Every login failure collapses to
// domain.ErrInvalidCredentials so the response gives no enumeration signal;
// the audit log keeps the real reason.
type AuthService struct {
	users  ports.UserRepository
	issuer *token.Issuer
	audit  AuditLog
	log    zerolog.Logger
}

func NewAuthService(users ports.UserRepository, issuer *token.Issuer, audit AuditLog, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, issuer: issuer, audit: audit, log: log}
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.audit.AuthFailure(username, "unknown user")
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if !user.Active {
		s.audit.AuthFailure(username, "inactive user")
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.audit.AuthFailure(username, "invalid password")
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	accessToken, err := s.issuer.MintAccess(user.ID, user.Username, user.Roles)
	if err != nil {
		return nil, fmt.Errorf("login: mint access token: %w", err)
	}
	refreshToken, err := s.issuer.MintRefresh(user.ID)
	if err != nil {
		return nil, fmt.Errorf("login: mint refresh token: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("username", user.Username).Msg("user logged in")

	return &ports.LoginResult{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Refresh verifies the refresh token and mints a new access token. Roles are
// re-read from the store, not taken from the stale refresh claims, so a role
// change takes effect without forcing re-login. The refresh token itself is
// never rotated here; it stays valid until its original expiry.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, status := s.issuer.VerifyRefresh(refreshToken)
	if status != token.StatusValid {
		s.audit.AuthFailure("", "refresh token "+status.String())
		metrics.RefreshesTotal.WithLabelValues("failure").Inc()
		return "", domain.ErrTokenInvalid
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.audit.AuthFailure(claims.UserID, "refresh for missing user")
			metrics.RefreshesTotal.WithLabelValues("failure").Inc()
			return "", domain.ErrUserNotFound
		}
		return "", fmt.Errorf("refresh: %w", err)
	}

	accessToken, err := s.issuer.MintAccess(user.ID, user.Username, user.Roles)
	if err != nil {
		return "", fmt.Errorf("refresh: mint access token: %w", err)
	}

	metrics.RefreshesTotal.WithLabelValues("success").Inc()
	return accessToken, nil
}
