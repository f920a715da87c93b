// internal/service/auth/auth.go
package auth

import (
	"context"
	"fmt"
	"time"

	"mediahub-service/internal/domain/user"
	"mediahub-service/internal/identity"
	"mediahub-service/internal/pkg/session"

	"go.uber.org/zap"
)

// AuthService owns the login and logout flows: it completes the provider
// exchange, upserts the principal, and manages the server-side session bound
// to the browser cookie.
type AuthService struct {
	provider   identity.Provider
	users      user.Repository
	sessions   session.Store
	sessionTTL time.Duration
	logger     *zap.Logger
}

func NewAuthService(
	provider identity.Provider,
	users user.Repository,
	sessions session.Store,
	sessionTTL time.Duration,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		provider:   provider,
		users:      users,
		sessions:   sessions,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

// BeginAuth returns the provider consent URL for the given anti-CSRF state.
func (s *AuthService) BeginAuth(state string) string {
	return s.provider.BeginAuth(state)
}

// CompleteAuth finishes the OAuth round-trip: code exchange, principal
// upsert, session creation. On any failure no session exists and the caller
// must send the user back to the login page.
func (s *AuthService) CompleteAuth(ctx context.Context, code string) (*user.User, *session.Session, error) {
	ident, err := s.provider.CompleteAuth(ctx, code)
	if err != nil {
		return nil, nil, fmt.Errorf("identity exchange: %w", err)
	}

	u, err := s.users.Upsert(ctx, ident)
	if err != nil {
		return nil, nil, fmt.Errorf("principal upsert: %w", err)
	}

	sessionID, err := session.GenerateID()
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	sess := &session.Session{
		ID:        sessionID,
		UserID:    u.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}

	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, nil, fmt.Errorf("session create: %w", err)
	}

	s.logger.Info("user logged in",
		zap.String("user_id", u.ID),
		zap.String("provider", s.provider.Name()),
	)

	return u, sess, nil
}

// CurrentUser resolves the principal behind a session's user id.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*user.User, error) {
	return s.users.FindByID(ctx, userID)
}

// Logout destroys the session. It fails closed: if the store delete errors,
// the caller must see the failure and keep the session cookie so cleanup can
// be retried - the session is never presumed gone on a partial failure.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		s.logger.Error("session destroy failed", zap.Error(err))
		return fmt.Errorf("session destroy: %w", err)
	}

	s.logger.Info("user logged out and session destroyed")
	return nil
}
