package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/resumechat/internal/core/domain"
	"github.com/custodia-labs/resumechat/internal/core/ports/driving"
	"github.com/custodia-labs/resumechat/internal/logger"
)

// Ensure SessionService implements the interface.
var _ driving.SessionService = (*SessionService)(nil)

// SessionService creates and destroys the explicit user session.
type SessionService struct {
	store *SessionStore
	now   func() time.Time
}

// NewSessionService creates a new session service.
func NewSessionService(store *SessionStore) *SessionService {
	return &SessionService{store: store, now: time.Now}
}

// Login validates creds and starts a new session. Logging in as a
// different user clears the previous user's resume and section results.
func (s *SessionService) Login(ctx context.Context, creds domain.Credentials) (*domain.Session, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	previous, ok, err := s.store.GetCredentials(ctx)
	if err != nil {
		return nil, err
	}
	if ok && previous.UserID != creds.UserID {
		logger.Info("switching user from %q to %q, clearing session", previous.UserID, creds.UserID)
		if err := s.store.ClearAll(ctx); err != nil {
			return nil, err
		}
	}

	session := &domain.Session{
		ID:          uuid.NewString(),
		Credentials: creds,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.store.SetSession(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	logger.Info("logged in as %q (session %s, key %s)", creds.UserID, session.ID, logger.Redact(creds.APIKey))
	return session, nil
}

// Logout clears the session store.
func (s *SessionService) Logout(ctx context.Context) error {
	if err := s.store.ClearAll(ctx); err != nil {
		return err
	}
	logger.Info("logged out")
	return nil
}

// Current returns the active session or domain.ErrNotLoggedIn.
func (s *SessionService) Current(ctx context.Context) (*domain.Session, error) {
	return s.store.GetSession(ctx)
}

// LastResult returns the most recently submitted result for a section.
func (s *SessionService) LastResult(ctx context.Context, section domain.SectionKind) (*domain.SectionResult, error) {
	if !section.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidSection, section)
	}
	return s.store.GetSectionResult(ctx, section)
}
