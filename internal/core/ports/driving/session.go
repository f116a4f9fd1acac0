package driving

import (
	"context"

	"github.com/custodia-labs/resumechat/internal/core/domain"
)

// SessionService creates and destroys the user session.
type SessionService interface {
	// Login validates creds and stores them in a new session.
	// Any previous session is replaced.
	Login(ctx context.Context, creds domain.Credentials) (*domain.Session, error)

	// Logout clears every value in the session store.
	Logout(ctx context.Context) error

	// Current returns the active session or domain.ErrNotLoggedIn.
	Current(ctx context.Context) (*domain.Session, error)

	// LastResult returns the most recently submitted result for a section.
	// Returns domain.ErrNotFound when the section was never submitted.
	LastResult(ctx context.Context, section domain.SectionKind) (*domain.SectionResult, error)
}
