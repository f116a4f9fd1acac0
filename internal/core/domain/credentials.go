package domain

import (
	"strings"
	"time"
)

// Credentials identify the user to the remote chat service.
// Values are kept verbatim; only emptiness is checked.
type Credentials struct {
	// UserID is the name the user logged in with. Sent as user_id.
	UserID string `json:"user_id"`
	// APIKey is sent as the x-api-key header and nowhere else.
	APIKey string `json:"api_key"`
}

// Validate checks that both fields are non-empty after trimming.
func (c Credentials) Validate() error {
	if strings.TrimSpace(c.UserID) == "" || strings.TrimSpace(c.APIKey) == "" {
		return ErrInvalidCredentials
	}
	return nil
}

// IsZero reports whether no credentials are present.
func (c Credentials) IsZero() bool {
	return c.UserID == "" && c.APIKey == ""
}

// Session is the explicit context created at login and destroyed at logout.
// Components receive it instead of reading credentials ambiently.
type Session struct {
	// ID is the unique identifier (UUID).
	ID string `json:"id"`
	// Credentials are immutable for the lifetime of the session.
	Credentials Credentials `json:"credentials"`
	// CreatedAt is when the user logged in.
	CreatedAt time.Time `json:"created_at"`
}
