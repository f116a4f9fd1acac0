package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/custodia-labs/resumechat/internal/core/domain"
	"github.com/custodia-labs/resumechat/internal/core/ports/driven"
)

// Session store keys.
const (
	keyUserID           = "userId"
	keyAPIKey           = "apiKey"
	keySessionID        = "sessionId"
	keySessionCreatedAt = "sessionCreatedAt"
	keyResumeData       = "resumeData"
)

func chatIDKey(section domain.SectionKind) string { return section.String() + "_chatId" }
func dataKey(section domain.SectionKind) string   { return section.String() + "_data" }

// SessionStore is the typed view of the session key-value store.
// Every value is stored as JSON text and decoded on read.
type SessionStore struct {
	kv driven.KeyValueStore
}

// NewSessionStore wraps kv.
func NewSessionStore(kv driven.KeyValueStore) *SessionStore {
	return &SessionStore{kv: kv}
}

// Path returns where the underlying store keeps its data.
func (s *SessionStore) Path() string {
	return s.kv.Path()
}

// SetCredentials stores the user ID and API key verbatim.
func (s *SessionStore) SetCredentials(ctx context.Context, creds domain.Credentials) error {
	if err := s.put(ctx, keyUserID, creds.UserID); err != nil {
		return err
	}
	return s.put(ctx, keyAPIKey, creds.APIKey)
}

// GetCredentials returns the stored credentials and whether both are present.
func (s *SessionStore) GetCredentials(ctx context.Context) (domain.Credentials, bool, error) {
	var creds domain.Credentials
	okUser, err := s.get(ctx, keyUserID, &creds.UserID)
	if err != nil {
		return domain.Credentials{}, false, err
	}
	okKey, err := s.get(ctx, keyAPIKey, &creds.APIKey)
	if err != nil {
		return domain.Credentials{}, false, err
	}
	return creds, okUser && okKey, nil
}

// SetSession stores the session and its credentials.
func (s *SessionStore) SetSession(ctx context.Context, session *domain.Session) error {
	if err := s.SetCredentials(ctx, session.Credentials); err != nil {
		return err
	}
	if err := s.put(ctx, keySessionID, session.ID); err != nil {
		return err
	}
	return s.put(ctx, keySessionCreatedAt, session.CreatedAt)
}

// GetSession rebuilds the session, or returns domain.ErrNotLoggedIn when
// either credential is missing or empty.
func (s *SessionStore) GetSession(ctx context.Context) (*domain.Session, error) {
	creds, ok, err := s.GetCredentials(ctx)
	if err != nil {
		return nil, err
	}
	if !ok || creds.Validate() != nil {
		return nil, domain.ErrNotLoggedIn
	}

	session := &domain.Session{Credentials: creds}
	if _, err := s.get(ctx, keySessionID, &session.ID); err != nil {
		return nil, err
	}
	if _, err := s.get(ctx, keySessionCreatedAt, &session.CreatedAt); err != nil {
		return nil, err
	}
	return session, nil
}

// SetResumeDocument stores the whole document.
func (s *SessionStore) SetResumeDocument(ctx context.Context, doc *domain.ResumeDocument) error {
	return s.put(ctx, keyResumeData, doc)
}

// GetResumeDocument returns the stored document, or an empty one when absent.
func (s *SessionStore) GetResumeDocument(ctx context.Context) (*domain.ResumeDocument, error) {
	raw, ok, err := s.kv.Get(ctx, keyResumeData)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", keyResumeData, err)
	}
	if !ok {
		return domain.NewResumeDocument(), nil
	}
	return domain.DecodeResumeDocument([]byte(raw))
}

// SetSectionResult stores the chat ID and normalized entry of a submitted section.
func (s *SessionStore) SetSectionResult(ctx context.Context, section domain.SectionKind, chatID string, entry domain.SectionEntry) error {
	if err := s.put(ctx, chatIDKey(section), chatID); err != nil {
		return err
	}
	return s.put(ctx, dataKey(section), entry)
}

// GetSectionResult returns the last submitted result for section,
// or domain.ErrNotFound.
func (s *SessionStore) GetSectionResult(ctx context.Context, section domain.SectionKind) (*domain.SectionResult, error) {
	result := &domain.SectionResult{Section: section}
	ok, err := s.get(ctx, chatIDKey(section), &result.ChatID)
	if err != nil {
		return nil, err
	}

	raw, found, err := s.kv.Get(ctx, dataKey(section))
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", dataKey(section), err)
	}
	if !ok || !found {
		return nil, fmt.Errorf("%s result: %w", section, domain.ErrNotFound)
	}

	result.Entry, err = domain.DecodeEntry(section, []byte(raw))
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ClearAll removes every session value. It is the only invalidation.
func (s *SessionStore) ClearAll(ctx context.Context) error {
	if err := s.kv.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *SessionStore) put(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (s *SessionStore) get(ctx context.Context, key string, dst any) (bool, error) {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("get %s: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}
