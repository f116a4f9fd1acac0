package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/resumechat/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/resumechat/internal/core/domain"
)

var testCreds = domain.Credentials{UserID: "ada", APIKey: "sk-test-1234"}

// fakeBackend is a scripted ChatBackend.
type fakeBackend struct {
	mu sync.Mutex

	startTurn *domain.ChatTurn
	startErr  error
	replies   []*domain.ChatTurn
	sendErr   error
	result    json.RawMessage
	resultErr error

	// block, when set, holds SendMessage until it is closed or ctx ends.
	block   chan struct{}
	entered chan struct{}

	sent      []string
	creds     []domain.Credentials
	sections  []domain.SectionKind
	fetchedID string
}

func (f *fakeBackend) StartChat(_ context.Context, section domain.SectionKind, creds domain.Credentials) (*domain.ChatTurn, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creds = append(f.creds, creds)
	f.sections = append(f.sections, section)
	if f.startErr != nil {
		return nil, f.startErr
	}
	return f.startTurn, nil
}

func (f *fakeBackend) SendMessage(ctx context.Context, _ domain.SectionKind, _ string, message string, _ domain.Credentials) (*domain.ChatTurn, error) {
	if f.block != nil {
		if f.entered != nil {
			f.entered <- struct{}{}
		}
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, &domain.TransportError{Op: "chat", Err: ctx.Err()}
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, message)
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	if len(f.replies) == 0 {
		return nil, errors.New("no scripted reply")
	}
	reply := f.replies[0]
	f.replies = f.replies[1:]
	return reply, nil
}

func (f *fakeBackend) FetchResult(_ context.Context, _ domain.SectionKind, chatID string, _ domain.Credentials) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetchedID = chatID
	if f.resultErr != nil {
		return nil, f.resultErr
	}
	return f.result, nil
}

// fakeExporter writes a fixed marker plus the resume name.
type fakeExporter struct {
	format domain.ExportFormat
	err    error
}

func (e fakeExporter) Format() domain.ExportFormat { return e.format }

func (e fakeExporter) Export(w io.Writer, doc *domain.ResumeDocument) error {
	if e.err != nil {
		return e.err
	}
	_, err := io.WriteString(w, string(e.format)+":"+doc.PersonalInfo.Name)
	return err
}

// failingKV fails every operation.
type failingKV struct{ err error }

func (f failingKV) Get(context.Context, string) (string, bool, error) { return "", false, f.err }
func (f failingKV) Set(context.Context, string, string) error         { return f.err }
func (f failingKV) Delete(context.Context, string) error              { return f.err }
func (f failingKV) Clear(context.Context) error                       { return f.err }
func (f failingKV) Path() string                                      { return "" }

func newLoggedInStore(t *testing.T) (*SessionStore, *memory.KVStore) {
	t.Helper()
	kv := memory.NewKVStore()
	store := NewSessionStore(kv)
	_, err := NewSessionService(store).Login(context.Background(), testCreds)
	require.NoError(t, err)
	return store, kv
}
