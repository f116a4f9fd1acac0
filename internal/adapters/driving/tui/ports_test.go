package tui

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/resumechat/internal/core/domain"
	"github.com/custodia-labs/resumechat/internal/core/ports/driving"
)

// MockSessionService implements driving.SessionService for testing.
type MockSessionService struct {
	CurrentFunc func(ctx context.Context) (*domain.Session, error)
	LoginFunc   func(ctx context.Context, creds domain.Credentials) (*domain.Session, error)
	LogoutFunc  func(ctx context.Context) error
}

func (m *MockSessionService) Login(ctx context.Context, creds domain.Credentials) (*domain.Session, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, creds)
	}
	return &domain.Session{ID: "s1", Credentials: creds}, nil
}

func (m *MockSessionService) Logout(ctx context.Context) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx)
	}
	return nil
}

func (m *MockSessionService) Current(ctx context.Context) (*domain.Session, error) {
	if m.CurrentFunc != nil {
		return m.CurrentFunc(ctx)
	}
	return nil, domain.ErrNotLoggedIn
}

func (m *MockSessionService) LastResult(context.Context, domain.SectionKind) (*domain.SectionResult, error) {
	return nil, domain.ErrNotFound
}

// MockResumeService implements driving.ResumeService for testing.
type MockResumeService struct {
	mu       sync.Mutex
	Doc      *domain.ResumeDocument
	ApplyErr error
	Applied  []domain.SectionEntry
}

func (m *MockResumeService) Get(context.Context) (*domain.ResumeDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Doc == nil {
		m.Doc = domain.NewResumeDocument()
	}
	return m.Doc, nil
}

func (m *MockResumeService) Apply(_ context.Context, entry domain.SectionEntry) (*domain.ResumeDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ApplyErr != nil {
		return nil, m.ApplyErr
	}
	if m.Doc == nil {
		m.Doc = domain.NewResumeDocument()
	}
	m.Applied = append(m.Applied, entry)
	if err := m.Doc.Append(entry); err != nil {
		return nil, err
	}
	return m.Doc, nil
}

func (m *MockResumeService) SetPersonalInfo(context.Context, domain.PersonalInfo) error {
	return nil
}

func (m *MockResumeService) Export(_ context.Context, w io.Writer, _ domain.ExportFormat) error {
	_, err := io.WriteString(w, "# resume\n")
	return err
}

func (m *MockResumeService) DisplayName(context.Context) string {
	return "ada"
}

// MockChatService implements driving.ChatService for testing.
type MockChatService struct {
	Workflow *MockWorkflow
	BeginErr error
}

func (m *MockChatService) Begin(_ context.Context, section domain.SectionKind) (driving.ChatWorkflow, error) {
	if m.BeginErr != nil {
		return nil, m.BeginErr
	}
	if m.Workflow == nil {
		m.Workflow = &MockWorkflow{State: domain.NewChatState(section)}
	}
	return m.Workflow, nil
}

// MockWorkflow implements driving.ChatWorkflow for testing.
type MockWorkflow struct {
	State     domain.ChatState
	Entry     domain.SectionEntry
	StartErr  error
	SendErr   error
	SubmitErr error
}

func (m *MockWorkflow) Section() domain.SectionKind { return m.State.Section }

func (m *MockWorkflow) Start(context.Context) error { return m.StartErr }

func (m *MockWorkflow) Send(context.Context, string) error { return m.SendErr }

func (m *MockWorkflow) Submit(context.Context) (domain.SectionEntry, error) {
	return m.Entry, m.SubmitErr
}

func (m *MockWorkflow) Snapshot() domain.ChatState { return m.State }

func TestNewPorts(t *testing.T) {
	session := &MockSessionService{}
	resume := &MockResumeService{}
	chat := &MockChatService{}

	ports := NewPorts(session, resume, chat)

	require.NotNil(t, ports)
	assert.Equal(t, session, ports.Session)
	assert.Equal(t, resume, ports.Resume)
	assert.Equal(t, chat, ports.Chat)
}

func TestPorts_Validate(t *testing.T) {
	tests := []struct {
		name  string
		ports *Ports
		want  error
	}{
		{"nil ports", nil, ErrInvalidPorts},
		{"missing session", &Ports{Resume: &MockResumeService{}, Chat: &MockChatService{}}, ErrMissingSessionService},
		{"missing resume", &Ports{Session: &MockSessionService{}, Chat: &MockChatService{}}, ErrMissingResumeService},
		{"missing chat", &Ports{Session: &MockSessionService{}, Resume: &MockResumeService{}}, ErrMissingChatService},
		{"complete", NewPorts(&MockSessionService{}, &MockResumeService{}, &MockChatService{}), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ports.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
