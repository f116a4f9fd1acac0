package mcp

import (
	"context"
	"io"

	"github.com/custodia-labs/resumechat/internal/core/domain"
)

// mockResumeService is a mock implementation of driving.ResumeService.
type mockResumeService struct {
	doc      *domain.ResumeDocument
	name     string
	exported map[domain.ExportFormat]string
	err      error

	saved *domain.PersonalInfo
}

func (m *mockResumeService) Get(_ context.Context) (*domain.ResumeDocument, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.doc == nil {
		return domain.NewResumeDocument(), nil
	}
	return m.doc, nil
}

func (m *mockResumeService) Apply(_ context.Context, entry domain.SectionEntry) (*domain.ResumeDocument, error) {
	return m.doc, m.err
}

func (m *mockResumeService) SetPersonalInfo(_ context.Context, info domain.PersonalInfo) error {
	if m.err != nil {
		return m.err
	}
	m.saved = &info
	return nil
}

func (m *mockResumeService) Export(_ context.Context, w io.Writer, format domain.ExportFormat) error {
	if m.err != nil {
		return m.err
	}
	_, err := io.WriteString(w, m.exported[format])
	return err
}

func (m *mockResumeService) DisplayName(_ context.Context) string {
	return m.name
}

// mockSessionService is a mock implementation of driving.SessionService.
type mockSessionService struct {
	results map[domain.SectionKind]*domain.SectionResult
	err     error
}

func (m *mockSessionService) Login(_ context.Context, _ domain.Credentials) (*domain.Session, error) {
	return nil, m.err
}

func (m *mockSessionService) Logout(_ context.Context) error {
	return m.err
}

func (m *mockSessionService) Current(_ context.Context) (*domain.Session, error) {
	return nil, domain.ErrNotLoggedIn
}

func (m *mockSessionService) LastResult(_ context.Context, section domain.SectionKind) (*domain.SectionResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	r, ok := m.results[section]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return r, nil
}
