package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/custodia-labs/resumechat/internal/core/domain"
	"github.com/custodia-labs/resumechat/internal/core/ports/driven"
	"github.com/custodia-labs/resumechat/internal/core/ports/driving"
	"github.com/custodia-labs/resumechat/internal/logger"
)

// Ensure ResumeService implements the interface.
var _ driving.ResumeService = (*ResumeService)(nil)

// DefaultDisplayName is shown when neither a name nor a session exists.
const DefaultDisplayName = "Your Name"

// ResumeService assembles and exports the resume document.
type ResumeService struct {
	store     *SessionStore
	exporters map[domain.ExportFormat]driven.ResumeExporter
}

// NewResumeService creates a new resume service with the given exporters.
func NewResumeService(store *SessionStore, exporters ...driven.ResumeExporter) *ResumeService {
	s := &ResumeService{
		store:     store,
		exporters: make(map[domain.ExportFormat]driven.ResumeExporter, len(exporters)),
	}
	for _, e := range exporters {
		s.exporters[e.Format()] = e
	}
	return s
}

// Get loads the stored document, or an empty one when none exists.
func (s *ResumeService) Get(ctx context.Context) (*domain.ResumeDocument, error) {
	return s.store.GetResumeDocument(ctx)
}

// Apply appends entry to its section and persists the document.
func (s *ResumeService) Apply(ctx context.Context, entry domain.SectionEntry) (*domain.ResumeDocument, error) {
	doc, err := s.store.GetResumeDocument(ctx)
	if err != nil {
		return nil, err
	}
	if err := doc.Append(entry); err != nil {
		return nil, err
	}
	if err := s.store.SetResumeDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("save resume: %w", err)
	}

	logger.Debug("applied %s entry, section now has %d", entry.Section(), doc.Len(entry.Section()))
	return doc, nil
}

// SetPersonalInfo replaces the personal info header.
func (s *ResumeService) SetPersonalInfo(ctx context.Context, info domain.PersonalInfo) error {
	_, err := s.Apply(ctx, info)
	return err
}

// Export writes the document to w in the given format.
func (s *ResumeService) Export(ctx context.Context, w io.Writer, format domain.ExportFormat) error {
	exporter, ok := s.exporters[format]
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}

	doc, err := s.store.GetResumeDocument(ctx)
	if err != nil {
		return err
	}
	if doc.PersonalInfo.Name == "" {
		doc.PersonalInfo.Name = s.DisplayName(ctx)
	}

	if err := exporter.Export(w, doc); err != nil {
		return fmt.Errorf("export %s: %w", format, err)
	}
	return nil
}

// DisplayName returns personal_info.name, else the session user ID,
// else DefaultDisplayName.
func (s *ResumeService) DisplayName(ctx context.Context) string {
	doc, err := s.store.GetResumeDocument(ctx)
	if err == nil && doc.PersonalInfo.Name != "" {
		return doc.PersonalInfo.Name
	}

	session, err := s.store.GetSession(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrNotLoggedIn) {
			logger.Warn("display name: %v", err)
		}
		return DefaultDisplayName
	}
	return session.Credentials.UserID
}

// Formats lists the formats with a registered exporter.
func (s *ResumeService) Formats() []domain.ExportFormat {
	var out []domain.ExportFormat
	for _, f := range domain.AllExportFormats() {
		if _, ok := s.exporters[f]; ok {
			out = append(out, f)
		}
	}
	return out
}
