package driving

import (
	"context"
	"io"

	"github.com/custodia-labs/resumechat/internal/core/domain"
)

// ResumeService assembles the resume from submitted section results.
type ResumeService interface {
	// Get loads the stored document, or an empty one when none exists.
	Get(ctx context.Context) (*domain.ResumeDocument, error)

	// Apply appends entry to its section and persists the document.
	Apply(ctx context.Context, entry domain.SectionEntry) (*domain.ResumeDocument, error)

	// SetPersonalInfo replaces the personal info header.
	SetPersonalInfo(ctx context.Context, info domain.PersonalInfo) error

	// Export writes the document to w in the given format.
	Export(ctx context.Context, w io.Writer, format domain.ExportFormat) error

	// DisplayName returns the name shown in the resume header.
	DisplayName(ctx context.Context) string
}
