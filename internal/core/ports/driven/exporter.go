package driven

import (
	"io"

	"github.com/custodia-labs/resumechat/internal/core/domain"
)

// ResumeExporter renders a resume document in one output format.
type ResumeExporter interface {
	// Format returns the format this exporter writes.
	Format() domain.ExportFormat

	// Export writes doc to w.
	Export(w io.Writer, doc *domain.ResumeDocument) error
}
