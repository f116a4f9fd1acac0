package export

import (
	"encoding/json"
	"io"

	"github.com/custodia-labs/resumechat/internal/core/domain"
	"github.com/custodia-labs/resumechat/internal/core/ports/driven"
)

// Ensure JSONExporter implements the interface.
var _ driven.ResumeExporter = (*JSONExporter)(nil)

// JSONExporter writes the document in the same shape it is stored in.
type JSONExporter struct{}

// NewJSONExporter creates a JSON exporter.
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

// Format returns domain.FormatJSON.
func (e *JSONExporter) Format() domain.ExportFormat {
	return domain.FormatJSON
}

// Export writes doc as indented JSON.
func (e *JSONExporter) Export(w io.Writer, doc *domain.ResumeDocument) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
