package export

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/resumechat/internal/core/domain"
	"github.com/custodia-labs/resumechat/internal/core/ports/driven"
)

// Ensure YAMLExporter implements the interface.
var _ driven.ResumeExporter = (*YAMLExporter)(nil)

// YAMLExporter writes the document as YAML.
type YAMLExporter struct{}

// NewYAMLExporter creates a YAML exporter.
func NewYAMLExporter() *YAMLExporter {
	return &YAMLExporter{}
}

// Format returns domain.FormatYAML.
func (e *YAMLExporter) Format() domain.ExportFormat {
	return domain.FormatYAML
}

// Export writes doc as YAML with two-space indentation.
func (e *YAMLExporter) Export(w io.Writer, doc *domain.ResumeDocument) error {
	out := *doc
	out.Projects = make([]domain.Project, len(doc.Projects))
	for i, p := range doc.Projects {
		out.Projects[i] = plainValue(map[string]any(p)).(map[string]any)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&out); err != nil {
		return err
	}
	return enc.Close()
}

// plainValue replaces json.Number, which YAML would quote as a string,
// with int64 or float64.
func plainValue(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[k] = plainValue(val)
		}
		return m
	case domain.Project:
		return plainValue(map[string]any(t))
	case []any:
		s := make([]any, len(t))
		for i, val := range t {
			s[i] = plainValue(val)
		}
		return s
	default:
		return v
	}
}
