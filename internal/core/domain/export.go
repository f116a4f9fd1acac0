package domain

import (
	"fmt"
	"strings"
)

// ExportFormat is an output format for the resume document.
type ExportFormat string

// Available export formats.
const (
	FormatMarkdown ExportFormat = "markdown"
	FormatJSON     ExportFormat = "json"
	FormatYAML     ExportFormat = "yaml"
)

// ParseExportFormat converts user input to an ExportFormat.
// "md" and "yml" are accepted as aliases.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// Extension returns the file extension including the dot.
func (f ExportFormat) Extension() string {
	switch f {
	case FormatMarkdown:
		return ".md"
	case FormatJSON:
		return ".json"
	case FormatYAML:
		return ".yaml"
	default:
		return ".txt"
	}
}

// String returns the string representation.
func (f ExportFormat) String() string {
	return string(f)
}

// AllExportFormats returns every supported format.
func AllExportFormats() []ExportFormat {
	return []ExportFormat{FormatMarkdown, FormatJSON, FormatYAML}
}
