// Package export provides driven.ResumeExporter implementations that render
// a resume document as Markdown, JSON, or YAML.
package export
