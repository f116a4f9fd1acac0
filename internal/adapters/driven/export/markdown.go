package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/resumechat/internal/core/domain"
	"github.com/custodia-labs/resumechat/internal/core/ports/driven"
)

// Ensure MarkdownExporter implements the interface.
var _ driven.ResumeExporter = (*MarkdownExporter)(nil)

// MarkdownExporter renders the resume as a printable Markdown document.
// Sections appear in display order and empty ones show a placeholder.
type MarkdownExporter struct{}

// NewMarkdownExporter creates a Markdown exporter.
func NewMarkdownExporter() *MarkdownExporter {
	return &MarkdownExporter{}
}

// Format returns domain.FormatMarkdown.
func (e *MarkdownExporter) Format() domain.ExportFormat {
	return domain.FormatMarkdown
}

// Export writes doc as Markdown.
func (e *MarkdownExporter) Export(w io.Writer, doc *domain.ResumeDocument) error {
	bw := bufio.NewWriter(w)
	m := &mdWriter{w: bw}
	outline := BuildOutline(doc)

	m.printf("# %s\n", outline.Name)
	if len(outline.Contact) > 0 {
		m.printf("\n%s\n", strings.Join(outline.Contact, " · "))
	}
	if len(outline.Links) > 0 {
		m.printf("\n%s\n", strings.Join(outline.Links, " · "))
	}

	for _, s := range outline.Sections {
		m.printf("\n## %s\n\n", s.Heading)
		if len(s.Items) == 0 {
			m.printf("_%s_\n", s.EmptyText)
			continue
		}
		for _, item := range s.Items {
			if s.Compact {
				m.compact(item)
			} else {
				m.block(item)
			}
		}
	}

	if m.err != nil {
		return m.err
	}
	return bw.Flush()
}

// mdWriter remembers the first write error so rendering code stays linear.
type mdWriter struct {
	w   io.Writer
	err error
}

func (m *mdWriter) printf(format string, args ...any) {
	if m.err != nil {
		return
	}
	_, m.err = fmt.Fprintf(m.w, format, args...)
}

// compact writes "- **Title** (meta): summary".
func (m *mdWriter) compact(item Item) {
	m.printf("- **%s**", item.Title)
	if meta := item.MetaLine(); meta != "" {
		m.printf(" (%s)", meta)
	}
	if item.Summary != "" {
		m.printf(": %s", item.Summary)
	}
	m.printf("\n")
}

func (m *mdWriter) block(item Item) {
	m.printf("### %s\n", item.Title)
	if meta := item.MetaLine(); meta != "" {
		m.printf("_%s_\n", meta)
	}

	if d := item.Description; !d.IsZero() {
		m.printf("\n")
		if d.IsList {
			for _, line := range d.Lines {
				if line != "" {
					m.printf("- %s\n", line)
				}
			}
		} else {
			m.printf("%s\n", d.Text())
		}
	}

	for _, extra := range item.Extra {
		m.printf("- %s\n", extra)
	}
	m.printf("\n")
}

// All returns one exporter per supported format.
func All() []driven.ResumeExporter {
	return []driven.ResumeExporter{
		NewMarkdownExporter(),
		NewJSONExporter(),
		NewYAMLExporter(),
	}
}
