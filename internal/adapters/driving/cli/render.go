package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/resumechat/internal/adapters/driven/export"
	"github.com/custodia-labs/resumechat/internal/core/domain"
)

// renderText writes a plain-text view of the resume for the terminal.
func renderText(w io.Writer, doc *domain.ResumeDocument, name string) {
	outline := export.BuildOutline(doc)
	if outline.Name == "" {
		outline.Name = name
	}

	fmt.Fprintln(w, outline.Name)
	fmt.Fprintln(w, strings.Repeat("=", len([]rune(outline.Name))))
	if len(outline.Contact) > 0 {
		fmt.Fprintln(w, strings.Join(outline.Contact, " | "))
	}
	if len(outline.Links) > 0 {
		fmt.Fprintln(w, strings.Join(outline.Links, " | "))
	}

	for _, s := range outline.Sections {
		fmt.Fprintf(w, "\n%s\n%s\n", strings.ToUpper(s.Heading), strings.Repeat("-", len(s.Heading)))
		if len(s.Items) == 0 {
			fmt.Fprintf(w, "  %s\n", s.EmptyText)
			continue
		}
		for _, item := range s.Items {
			renderItem(w, item, s.Compact)
		}
	}
}

func renderItem(w io.Writer, item export.Item, compact bool) {
	if compact {
		line := "  * " + item.Title
		if meta := item.MetaLine(); meta != "" {
			line += " (" + meta + ")"
		}
		if item.Summary != "" {
			line += ": " + item.Summary
		}
		fmt.Fprintln(w, line)
		return
	}

	fmt.Fprintf(w, "  %s\n", item.Title)
	if meta := item.MetaLine(); meta != "" {
		fmt.Fprintf(w, "  %s\n", meta)
	}
	if d := item.Description; !d.IsZero() {
		if d.IsList {
			for _, line := range d.Lines {
				if line != "" {
					fmt.Fprintf(w, "    - %s\n", line)
				}
			}
		} else {
			fmt.Fprintf(w, "    %s\n", d.Text())
		}
	}
	for _, extra := range item.Extra {
		fmt.Fprintf(w, "    %s\n", extra)
	}
	fmt.Fprintln(w)
}
