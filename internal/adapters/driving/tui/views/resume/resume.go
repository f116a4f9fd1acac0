// Package resume provides the resume view: the assembled document with an
// add action per section and a Markdown export.
package resume

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/resumechat/internal/adapters/driven/export"
	"github.com/custodia-labs/resumechat/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/resumechat/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/resumechat/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/resumechat/internal/core/domain"
	"github.com/custodia-labs/resumechat/internal/core/ports/driving"
)

// ExportFile is the name of the Markdown file written by the export action.
const ExportFile = "resume.md"

// View shows the resume and lets the user pick a section to add.
type View struct {
	ctx       context.Context
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	resume    driving.ResumeService
	exportDir string

	sections []domain.SectionKind
	selected int
	doc      *domain.ResumeDocument
	name     string
	loading  bool

	width  int
	height int
}

// NewView creates a resume view. Exports are written to exportDir.
func NewView(s *styles.Styles, resume driving.ResumeService, exportDir string) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		ctx:       context.Background(),
		styles:    s,
		keymap:    keymap.DefaultKeyMap(),
		resume:    resume,
		exportDir: exportDir,
		sections:  domain.AllSections(),
		doc:       domain.NewResumeDocument(),
		width:     80,
		height:    24,
	}
}

// SetContext sets the context used for service calls.
func (v *View) SetContext(ctx context.Context) {
	v.ctx = ctx
}

// SetExportDir sets where the export action writes.
func (v *View) SetExportDir(dir string) {
	v.exportDir = dir
}

// ExportPath returns the file the export action writes.
func (v *View) ExportPath() string {
	return filepath.Join(v.exportDir, ExportFile)
}

// Init loads the resume.
func (v *View) Init() tea.Cmd {
	return v.Load()
}

// Load returns a command that reads the resume and its display name.
func (v *View) Load() tea.Cmd {
	v.loading = true
	ctx, resume := v.ctx, v.resume
	return func() tea.Msg {
		doc, err := resume.Get(ctx)
		if err != nil {
			return messages.ResumeLoaded{Err: fmt.Errorf("loading resume: %w", err)}
		}
		return messages.ResumeLoaded{Document: doc, Name: resume.DisplayName(ctx)}
	}
}

// Update handles messages for the resume view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.ResumeLoaded:
		v.loading = false
		if msg.Err == nil && msg.Document != nil {
			v.doc = msg.Document
			v.name = msg.Name
		}
		return v, nil

	case tea.KeyMsg:
		key := msg.String()
		switch {
		case keymap.Matches(key, v.keymap.Up):
			if v.selected > 0 {
				v.selected--
			}
		case keymap.Matches(key, v.keymap.Down):
			if v.selected < len(v.sections)-1 {
				v.selected++
			}
		case keymap.Matches(key, v.keymap.Add):
			section := v.sections[v.selected]
			return v, func() tea.Msg {
				return messages.ChatRequested{Section: section}
			}
		case keymap.Matches(key, v.keymap.Export):
			return v, v.export()
		case keymap.Matches(key, v.keymap.Reload):
			return v, v.Load()
		case keymap.Matches(key, v.keymap.Logout):
			return v, func() tea.Msg { return messages.LogoutRequested{} }
		case keymap.Matches(key, v.keymap.Quit):
			return v, tea.Quit
		}
	}

	return v, nil
}

// export writes the resume as Markdown to exportDir/resume.md.
func (v *View) export() tea.Cmd {
	ctx, resume := v.ctx, v.resume
	path := v.ExportPath()
	return func() tea.Msg {
		if err := writeExport(ctx, resume, path); err != nil {
			return messages.ResumeExported{Err: err}
		}
		return messages.ResumeExported{Path: path}
	}
}

func writeExport(ctx context.Context, resume driving.ResumeService, path string) (err error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating export directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing export file: %w", cerr)
		}
	}()

	if err := resume.Export(ctx, f, domain.FormatMarkdown); err != nil {
		return fmt.Errorf("exporting resume: %w", err)
	}
	return nil
}

// View renders the resume.
func (v *View) View() string {
	lines, selectedLine := v.render()

	avail := v.height - 1
	if avail > 0 && len(lines) > avail {
		offset := selectedLine - 2
		if offset > len(lines)-avail {
			offset = len(lines) - avail
		}
		if offset < 0 {
			offset = 0
		}
		lines = lines[offset : offset+avail]
	}
	return strings.Join(lines, "\n")
}

// render lays the resume out as lines and reports where the selected
// section heading is.
func (v *View) render() ([]string, int) {
	outline := export.BuildOutline(v.doc)
	name := outline.Name
	if name == "" {
		name = v.name
	}

	lines := []string{v.styles.Title.Render(name)}
	if contact := export.JoinNonEmpty(" | ", outline.Contact...); contact != "" {
		lines = append(lines, v.styles.Normal.Render(contact))
	}
	if links := export.JoinNonEmpty(" | ", outline.Links...); links != "" {
		lines = append(lines, v.styles.Muted.Render(links))
	}
	if v.loading {
		lines = append(lines, v.styles.Muted.Render("Loading..."))
	}

	selectedLine := 0
	for i, section := range outline.Sections {
		lines = append(lines, "")
		cursor := "  "
		heading := v.styles.Heading.Render(fmt.Sprintf("%s (%d)", section.Heading, len(section.Items)))
		if i == v.selected {
			selectedLine = len(lines)
			cursor = "> "
			heading += "  " + v.styles.Selected.Render(" + add ")
		}
		lines = append(lines, cursor+heading)

		if len(section.Items) == 0 {
			lines = append(lines, "    "+v.styles.Muted.Render(section.EmptyText))
			continue
		}
		for _, item := range section.Items {
			lines = append(lines, v.renderItem(section, item)...)
		}
	}
	return lines, selectedLine
}

func (v *View) renderItem(section export.SectionOutline, item export.Item) []string {
	if section.Compact {
		line := "    • " + v.styles.Normal.Bold(true).Render(item.Title)
		if meta := item.MetaLine(); meta != "" {
			line += v.styles.Muted.Render(" (" + meta + ")")
		}
		if item.Summary != "" {
			line += ": " + item.Summary
		}
		return []string{line}
	}

	out := []string{"    " + v.styles.Normal.Bold(true).Render(item.Title)}
	if meta := item.MetaLine(); meta != "" {
		out = append(out, "    "+v.styles.Muted.Render(meta))
	}
	if !item.Description.IsZero() {
		if item.Description.IsList {
			for _, l := range item.Description.Lines {
				out = append(out, "      - "+l)
			}
		} else {
			out = append(out, "      "+item.Description.Text())
		}
	}
	for _, extra := range item.Extra {
		out = append(out, "      "+v.styles.Muted.Render(extra))
	}
	return out
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// Selected returns the section under the cursor.
func (v *View) Selected() domain.SectionKind {
	return v.sections[v.selected]
}

// Document returns the resume being shown.
func (v *View) Document() *domain.ResumeDocument {
	return v.doc
}
