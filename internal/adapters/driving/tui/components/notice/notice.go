// Package notice provides the blocking error dialog.
package notice

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/resumechat/internal/adapters/driving/tui/styles"
)

// Notice holds at most one error. While it is active the app routes every
// key press to Dismiss instead of the current view.
type Notice struct {
	styles *styles.Styles
	err    error
	width  int
	height int
}

// New creates an inactive notice.
func New(s *styles.Styles) *Notice {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Notice{styles: s, width: 80, height: 24}
}

// Show activates the notice. A nil error is ignored.
func (n *Notice) Show(err error) {
	if err != nil {
		n.err = err
	}
}

// Dismiss clears the notice.
func (n *Notice) Dismiss() {
	n.err = nil
}

// Active reports whether an error is being shown.
func (n *Notice) Active() bool {
	return n.err != nil
}

// Err returns the error being shown.
func (n *Notice) Err() error {
	return n.err
}

// SetDimensions sets the area the dialog is centred in.
func (n *Notice) SetDimensions(width, height int) {
	n.width = width
	n.height = height
}

// View renders the dialog centred in the window, or "" when inactive.
func (n *Notice) View() string {
	if n.err == nil {
		return ""
	}

	maxWidth := n.width - 10
	if maxWidth < 20 {
		maxWidth = 20
	}

	var b strings.Builder
	b.WriteString(n.styles.Error.Bold(true).Render("Something went wrong"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Width(maxWidth - 8).Render(n.err.Error()))
	b.WriteString("\n\n")
	b.WriteString(n.styles.Help.Render("Press any key to continue"))

	box := n.styles.Notice.Render(b.String())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.Place(n.width, n.height, lipgloss.Center, lipgloss.Center, box)
}
