// Package login provides the login form view for the TUI.
package login

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/resumechat/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/resumechat/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/resumechat/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/resumechat/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/resumechat/internal/core/domain"
	"github.com/custodia-labs/resumechat/internal/core/ports/driving"
)

// Delay is the pause between pressing enter and creating the session.
const Delay = 500 * time.Millisecond

const (
	fieldUser = iota
	fieldKey
	fieldCount
)

// loginReady fires once the delay has passed.
type loginReady struct {
	creds domain.Credentials
}

// View is the login form: a user ID and an API key.
type View struct {
	ctx     context.Context
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	session driving.SessionService

	fields [fieldCount]*input.Field
	focus  int
	busy   bool
	delay  time.Duration

	width  int
	height int
}

// NewView creates a login view.
func NewView(s *styles.Styles, session driving.SessionService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	v := &View{
		ctx:     context.Background(),
		styles:  s,
		keymap:  keymap.DefaultKeyMap(),
		session: session,
		delay:   Delay,
		width:   80,
		height:  24,
	}
	v.fields[fieldUser] = input.NewField(s, "Name", "how the service knows you")
	v.fields[fieldKey] = input.NewField(s, "API key", "x-api-key").Masked()
	return v
}

// SetContext sets the context used for the login call.
func (v *View) SetContext(ctx context.Context) {
	v.ctx = ctx
}

// Prefill fills the form, e.g. from environment defaults.
func (v *View) Prefill(creds domain.Credentials) {
	v.fields[fieldUser].SetValue(creds.UserID)
	v.fields[fieldKey].SetValue(creds.APIKey)
}

// Init focuses the first field.
func (v *View) Init() tea.Cmd {
	v.focus = fieldUser
	v.fields[fieldKey].Blur()
	return tea.Batch(v.fields[fieldUser].Focus(), v.fields[fieldUser].Init())
}

// Update handles messages for the login view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		if v.busy {
			return v, nil
		}
		switch {
		case msg.String() == "enter":
			return v, v.submit()
		case keymap.Matches(msg.String(), v.keymap.NextField):
			return v, v.moveFocus(1)
		case keymap.Matches(msg.String(), v.keymap.PrevField):
			return v, v.moveFocus(-1)
		}

	case loginReady:
		return v, v.login(msg.creds)

	case messages.LoginCompleted:
		v.busy = false
		if msg.Err == nil {
			v.fields[fieldKey].Reset()
		}
		return v, nil
	}

	var cmd tea.Cmd
	v.fields[v.focus], cmd = v.fields[v.focus].Update(msg)
	return v, cmd
}

// CanSubmit reports whether both fields are filled and no login is running.
func (v *View) CanSubmit() bool {
	return !v.busy &&
		strings.TrimSpace(v.fields[fieldUser].Value()) != "" &&
		strings.TrimSpace(v.fields[fieldKey].Value()) != ""
}

// Busy reports whether a login is in progress.
func (v *View) Busy() bool {
	return v.busy
}

// Focused returns the index of the focused field.
func (v *View) Focused() int {
	return v.focus
}

func (v *View) submit() tea.Cmd {
	if !v.CanSubmit() {
		return nil
	}
	v.busy = true
	creds := domain.Credentials{
		UserID: v.fields[fieldUser].Value(),
		APIKey: v.fields[fieldKey].Value(),
	}
	return tea.Tick(v.delay, func(time.Time) tea.Msg {
		return loginReady{creds: creds}
	})
}

func (v *View) login(creds domain.Credentials) tea.Cmd {
	ctx, session := v.ctx, v.session
	return func() tea.Msg {
		s, err := session.Login(ctx, creds)
		return messages.LoginCompleted{Session: s, Err: err}
	}
}

func (v *View) moveFocus(delta int) tea.Cmd {
	v.fields[v.focus].Blur()
	v.focus = (v.focus + delta + fieldCount) % fieldCount
	return v.fields[v.focus].Focus()
}

// View renders the form.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("resumechat"))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("Log in to build your resume by chatting"))
	b.WriteString("\n\n")

	for _, f := range v.fields {
		b.WriteString(f.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case v.busy:
		b.WriteString(v.styles.Warning.Render("Logging in..."))
	case v.CanSubmit():
		b.WriteString(v.styles.Selected.Render(" Log in "))
	default:
		b.WriteString(v.styles.Muted.Render(" Log in "))
		b.WriteString(v.styles.Help.Render("  fill in both fields"))
	}
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	fieldWidth := width - 4
	if fieldWidth > 72 {
		fieldWidth = 72
	}
	for _, f := range v.fields {
		f.SetWidth(fieldWidth)
	}
}
