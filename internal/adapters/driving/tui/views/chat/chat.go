// Package chat provides the section chat view for the TUI.
package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/resumechat/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/resumechat/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/resumechat/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/resumechat/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/resumechat/internal/core/domain"
	"github.com/custodia-labs/resumechat/internal/core/ports/driving"
)

const (
	// chrome is the number of rows used by everything except the transcript.
	chrome        = 13
	minTranscript = 3
	maxBarWidth   = 60
)

// View runs one section chat: a progress panel, the transcript and an input.
type View struct {
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap
	chat   driving.ChatService

	section  domain.SectionKind
	workflow driving.ChatWorkflow
	state    domain.ChatState
	// pending is a message handed to Send that the snapshot may not show yet.
	pending string
	// sentAt is the transcript length when pending was sent.
	sentAt int

	input      *input.Field
	transcript viewport.Model
	bar        progress.Model
	spinner    spinner.Model

	width  int
	height int
}

// NewView creates a chat view.
func NewView(s *styles.Styles, chat driving.ChatService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = s.Warning

	v := &View{
		ctx:        context.Background(),
		styles:     s,
		keymap:     keymap.DefaultKeyMap(),
		chat:       chat,
		input:      input.NewField(s, "", "Type your answer and press enter"),
		transcript: viewport.New(76, minTranscript),
		bar:        progress.New(progress.WithDefaultGradient()),
		spinner:    sp,
		width:      80,
		height:     24,
	}
	v.SetDimensions(v.width, v.height)
	return v
}

// SetContext sets the context used for service calls.
func (v *View) SetContext(ctx context.Context) {
	v.ctx = ctx
}

// Init implements the view contract; chats are started with Open.
func (v *View) Init() tea.Cmd {
	return nil
}

// Open resets the view for section and begins a new workflow.
func (v *View) Open(section domain.SectionKind) tea.Cmd {
	v.section = section
	v.workflow = nil
	v.state = domain.NewChatState(section)
	v.pending = ""
	v.input.Reset()
	v.input.Blur()
	v.refreshTranscript()

	begin := func() tea.Msg { return v.begin(section) }
	return tea.Batch(begin, v.spinner.Tick)
}

func (v *View) begin(section domain.SectionKind) messages.ChatOpened {
	wf, err := v.chat.Begin(v.ctx, section)
	if err != nil {
		return messages.ChatOpened{Err: fmt.Errorf("opening %s chat: %w", section, err)}
	}
	return messages.ChatOpened{Workflow: wf}
}

// Owns reports whether wf is the workflow currently shown. Results of
// abandoned workflows are ignored.
func (v *View) Owns(wf driving.ChatWorkflow) bool {
	return wf != nil && wf == v.workflow
}

// Update handles messages for the chat view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.ChatOpened:
		if msg.Err != nil || msg.Workflow == nil {
			return v, nil
		}
		v.workflow = msg.Workflow
		v.refresh()
		return v, v.start()

	case messages.ChatUpdated:
		if !v.Owns(msg.Workflow) {
			return v, nil
		}
		v.pending = ""
		return v, v.refresh()

	case messages.ChatSubmitted:
		if !v.Owns(msg.Workflow) {
			return v, nil
		}
		return v, v.refresh()

	case spinner.TickMsg:
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		if v.workflow != nil {
			v.refresh()
		}
		return v, cmd

	case tea.KeyMsg:
		return v, v.handleKey(msg)
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch k := msg.String(); {
	case keymap.Matches(k, v.keymap.Back):
		return func() tea.Msg { return messages.ViewChanged{View: messages.ViewResume} }

	case keymap.Matches(k, v.keymap.Submit):
		return v.submit()

	case keymap.Matches(k, v.keymap.Send):
		return v.send()

	case k == "pgup" || k == "pgdown":
		var cmd tea.Cmd
		v.transcript, cmd = v.transcript.Update(msg)
		return cmd
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return cmd
}

func (v *View) start() tea.Cmd {
	ctx, wf := v.ctx, v.workflow
	return func() tea.Msg {
		return messages.ChatUpdated{Workflow: wf, Err: wf.Start(ctx)}
	}
}

// send posts the typed message. Nothing happens while a request is in
// flight, the section is complete, or the input is blank.
func (v *View) send() tea.Cmd {
	if v.workflow == nil || !v.state.CanSend() || v.pending != "" {
		return nil
	}
	text := strings.TrimSpace(v.input.Value())
	if text == "" {
		return nil
	}
	v.input.Reset()
	v.input.Blur()
	v.pending = text
	v.sentAt = len(v.state.Transcript)
	v.refreshTranscript()

	ctx, wf := v.ctx, v.workflow
	return func() tea.Msg {
		return messages.ChatUpdated{Workflow: wf, Err: wf.Send(ctx, text)}
	}
}

func (v *View) submit() tea.Cmd {
	if v.workflow == nil || !v.state.CanSubmit() || v.pending != "" {
		return nil
	}
	v.input.Blur()
	ctx, wf := v.ctx, v.workflow
	return func() tea.Msg {
		entry, err := wf.Submit(ctx)
		return messages.ChatSubmitted{Workflow: wf, Entry: entry, Err: err}
	}
}

// refresh reads the workflow state and focuses the input when it accepts text.
func (v *View) refresh() tea.Cmd {
	v.state = v.workflow.Snapshot()
	if v.pending != "" && len(v.state.Transcript) > v.sentAt {
		// The snapshot already carries the optimistic message.
		v.pending = ""
	}
	v.refreshTranscript()

	if v.state.CanSend() && v.pending == "" {
		if !v.input.Focused() {
			return v.input.Focus()
		}
		return nil
	}
	v.input.Blur()
	return nil
}

func (v *View) refreshTranscript() {
	atBottom := v.transcript.AtBottom()
	v.transcript.SetContent(v.renderTranscript())
	if atBottom || v.pending != "" {
		v.transcript.GotoBottom()
	}
}

func (v *View) renderTranscript() string {
	width := v.transcript.Width
	if width < 10 {
		width = 10
	}
	wrap := lipgloss.NewStyle().Width(width)

	var b strings.Builder
	for _, m := range v.state.Transcript {
		b.WriteString(wrap.Render(v.speaker(m.Role) + m.Content))
		b.WriteString("\n\n")
	}
	if v.pending != "" {
		b.WriteString(wrap.Render(v.speaker(domain.RoleUser) + v.pending))
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (v *View) speaker(role domain.Role) string {
	if role == domain.RoleUser {
		return v.styles.UserMessage.Render("You: ")
	}
	return v.styles.AIMessage.Render("AI: ")
}

// View renders the chat.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render(v.section.Title()))
	b.WriteString("  ")
	b.WriteString(v.renderPhase())
	b.WriteString("\n\n")
	b.WriteString(v.renderProgress())
	b.WriteString("\n")
	b.WriteString(v.styles.Panel.Render(v.transcript.View()))
	b.WriteString("\n")
	b.WriteString(v.input.View())
	return b.String()
}

func (v *View) renderPhase() string {
	s := v.state
	switch {
	case s.Phase == domain.PhaseInitializing:
		return v.spinner.View() + v.styles.Muted.Render(" Starting chat...")
	case s.Phase == domain.PhaseSending || v.pending != "":
		return v.spinner.View() + v.styles.Muted.Render(" Waiting for reply...")
	case s.Phase == domain.PhaseSubmitting:
		return v.spinner.View() + v.styles.Muted.Render(" Saving section...")
	case s.Phase == domain.PhaseFailed:
		return v.styles.Error.Render("Chat could not start. Press esc to go back.")
	case s.Phase == domain.PhaseCompleted:
		return v.styles.Success.Render("Section added.")
	case s.Progress.IsComplete:
		return v.styles.Success.Render("Section complete. Press ctrl+s to add it.")
	}
	return v.styles.Muted.Render("ctrl+s adds what you have so far")
}

func (v *View) renderProgress() string {
	p := v.state.Progress

	var fields []string
	for _, f := range p.Status {
		if f.Done {
			fields = append(fields, v.styles.Success.Render("✓ "+f.Label()))
		} else {
			fields = append(fields, v.styles.Muted.Render("○ "+f.Label()))
		}
	}
	status := v.styles.Muted.Render("No fields reported yet")
	if len(fields) > 0 {
		status = strings.Join(fields, "  ")
	}

	inner := v.width - 4
	if inner < 10 {
		inner = 10
	}
	body := v.bar.ViewAs(p.ClampedPercentage()/100) + "\n" +
		lipgloss.NewStyle().Width(inner).Render(status)
	return v.styles.Panel.Render(body)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height

	v.bar.Width = width - 8
	if v.bar.Width > maxBarWidth {
		v.bar.Width = maxBarWidth
	}
	if v.bar.Width < 10 {
		v.bar.Width = 10
	}

	v.transcript.Width = width - 4
	v.transcript.Height = height - chrome
	if v.transcript.Height < minTranscript {
		v.transcript.Height = minTranscript
	}
	v.input.SetWidth(width)
	v.refreshTranscript()
}

// State returns the last snapshot of the workflow.
func (v *View) State() domain.ChatState {
	return v.state
}

// Section returns the section being collected.
func (v *View) Section() domain.SectionKind {
	return v.section
}
