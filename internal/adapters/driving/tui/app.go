package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/resumechat/internal/adapters/driving/tui/components/notice"
	"github.com/custodia-labs/resumechat/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/resumechat/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/resumechat/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/resumechat/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/resumechat/internal/adapters/driving/tui/views/chat"
	"github.com/custodia-labs/resumechat/internal/adapters/driving/tui/views/login"
	"github.com/custodia-labs/resumechat/internal/adapters/driving/tui/views/resume"
	"github.com/custodia-labs/resumechat/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	loginView  *login.View
	resumeView *resume.View
	chatView   *chat.View

	statusBar *status.Bar

	// notice blocks all views until the user presses a key.
	notice *notice.Notice

	// currentView tracks which view is active.
	currentView messages.ViewType

	// session is the logged-in session, nil on the login view.
	session *domain.Session

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has received its first window size.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	a := &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		loginView:   login.NewView(s, ports.Session),
		resumeView:  resume.NewView(s, ports.Resume, "."),
		chatView:    chat.NewView(s, ports.Chat),
		statusBar:   status.NewBar(s, km),
		notice:      notice.New(s),
		currentView: messages.ViewLogin,
	}
	return a, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.loginView.SetContext(ctx)
	a.resumeView.SetContext(ctx)
	a.chatView.SetContext(ctx)
	return a
}

// WithExportDir sets where the resume view writes its Markdown export.
func (a *App) WithExportDir(dir string) *App {
	a.resumeView.SetExportDir(dir)
	return a
}

// WithLoginDefaults prefills the login form.
func (a *App) WithLoginDefaults(creds domain.Credentials) *App {
	a.loginView.Prefill(creds)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("resumechat"),
		a.checkSession(),
	)
}

// checkSession skips the login form when a session already exists.
func (a *App) checkSession() tea.Cmd {
	ctx, sessions := a.ctx, a.ports.Session
	return func() tea.Msg {
		s, err := sessions.Current(ctx)
		if err != nil {
			if errors.Is(err, domain.ErrNotLoggedIn) {
				return messages.SessionChecked{}
			}
			return messages.ErrorOccurred{Err: fmt.Errorf("reading session: %w", err)}
		}
		return messages.SessionChecked{Session: s}
	}
}

// Update implements tea.Model.
//
//nolint:gocognit,gocyclo,funlen // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if keymap.Matches(msg.String(), a.keymap.ForceQuit) {
			return a, tea.Quit
		}
		if a.notice.Active() {
			a.notice.Dismiss()
			a.refreshHints()
			return a, nil
		}
		return a, a.forward(msg)

	case messages.SessionChecked:
		if msg.Session == nil {
			a.setView(messages.ViewLogin)
			return a, a.loginView.Init()
		}
		a.setSession(msg.Session)
		a.setView(messages.ViewResume)
		return a, a.resumeView.Init()

	case messages.LoginCompleted:
		a.loginView, cmd = a.loginView.Update(msg)
		if msg.Err != nil {
			a.showError(fmt.Errorf("login failed: %w", msg.Err))
			return a, cmd
		}
		a.setSession(msg.Session)
		a.setView(messages.ViewResume)
		return a, tea.Batch(cmd, a.resumeView.Init())

	case messages.LogoutRequested:
		return a, a.logout()

	case messages.LoggedOut:
		if msg.Err != nil {
			a.showError(fmt.Errorf("logout failed: %w", msg.Err))
			return a, nil
		}
		a.setSession(nil)
		a.statusBar.Clear()
		a.setView(messages.ViewLogin)
		return a, a.loginView.Init()

	case messages.ResumeLoaded:
		a.resumeView, cmd = a.resumeView.Update(msg)
		a.showError(msg.Err)
		return a, cmd

	case messages.ResumeExported:
		if msg.Err != nil {
			a.showError(msg.Err)
			return a, nil
		}
		a.statusBar.SetState(status.StateDone)
		a.statusBar.SetMessage("Exported to " + msg.Path)
		return a, nil

	case messages.ChatRequested:
		a.statusBar.Clear()
		a.setView(messages.ViewChat)
		return a, a.chatView.Open(msg.Section)

	case messages.ChatOpened:
		if a.currentView != messages.ViewChat {
			return a, nil
		}
		if msg.Err != nil {
			a.showError(msg.Err)
			a.setView(messages.ViewResume)
			return a, nil
		}
		a.chatView, cmd = a.chatView.Update(msg)
		return a, cmd

	case messages.ChatUpdated:
		if !a.chatView.Owns(msg.Workflow) {
			return a, nil
		}
		a.chatView, cmd = a.chatView.Update(msg)
		a.showError(msg.Err)
		return a, cmd

	case messages.ChatSubmitted:
		if !a.chatView.Owns(msg.Workflow) {
			// The chat was left while submitting; its result is still saved.
			if msg.Err != nil || msg.Entry == nil {
				return a, nil
			}
			return a, a.applyEntry(msg.Entry)
		}
		a.chatView, cmd = a.chatView.Update(msg)
		if msg.Err != nil {
			a.showError(msg.Err)
			return a, cmd
		}
		a.statusBar.SetState(status.StateDone)
		a.statusBar.SetMessage("Added " + msg.Workflow.Section().Title())
		a.setView(messages.ViewResume)
		return a, tea.Batch(cmd, a.applyEntry(msg.Entry))

	case messages.ViewChanged:
		a.setView(msg.View)
		switch msg.View {
		case messages.ViewResume:
			return a, a.resumeView.Load()
		case messages.ViewLogin:
			return a, a.loginView.Init()
		case messages.ViewChat:
		}
		return a, nil

	case messages.ErrorOccurred:
		a.showError(msg.Err)
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	return a, a.forward(msg)
}

// forward passes msg to the active view.
func (a *App) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewLogin:
		a.loginView, cmd = a.loginView.Update(msg)
	case messages.ViewResume:
		a.resumeView, cmd = a.resumeView.Update(msg)
	case messages.ViewChat:
		a.chatView, cmd = a.chatView.Update(msg)
	}
	return cmd
}

// applyEntry adds a submitted section to the resume and reloads it.
func (a *App) applyEntry(entry domain.SectionEntry) tea.Cmd {
	ctx, svc := a.ctx, a.ports.Resume
	return func() tea.Msg {
		doc, err := svc.Apply(ctx, entry)
		if err != nil {
			return messages.ResumeLoaded{Err: fmt.Errorf("adding %s to resume: %w", entry.Section(), err)}
		}
		return messages.ResumeLoaded{Document: doc, Name: svc.DisplayName(ctx)}
	}
}

func (a *App) logout() tea.Cmd {
	ctx, sessions := a.ctx, a.ports.Session
	return func() tea.Msg {
		return messages.LoggedOut{Err: sessions.Logout(ctx)}
	}
}

func (a *App) setSession(s *domain.Session) {
	a.session = s
	if s == nil {
		a.statusBar.SetUser("")
		return
	}
	a.statusBar.SetUser(s.Credentials.UserID)
}

func (a *App) setView(v messages.ViewType) {
	a.currentView = v
	a.refreshHints()
}

func (a *App) refreshHints() {
	if a.notice.Active() {
		a.statusBar.SetHints(a.keymap.NoticeHelp())
		return
	}
	switch a.currentView {
	case messages.ViewLogin:
		a.statusBar.SetHints(a.keymap.LoginHelp())
	case messages.ViewResume:
		a.statusBar.SetHints(a.keymap.ResumeHelp())
	case messages.ViewChat:
		a.statusBar.SetHints(a.keymap.ChatHelp())
	}
}

// showError opens the blocking notice. A nil error is ignored.
func (a *App) showError(err error) {
	if err == nil {
		return
	}
	a.notice.Show(err)
	a.statusBar.SetState(status.StateError)
	a.statusBar.SetMessage(err.Error())
	a.refreshHints()
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch {
	case a.notice.Active():
		body = a.notice.View()
	case a.currentView == messages.ViewResume:
		body = a.resumeView.View()
	case a.currentView == messages.ViewChat:
		body = a.chatView.View()
	default:
		body = a.loginView.View()
	}

	h := a.height - 1
	if h < 1 {
		h = 1
	}
	body = lipgloss.NewStyle().Height(h).MaxHeight(h).Render(body)
	return lipgloss.JoinVertical(lipgloss.Left, body, a.statusBar.View())
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Session returns the logged-in session, or nil.
func (a *App) Session() *domain.Session {
	return a.session
}

// Notice returns the error being shown, or nil.
func (a *App) Notice() error {
	return a.notice.Err()
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	viewHeight := height - 1
	a.loginView.SetDimensions(width, viewHeight)
	a.resumeView.SetDimensions(width, viewHeight)
	a.chatView.SetDimensions(width, viewHeight)
	a.statusBar.SetWidth(width)
	a.notice.SetDimensions(width, viewHeight)
}
