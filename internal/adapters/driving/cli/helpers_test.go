package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/resumechat/internal/core/domain"
	"github.com/custodia-labs/resumechat/internal/core/ports/driving"
)

// fakeSession implements driving.SessionService.
type fakeSession struct {
	session   *domain.Session
	loginErr  error
	logoutErr error
	results   map[domain.SectionKind]*domain.SectionResult

	loggedIn  *domain.Credentials
	loggedOut bool
}

func (f *fakeSession) Login(_ context.Context, creds domain.Credentials) (*domain.Session, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	f.loggedIn = &creds
	f.session = &domain.Session{ID: "sess-1", Credentials: creds}
	return f.session, nil
}

func (f *fakeSession) Logout(context.Context) error {
	if f.logoutErr != nil {
		return f.logoutErr
	}
	f.loggedOut = true
	f.session = nil
	return nil
}

func (f *fakeSession) Current(context.Context) (*domain.Session, error) {
	if f.session == nil {
		return nil, domain.ErrNotLoggedIn
	}
	return f.session, nil
}

func (f *fakeSession) LastResult(_ context.Context, section domain.SectionKind) (*domain.SectionResult, error) {
	if r, ok := f.results[section]; ok {
		return r, nil
	}
	return nil, domain.ErrNotFound
}

// fakeResume implements driving.ResumeService on an in-memory document.
type fakeResume struct {
	mu        sync.Mutex
	doc       *domain.ResumeDocument
	exportErr error
}

func newFakeResume() *fakeResume {
	return &fakeResume{doc: domain.NewResumeDocument()}
}

func (f *fakeResume) Get(context.Context) (*domain.ResumeDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.doc, nil
}

func (f *fakeResume) Apply(_ context.Context, entry domain.SectionEntry) (*domain.ResumeDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.doc.Append(entry); err != nil {
		return nil, err
	}
	return f.doc, nil
}

func (f *fakeResume) SetPersonalInfo(_ context.Context, info domain.PersonalInfo) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.doc.PersonalInfo = info
	return nil
}

func (f *fakeResume) Export(_ context.Context, w io.Writer, format domain.ExportFormat) error {
	if f.exportErr != nil {
		return f.exportErr
	}
	_, err := io.WriteString(w, "resume as "+string(format)+"\n")
	return err
}

func (f *fakeResume) DisplayName(context.Context) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.doc.PersonalInfo.Name != "" {
		return f.doc.PersonalInfo.Name
	}
	return "ada"
}

// fakeChat hands out one scripted workflow.
type fakeChat struct {
	wf       *fakeWorkflow
	beginErr error
	begun    []domain.SectionKind
}

func (f *fakeChat) Begin(_ context.Context, section domain.SectionKind) (driving.ChatWorkflow, error) {
	f.begun = append(f.begun, section)
	if f.beginErr != nil {
		return nil, f.beginErr
	}
	if f.wf == nil {
		f.wf = &fakeWorkflow{}
	}
	f.wf.state = domain.NewChatState(section)
	return f.wf, nil
}

// fakeWorkflow replies with the next scripted AI message on every Send.
type fakeWorkflow struct {
	state     domain.ChatState
	replies   []string
	progress  domain.Progress
	entry     domain.SectionEntry
	startErr  error
	sendErr   error
	submitErr error

	sent      []string
	submitted int
}

func (w *fakeWorkflow) Section() domain.SectionKind { return w.state.Section }

func (w *fakeWorkflow) Start(context.Context) error {
	if w.startErr != nil {
		return w.startErr
	}
	w.state.Phase = domain.PhaseAwaitingInput
	w.state.ChatID = "chat-1"
	w.reply("Tell me about it.")
	return nil
}

func (w *fakeWorkflow) Send(_ context.Context, text string) error {
	if w.sendErr != nil {
		return w.sendErr
	}
	w.sent = append(w.sent, text)
	w.state.Transcript = append(w.state.Transcript, domain.ChatMessage{Role: domain.RoleUser, Content: text})
	next := "ok"
	if len(w.replies) > 0 {
		next, w.replies = w.replies[0], w.replies[1:]
	}
	w.reply(next)
	w.state.Progress = w.progress
	return nil
}

func (w *fakeWorkflow) Submit(context.Context) (domain.SectionEntry, error) {
	w.submitted++
	if w.submitErr != nil {
		err := w.submitErr
		w.submitErr = nil
		return nil, err
	}
	w.state.Phase = domain.PhaseCompleted
	return w.entry, nil
}

func (w *fakeWorkflow) Snapshot() domain.ChatState { return w.state }

func (w *fakeWorkflow) reply(text string) {
	w.state.Transcript = append(w.state.Transcript, domain.ChatMessage{Role: domain.RoleAI, Content: text})
}

// fakeSettings implements driving.SettingsService.
type fakeSettings struct {
	settings domain.AppSettings
	setErr   error
	set      map[string]string
}

func newFakeSettings() *fakeSettings {
	return &fakeSettings{settings: domain.DefaultAppSettings(), set: map[string]string{}}
}

func (f *fakeSettings) Get() (*domain.AppSettings, error) {
	s := f.settings
	return &s, nil
}

func (f *fakeSettings) Save(s *domain.AppSettings) error {
	f.settings = *s
	return nil
}

func (f *fakeSettings) Set(key, value string) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.set[key] = value
	return nil
}

func (f *fakeSettings) Keys() []string {
	return []string{"api.base_url", "api.rate_limit"}
}

func (f *fakeSettings) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// withServices installs s for the duration of the test.
func withServices(t *testing.T, s *Services) {
	t.Helper()
	SetServices(s)
	t.Cleanup(func() { SetServices(&Services{}) })
}

// execute runs the root command with args and stdin, returning stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	out := new(bytes.Buffer)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags restores every flag in the tree to its default, since cobra
// keeps parsed values between executions.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
