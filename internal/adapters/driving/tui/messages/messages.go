// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/resumechat/internal/core/domain"
	"github.com/custodia-labs/resumechat/internal/core/ports/driving"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewLogin collects the user ID and API key.
	ViewLogin ViewType = iota
	// ViewResume shows the assembled resume and the per-section add actions.
	ViewResume
	// ViewChat runs one section chat.
	ViewChat
)

// String returns the view name.
func (v ViewType) String() string {
	switch v {
	case ViewLogin:
		return "login"
	case ViewResume:
		return "resume"
	case ViewChat:
		return "chat"
	default:
		return "unknown"
	}
}

// SessionChecked reports the session found at startup.
// Session is nil when nobody is logged in.
type SessionChecked struct {
	Session *domain.Session
}

// LoginCompleted carries the outcome of a login attempt.
type LoginCompleted struct {
	Session *domain.Session
	Err     error
}

// LogoutRequested asks the app to end the session.
type LogoutRequested struct{}

// LoggedOut is sent after the session store was cleared.
type LoggedOut struct {
	Err error
}

// ResumeLoaded carries the current resume document.
type ResumeLoaded struct {
	Document *domain.ResumeDocument
	Name     string
	Err      error
}

// ChatRequested asks the app to open a chat for a section.
type ChatRequested struct {
	Section domain.SectionKind
}

// ChatOpened carries a workflow created for a section. It is not started yet.
type ChatOpened struct {
	Workflow driving.ChatWorkflow
	Err      error
}

// ChatUpdated is sent when a start or send call on Workflow finished.
// The new state is read from the workflow's snapshot.
type ChatUpdated struct {
	Workflow driving.ChatWorkflow
	Err      error
}

// ChatSubmitted carries the stored section entry.
type ChatSubmitted struct {
	Workflow driving.ChatWorkflow
	Entry    domain.SectionEntry
	Err      error
}

// ResumeExported reports where the resume was written.
type ResumeExported struct {
	Path string
	Err  error
}

// ErrorOccurred is sent when an error needs to be displayed.
type ErrorOccurred struct {
	Err error
}

// Quit is sent to exit the application.
type Quit struct{}
