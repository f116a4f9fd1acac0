// Package tui provides an interactive terminal user interface for resumechat.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/resumechat/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Session logs the user in and out.
	Session driving.SessionService

	// Resume loads, updates and exports the resume.
	Resume driving.ResumeService

	// Chat opens section chats.
	Chat driving.ChatService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	session driving.SessionService,
	resume driving.ResumeService,
	chat driving.ChatService,
) *Ports {
	return &Ports{
		Session: session,
		Resume:  resume,
		Chat:    chat,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Session == nil {
		return ErrMissingSessionService
	}
	if p.Resume == nil {
		return ErrMissingResumeService
	}
	if p.Chat == nil {
		return ErrMissingChatService
	}
	return nil
}
