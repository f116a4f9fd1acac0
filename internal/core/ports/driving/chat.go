package driving

import (
	"context"

	"github.com/custodia-labs/resumechat/internal/core/domain"
)

// ChatService opens section chats for the logged-in user.
type ChatService interface {
	// Begin creates a workflow for section bound to the current session.
	// The workflow is not started; call Start on it.
	Begin(ctx context.Context, section domain.SectionKind) (ChatWorkflow, error)
}

// ChatWorkflow drives one section chat from start to submit.
// Methods are safe for concurrent use; at most one request is in flight.
type ChatWorkflow interface {
	// Section returns the section being collected.
	Section() domain.SectionKind

	// Start opens the chat and seeds the transcript with the first AI message.
	Start(ctx context.Context) error

	// Send posts one user message and waits for the reply.
	Send(ctx context.Context, text string) error

	// Submit fetches, normalizes and stores the section result.
	Submit(ctx context.Context) (domain.SectionEntry, error)

	// Snapshot returns the current state.
	Snapshot() domain.ChatState
}
