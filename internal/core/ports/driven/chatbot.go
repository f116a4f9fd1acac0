package driven

import (
	"context"
	"encoding/json"

	"github.com/custodia-labs/resumechat/internal/core/domain"
)

// ChatBackend is the remote section chat service.
// Every call is authenticated with the session credentials.
//
// Failures are returned as *domain.TransportError when no usable response
// arrived and *domain.ApplicationError when the service answered with
// status false.
type ChatBackend interface {
	// StartChat opens a chat for section and returns the first AI message.
	// The returned turn carries the chat ID.
	StartChat(ctx context.Context, section domain.SectionKind, creds domain.Credentials) (*domain.ChatTurn, error)

	// SendMessage posts one user message and returns the AI reply.
	SendMessage(ctx context.Context, section domain.SectionKind, chatID, message string, creds domain.Credentials) (*domain.ChatTurn, error)

	// FetchResult returns the raw structured payload collected by the chat.
	FetchResult(ctx context.Context, section domain.SectionKind, chatID string, creds domain.Credentials) (json.RawMessage, error)
}
