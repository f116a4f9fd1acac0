package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidSection indicates an unknown resume section.
	ErrInvalidSection = errors.New("invalid section")

	// ErrInvalidCredentials indicates an empty user ID or API key at login.
	ErrInvalidCredentials = errors.New("user ID and API key are required")

	// ErrNotLoggedIn indicates no session exists in the session store.
	ErrNotLoggedIn = errors.New("not logged in")

	// ErrNormalization indicates a fetched section payload could not be
	// coerced into the resume schema.
	ErrNormalization = errors.New("normalization failed")

	// ErrUnsupportedFormat indicates an unknown export format.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// Chat Workflow Errors.

	// ErrNotStarted indicates the chat has not been started yet.
	ErrNotStarted = errors.New("chat not started")

	// ErrAlreadyStarted indicates Start was called twice on one workflow.
	ErrAlreadyStarted = errors.New("chat already started")

	// ErrRequestInFlight indicates another request is still outstanding.
	// Requests are rejected, never queued.
	ErrRequestInFlight = errors.New("a request is already in flight")

	// ErrSectionComplete indicates the service reported the section as
	// complete, so no further messages are sent. Submit is still allowed.
	ErrSectionComplete = errors.New("section is complete, submit to continue")

	// ErrEmptyMessage indicates a blank user message.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrWorkflowFailed indicates the chat could not be started.
	// A new workflow must be created to retry.
	ErrWorkflowFailed = errors.New("chat failed to start")

	// ErrWorkflowCompleted indicates the section was already submitted.
	ErrWorkflowCompleted = errors.New("chat already submitted")
)

// TransportError is a remote call that never produced a usable response:
// network, DNS, timeout, or a body that is not the service envelope.
type TransportError struct {
	// Op names the remote operation, e.g. "start_chat".
	Op string
	// StatusCode is the HTTP status when a response arrived but was unusable.
	StatusCode int
	// Err is the underlying cause.
	Err error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: transport error (status %d): %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: transport error: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ApplicationError is a well-formed response with status false.
type ApplicationError struct {
	// Op names the remote operation, e.g. "chat".
	Op string
	// Message is the human-readable reason from the service.
	Message string
}

func (e *ApplicationError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: request rejected by service", e.Op)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// IsTransport reports whether err is a transport failure.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// IsApplication reports whether err is an application failure.
func IsApplication(err error) bool {
	var ae *ApplicationError
	return errors.As(err, &ae)
}
