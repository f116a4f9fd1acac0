package tui

import "errors"

// ErrMissingSessionService is returned when the session service is not provided.
var ErrMissingSessionService = errors.New("tui: session service is required")

// ErrMissingResumeService is returned when the resume service is not provided.
var ErrMissingResumeService = errors.New("tui: resume service is required")

// ErrMissingChatService is returned when the chat service is not provided.
var ErrMissingChatService = errors.New("tui: chat service is required")

// ErrInvalidPorts is returned when the ports aggregate itself is nil.
var ErrInvalidPorts = errors.New("tui: ports are required")
