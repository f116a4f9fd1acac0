// Package mcp provides an MCP (Model Context Protocol) server adapter for resumechat.
// It lets AI assistants read the assembled resume and update its header.
package mcp

import "errors"

// ErrMissingResumeService is returned when the resume service is not provided.
var ErrMissingResumeService = errors.New("mcp: resume service is required")
