package mcp

import (
	"github.com/custodia-labs/resumechat/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
type Ports struct {
	// Resume reads, updates and exports the resume document.
	Resume driving.ResumeService

	// Session exposes the last submitted result per section. Optional.
	Session driving.SessionService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Resume == nil {
		return ErrMissingResumeService
	}
	return nil
}
