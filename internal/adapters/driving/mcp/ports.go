package mcp

import (
	"github.com/custodia-labs/taxdesk/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Desk holds the documents, the active report and its conversation.
	Desk driving.DeskService
}

// NewPorts creates a new Ports aggregate.
func NewPorts(desk driving.DeskService) *Ports {
	return &Ports{Desk: desk}
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p == nil || p.Desk == nil {
		return ErrMissingDeskService
	}
	return nil
}
