package mcp

import (
	"github.com/custodia-labs/compass/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Dashboard reads and mutates the data store.
	Dashboard driving.DashboardService

	// Views builds overview and per-domain read models.
	Views driving.ViewService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Dashboard == nil {
		return ErrMissingDashboardService
	}
	if p.Views == nil {
		return ErrMissingViewService
	}
	return nil
}
