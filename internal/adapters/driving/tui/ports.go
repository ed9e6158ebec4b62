// Package tui provides an interactive terminal user interface for compass.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/compass/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Dashboard acknowledges alerts.
	Dashboard driving.DashboardService

	// Views builds the per-domain dashboards.
	Views driving.ViewService

	// Session remembers the selected role between runs.
	Session driving.SessionService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	dashboard driving.DashboardService,
	views driving.ViewService,
	session driving.SessionService,
) *Ports {
	return &Ports{
		Dashboard: dashboard,
		Views:     views,
		Session:   session,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Dashboard == nil {
		return ErrMissingDashboardService
	}
	if p.Views == nil {
		return ErrMissingViewService
	}
	if p.Session == nil {
		return ErrMissingSessionService
	}
	return nil
}
