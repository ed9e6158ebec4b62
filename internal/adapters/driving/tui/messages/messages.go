// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/compass/internal/core/domain"
	"github.com/custodia-labs/compass/internal/core/ports/driving"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the role selection menu.
	ViewMenu ViewType = iota
	// ViewDashboard is the dashboard of the selected role.
	ViewDashboard
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewDashboard:
		return "dashboard"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// RoleSelected is sent when a role is picked from the menu.
type RoleSelected struct {
	Role domain.Domain
}

// LogoutRequested asks the app to clear the selected role.
type LogoutRequested struct{}

// DashboardLoaded carries a freshly built dashboard.
type DashboardLoaded struct {
	Role      domain.Domain
	Dashboard *driving.DomainDashboard
	Err       error
}

// AlertAcknowledged reports the outcome of acknowledging an alert.
type AlertAcknowledged struct {
	AlertID      string
	Acknowledged bool
	Err          error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
