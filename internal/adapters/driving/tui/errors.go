package tui

import "errors"

// ErrMissingDashboardService is returned when the dashboard service is not provided.
var ErrMissingDashboardService = errors.New("tui: dashboard service is required")

// ErrMissingViewService is returned when the view service is not provided.
var ErrMissingViewService = errors.New("tui: view service is required")

// ErrMissingSessionService is returned when the session service is not provided.
var ErrMissingSessionService = errors.New("tui: session service is required")
