// Package mcp provides an MCP (Model Context Protocol) server adapter for Compass.
// It lets AI assistants ingest documents, read insights and acknowledge alerts.
package mcp

import "errors"

var (
	// ErrMissingDashboardService is returned when the dashboard service is not provided.
	ErrMissingDashboardService = errors.New("mcp: dashboard service is required")

	// ErrMissingViewService is returned when the view service is not provided.
	ErrMissingViewService = errors.New("mcp: view service is required")
)
