package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/compass/internal/adapters/driving/mcp"
)

func TestServeCmd_StartsAndStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, _, err := execute(t, ctx, newTestServices(t), "serve", "--addr", "127.0.0.1:0")

	require.NoError(t, err)
	assert.Contains(t, out, "HTTP API listening on http://127.0.0.1:")
}

func TestServeCmd_NotConfigured(t *testing.T) {
	_, err := run(t, &Services{}, "serve")

	assert.EqualError(t, err, "dashboard service not configured")
}

func TestMCPCmd_Help(t *testing.T) {
	out, err := run(t, &Services{}, "mcp", "serve", "--help")

	require.NoError(t, err)
	assert.Contains(t, out, "compass://domains/{domain}")
}

func TestMCPServeCmd_NotConfigured(t *testing.T) {
	_, err := run(t, &Services{}, "mcp", "serve")

	require.Error(t, err)
	assert.ErrorIs(t, err, mcp.ErrMissingDashboardService)
}

func TestMCPServeCmd_HTTPStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, _, err := execute(t, ctx, newTestServices(t), "mcp", "serve", "--addr", "127.0.0.1:0")

	require.NoError(t, err)
	assert.Contains(t, out, "MCP server listening on 127.0.0.1:0")
}
