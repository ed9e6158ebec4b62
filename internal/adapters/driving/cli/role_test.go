package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/compass/internal/core/domain"
)

func TestRoleCmd_Lifecycle(t *testing.T) {
	svc := newTestServices(t)

	out, err := run(t, svc, "role")
	require.NoError(t, err)
	assert.Contains(t, out, "No role selected.")

	out, err = run(t, svc, "role", "select", "operations")
	require.NoError(t, err)
	assert.Contains(t, out, "Role set to Operations.")

	out, err = run(t, svc, "role", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Current role: Operations")

	out, err = run(t, svc, "role", "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged out.")

	_, ok := svc.Session.Current()
	assert.False(t, ok)
}

func TestRoleCmd_SelectUnknown(t *testing.T) {
	_, err := run(t, newTestServices(t), "role", "select", "marketing")

	require.ErrorIs(t, err, domain.ErrUnknownDomain)
	assert.Contains(t, err.Error(), "Finance, Operations, HR, Sales, Legal, IT")
}

func TestRoleCmd_NotConfigured(t *testing.T) {
	_, err := run(t, &Services{}, "role", "show")

	assert.EqualError(t, err, "session service not configured")
}
