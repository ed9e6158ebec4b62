package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/compass/internal/core/domain"
)

func TestInsightsCmd_ListsAll(t *testing.T) {
	out, err := run(t, newTestServices(t), "insights")

	require.NoError(t, err)
	assert.Contains(t, out, "Insights (18)")
	assert.Contains(t, out, "Roles: ")
	assert.Contains(t, out, "[High]")
}

func TestInsightsCmd_Filters(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"by domain", []string{"insights", "--domain", "finance"}, "Insights (3)"},
		{"domain is case-insensitive", []string{"insights", "--domain", "LEGAL"}, "Domain: Legal"},
		{"by role", []string{"insights", "--role", "ceo"}, "CEO"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, newTestServices(t), tt.args...)

			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestInsightsCmd_RoleFilterKeepsOnlyMatches(t *testing.T) {
	out, err := run(t, newTestServices(t), "insights", "--role", "manager", "--json")
	require.NoError(t, err)

	var insights []domain.ProcessedInsight
	require.NoError(t, json.Unmarshal([]byte(out), &insights))
	for i := range insights {
		assert.True(t, insights[i].HasRole(domain.RoleManager), insights[i].Title)
	}
}

func TestInsightsCmd_JSON(t *testing.T) {
	out, err := run(t, newTestServices(t), "insights", "--domain", "it", "--json")
	require.NoError(t, err)

	var insights []domain.ProcessedInsight
	require.NoError(t, json.Unmarshal([]byte(out), &insights))
	assert.Len(t, insights, 3)
	for _, in := range insights {
		assert.Equal(t, domain.DomainIT, in.Domain)
	}
}

func TestInsightsCmd_InvalidFlags(t *testing.T) {
	_, err := run(t, newTestServices(t), "insights", "--role", "intern")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = run(t, newTestServices(t), "insights", "--domain", "marketing")
	assert.ErrorIs(t, err, domain.ErrUnknownDomain)
}

func TestInsightsCmd_NotConfigured(t *testing.T) {
	_, err := run(t, &Services{}, "insights")

	assert.EqualError(t, err, "view service not configured")
}
