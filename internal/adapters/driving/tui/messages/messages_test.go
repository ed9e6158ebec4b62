package messages

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/compass/internal/core/domain"
	"github.com/custodia-labs/compass/internal/core/ports/driving"
)

func TestViewType_String(t *testing.T) {
	tests := []struct {
		view ViewType
		want string
	}{
		{ViewMenu, "menu"},
		{ViewDashboard, "dashboard"},
		{ViewHelp, "help"},
		{ViewType(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.view.String())
		})
	}
}

func TestDashboardLoaded(t *testing.T) {
	t.Run("with dashboard", func(t *testing.T) {
		msg := DashboardLoaded{
			Role:      domain.DomainFinance,
			Dashboard: &driving.DomainDashboard{Domain: domain.DomainFinance, Documents: 3},
		}
		assert.Equal(t, domain.DomainFinance, msg.Role)
		assert.Equal(t, 3, msg.Dashboard.Documents)
		assert.NoError(t, msg.Err)
	})

	t.Run("with error", func(t *testing.T) {
		msg := DashboardLoaded{Role: domain.DomainIT, Err: errors.New("store offline")}
		assert.Nil(t, msg.Dashboard)
		assert.EqualError(t, msg.Err, "store offline")
	})
}

func TestAlertAcknowledged(t *testing.T) {
	msg := AlertAcknowledged{AlertID: "a-1", Acknowledged: true}
	assert.Equal(t, "a-1", msg.AlertID)
	assert.True(t, msg.Acknowledged)
}
