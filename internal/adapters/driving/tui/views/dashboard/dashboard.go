// Package dashboard provides the per-role dashboard view for the TUI.
package dashboard

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/compass/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/compass/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/compass/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/compass/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/compass/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/compass/internal/core/domain"
	"github.com/custodia-labs/compass/internal/core/ports/driving"
)

// Tab identifies the list shown on the dashboard.
type Tab int

const (
	// TabInsights lists the domain's insights.
	TabInsights Tab = iota
	// TabAlerts lists the domain's active alerts.
	TabAlerts
)

// String returns the tab label.
func (t Tab) String() string {
	if t == TabAlerts {
		return "Alerts"
	}
	return "Insights"
}

// chrome is the number of lines used around the active list.
const chrome = 9

// View shows the insights and active alerts of one domain.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	views     driving.ViewService
	dashboard driving.DashboardService
	ctx       context.Context

	role     domain.Domain
	data     *driving.DomainDashboard
	tab      Tab
	insights *list.InsightList
	alerts   *list.AlertList
	status   *status.Bar

	width   int
	height  int
	ready   bool
	loading bool
	err     error
}

// NewView creates a new dashboard view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	views driving.ViewService,
	dashboard driving.DashboardService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:    s,
		keymap:    km,
		views:     views,
		dashboard: dashboard,
		ctx:       context.Background(),
		insights:  list.NewInsightList(s),
		alerts:    list.NewAlertList(s),
		status:    status.NewBar(s, km),
		width:     80,
		height:    24,
	}
}

// SetContext sets the context used for service calls.
func (v *View) SetContext(ctx context.Context) {
	v.ctx = ctx
}

// Init loads the dashboard for the current role.
func (v *View) Init() tea.Cmd {
	if v.role == "" {
		return nil
	}
	return v.load()
}

// SetRole switches the dashboard to a role and returns the load command.
func (v *View) SetRole(role domain.Domain) tea.Cmd {
	v.role = role
	v.data = nil
	v.err = nil
	v.tab = TabInsights
	v.insights.SetInsights(nil)
	v.alerts.SetAlerts(nil)
	v.status.Clear()
	return v.load()
}

func (v *View) load() tea.Cmd {
	v.loading = true
	v.status.SetState(status.StateLoading)

	role := v.role
	ctx := v.ctx
	return func() tea.Msg {
		if v.views == nil {
			return messages.DashboardLoaded{Role: role, Err: fmt.Errorf("view service not available")}
		}
		dd, err := v.views.DomainDashboard(ctx, role)
		return messages.DashboardLoaded{Role: role, Dashboard: dd, Err: err}
	}
}

func (v *View) acknowledge(alertID string) tea.Cmd {
	ctx := v.ctx
	return func() tea.Msg {
		if v.dashboard == nil {
			return messages.AlertAcknowledged{AlertID: alertID, Err: fmt.Errorf("dashboard service not available")}
		}
		ok, err := v.dashboard.Acknowledge(ctx, alertID)
		return messages.AlertAcknowledged{AlertID: alertID, Acknowledged: ok, Err: err}
	}
}

// Update handles messages for the dashboard view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.DashboardLoaded:
		if msg.Role != v.role {
			// stale response for a previous role
			return v, nil
		}
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			v.status.SetState(status.StateError)
			v.status.SetMessage(msg.Err.Error())
			return v, nil
		}
		v.err = nil
		v.data = msg.Dashboard
		v.insights.SetInsights(msg.Dashboard.Insights)
		v.alerts.SetAlerts(msg.Dashboard.ActiveAlerts)
		v.status.SetState(status.StateDashboard)
		v.status.SetCounts(len(msg.Dashboard.Insights), len(msg.Dashboard.ActiveAlerts))
		return v, nil

	case messages.AlertAcknowledged:
		if msg.Err != nil {
			v.err = msg.Err
			v.status.SetState(status.StateError)
			v.status.SetMessage(msg.Err.Error())
			return v, nil
		}
		if !msg.Acknowledged {
			v.status.SetMessage(fmt.Sprintf("No alert with ID %s", msg.AlertID))
			return v, nil
		}
		v.status.SetMessage("Alert acknowledged")
		return v, v.load()

	case tea.KeyMsg:
		return v.handleKey(msg)
	}

	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()
	switch {
	case keymap.Matches(k, v.keymap.Back):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewMenu} }

	case keymap.Matches(k, v.keymap.Quit):
		return v, tea.Quit

	case keymap.Matches(k, v.keymap.Help):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewHelp} }

	case keymap.Matches(k, v.keymap.Logout):
		return v, func() tea.Msg { return messages.LogoutRequested{} }

	case keymap.Matches(k, v.keymap.NextTab):
		if v.tab == TabInsights {
			v.tab = TabAlerts
		} else {
			v.tab = TabInsights
		}
		return v, nil

	case keymap.Matches(k, v.keymap.Reload):
		if v.loading {
			return v, nil
		}
		v.status.SetMessage("")
		return v, v.load()

	case keymap.Matches(k, v.keymap.Acknowledge):
		if v.tab != TabAlerts {
			return v, nil
		}
		alert := v.alerts.SelectedAlert()
		if alert == nil {
			return v, nil
		}
		return v, v.acknowledge(alert.ID)
	}

	if v.tab == TabAlerts {
		v.alerts, _ = v.alerts.Update(msg)
	} else {
		v.insights, _ = v.insights.Update(msg)
	}
	return v, nil
}

// View renders the dashboard.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(v.styles.Domain(v.role).Render(fmt.Sprintf("Compass - %s Dashboard", v.role)))
	b.WriteString("\n\n")

	switch {
	case v.data != nil:
		stats := fmt.Sprintf("Documents: %d   Insights: %d   Active alerts: %d",
			v.data.Documents, len(v.data.Insights), len(v.data.ActiveAlerts))
		b.WriteString(v.styles.Normal.Render(stats))
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading dashboard..."))
	default:
		b.WriteString(v.styles.Muted.Render("No data"))
	}
	b.WriteString("\n\n")

	b.WriteString(v.renderTabs())
	b.WriteString("\n\n")

	if v.tab == TabAlerts {
		b.WriteString(v.alerts.View())
	} else {
		b.WriteString(v.insights.View())
	}
	b.WriteString("\n\n")

	if v.data != nil && len(v.data.CrossDomain) > 0 {
		b.WriteString(v.renderCrossDomain())
		b.WriteString("\n")
	}

	b.WriteString(v.status.View())
	return b.String()
}

func (v *View) renderTabs() string {
	tabs := make([]string, 0, 2)
	for _, t := range []Tab{TabInsights, TabAlerts} {
		label := t.String()
		if t == TabAlerts && v.data != nil {
			label = fmt.Sprintf("%s (%d)", label, len(v.data.ActiveAlerts))
		}
		if t == v.tab {
			tabs = append(tabs, v.styles.ActiveTab.Render(label))
		} else {
			tabs = append(tabs, v.styles.Tab.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (v *View) renderCrossDomain() string {
	parts := make([]string, 0, len(v.data.CrossDomain))
	for _, c := range v.data.CrossDomain {
		parts = append(parts, fmt.Sprintf("%s %d", c.Domain, c.Documents))
	}
	return v.styles.Muted.Render("By domain: " + strings.Join(parts, " | "))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	listHeight := height - chrome
	if listHeight < 2 {
		listHeight = 2
	}
	v.insights.SetDimensions(width, listHeight)
	v.alerts.SetDimensions(width, listHeight)
	v.status.SetWidth(width)
}

// Role returns the domain whose dashboard is shown.
func (v *View) Role() domain.Domain {
	return v.role
}

// Dashboard returns the last loaded dashboard, or nil.
func (v *View) Dashboard() *driving.DomainDashboard {
	return v.data
}

// Tab returns the active tab.
func (v *View) Tab() Tab {
	return v.tab
}

// Loading reports whether a load is in flight.
func (v *View) Loading() bool {
	return v.loading
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// Status returns the status bar.
func (v *View) Status() *status.Bar {
	return v.status
}
