package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/compass/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/compass/internal/core/domain"
)

// AlertList displays alerts in a navigable list.
type AlertList struct {
	alerts []domain.Alert
	cursor cursor
	styles *styles.Styles
	width  int
	height int
}

// NewAlertList creates a new alert list component.
func NewAlertList(s *styles.Styles) *AlertList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &AlertList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the alert list.
func (l *AlertList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *AlertList) Update(msg tea.Msg) (*AlertList, tea.Cmd) {
	l.cursor.handleKey(msg)
	return l, nil
}

// View renders the alert list.
func (l *AlertList) View() string {
	if len(l.alerts) == 0 {
		return l.styles.Muted.Render("No active alerts")
	}

	start, end := l.cursor.window((l.height - 1) / 2)

	lines := make([]string, 0, (end-start)*2)
	for i := start; i < end; i++ {
		lines = append(lines, l.renderAlert(i, &l.alerts[i]))
	}
	return strings.Join(lines, "\n")
}

func (l *AlertList) renderAlert(index int, a *domain.Alert) string {
	indicator := "  "
	if index == l.cursor.selected {
		indicator = "> "
	}

	title := truncate(a.Title, l.width-20)
	badge := l.styles.Severity(a.Severity).Render(fmt.Sprintf("[%s]", a.Severity))

	var titleLine string
	if index == l.cursor.selected {
		titleLine = l.styles.Selected.Render(indicator+title) + " " + badge
	} else {
		titleLine = l.styles.Normal.Render(indicator+title) + " " + badge
	}
	if a.Acknowledged {
		titleLine += l.styles.Muted.Render(" (acknowledged)")
	}

	message := l.styles.Muted.Render("    " + truncate(a.Message, l.width-6))
	return titleLine + "\n" + message
}

// SetAlerts updates the list and resets the selection.
func (l *AlertList) SetAlerts(alerts []domain.Alert) {
	l.alerts = alerts
	l.cursor.reset(len(alerts))
}

// Alerts returns the current alerts.
func (l *AlertList) Alerts() []domain.Alert {
	return l.alerts
}

// Selected returns the index of the selected alert.
func (l *AlertList) Selected() int {
	return l.cursor.selected
}

// SetSelected sets the selected index.
func (l *AlertList) SetSelected(index int) {
	l.cursor.set(index)
}

// SelectedAlert returns the currently selected alert, or nil if none.
func (l *AlertList) SelectedAlert() *domain.Alert {
	if len(l.alerts) == 0 {
		return nil
	}
	return &l.alerts[l.cursor.selected]
}

// MoveUp moves selection up.
func (l *AlertList) MoveUp() {
	l.cursor.up()
}

// MoveDown moves selection down.
func (l *AlertList) MoveDown() {
	l.cursor.down()
}

// SetDimensions sets the component dimensions.
func (l *AlertList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of alerts.
func (l *AlertList) Count() int {
	return len(l.alerts)
}
