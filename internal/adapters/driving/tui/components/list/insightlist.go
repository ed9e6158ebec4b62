package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/compass/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/compass/internal/core/domain"
)

// InsightList displays processed insights in a navigable list.
type InsightList struct {
	insights []domain.ProcessedInsight
	cursor   cursor
	styles   *styles.Styles
	width    int
	height   int
}

// NewInsightList creates a new insight list component.
func NewInsightList(s *styles.Styles) *InsightList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &InsightList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the insight list.
func (l *InsightList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *InsightList) Update(msg tea.Msg) (*InsightList, tea.Cmd) {
	l.cursor.handleKey(msg)
	return l, nil
}

// View renders the insight list.
func (l *InsightList) View() string {
	if len(l.insights) == 0 {
		return l.styles.Muted.Render("No insights")
	}

	// Each insight takes two lines.
	start, end := l.cursor.window((l.height - 1) / 2)

	lines := make([]string, 0, (end-start)*2)
	for i := start; i < end; i++ {
		lines = append(lines, l.renderInsight(i, &l.insights[i]))
	}
	return strings.Join(lines, "\n")
}

func (l *InsightList) renderInsight(index int, in *domain.ProcessedInsight) string {
	indicator := "  "
	if index == l.cursor.selected {
		indicator = "> "
	}

	title := truncate(in.Title, l.width-20)
	badge := l.styles.Priority(in.Priority).Render(fmt.Sprintf("[%s]", in.Priority))

	var titleLine string
	if index == l.cursor.selected {
		titleLine = l.styles.Selected.Render(indicator+title) + " " + badge
	} else {
		titleLine = l.styles.Normal.Render(indicator+title) + " " + badge
	}

	summary := l.styles.Muted.Render("    " + truncate(in.Summary, l.width-6))
	return titleLine + "\n" + summary
}

// SetInsights updates the list and resets the selection.
func (l *InsightList) SetInsights(insights []domain.ProcessedInsight) {
	l.insights = insights
	l.cursor.reset(len(insights))
}

// Insights returns the current insights.
func (l *InsightList) Insights() []domain.ProcessedInsight {
	return l.insights
}

// Selected returns the index of the selected insight.
func (l *InsightList) Selected() int {
	return l.cursor.selected
}

// SetSelected sets the selected index.
func (l *InsightList) SetSelected(index int) {
	l.cursor.set(index)
}

// SelectedInsight returns the currently selected insight, or nil if none.
func (l *InsightList) SelectedInsight() *domain.ProcessedInsight {
	if len(l.insights) == 0 {
		return nil
	}
	return &l.insights[l.cursor.selected]
}

// MoveUp moves selection up.
func (l *InsightList) MoveUp() {
	l.cursor.up()
}

// MoveDown moves selection down.
func (l *InsightList) MoveDown() {
	l.cursor.down()
}

// SetDimensions sets the component dimensions.
func (l *InsightList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of insights.
func (l *InsightList) Count() int {
	return len(l.insights)
}
