// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/compass/internal/core/domain"
)

// Theme defines the colour palette for the TUI.
type Theme struct {
	// Primary is the main accent colour.
	Primary lipgloss.Color

	// Info colours informational badges.
	Info lipgloss.Color

	// Foreground is the default text colour.
	Foreground lipgloss.Color

	// Muted is for less important text.
	Muted lipgloss.Color

	// StatusBackground fills the status bar.
	StatusBackground lipgloss.Color

	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color

	// Domains gives every domain its accent colour.
	Domains map[domain.Domain]lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:          lipgloss.Color("#2563EB"),
		Info:             lipgloss.Color("#06B6D4"),
		Foreground:       lipgloss.Color("#CDD6F4"),
		Muted:            lipgloss.Color("#6C7086"),
		StatusBackground: lipgloss.Color("#181825"),
		Success:          lipgloss.Color("#A6E3A1"),
		Warning:          lipgloss.Color("#F9E2AF"),
		Error:            lipgloss.Color("#F38BA8"),
		Domains: map[domain.Domain]lipgloss.Color{
			domain.DomainFinance:    lipgloss.Color("#0EA5E9"),
			domain.DomainOperations: lipgloss.Color("#22C55E"),
			domain.DomainHR:         lipgloss.Color("#A855F7"),
			domain.DomainSales:      lipgloss.Color("#F59E0B"),
			domain.DomainLegal:      lipgloss.Color("#EF4444"),
			domain.DomainIT:         lipgloss.Color("#6366F1"),
		},
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	// Title style for headers.
	Title lipgloss.Style

	// Subtitle style for secondary headers and Info badges.
	Subtitle lipgloss.Style

	// Normal style for regular text.
	Normal lipgloss.Style

	// Muted style for less important text.
	Muted lipgloss.Style

	// Selected style for highlighted items.
	Selected lipgloss.Style

	Error   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style

	// Tab style for inactive dashboard tabs.
	Tab lipgloss.Style

	// ActiveTab style for the selected dashboard tab.
	ActiveTab lipgloss.Style

	// StatusBar style for the status bar.
	StatusBar lipgloss.Style

	// Help style for help text.
	Help lipgloss.Style

	domains map[domain.Domain]lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	domains := make(map[domain.Domain]lipgloss.Style, len(theme.Domains))
	for d, c := range theme.Domains {
		domains[d] = lipgloss.NewStyle().Bold(true).Foreground(c)
	}

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Subtitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Info),

		Normal: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Foreground).
			Background(theme.Primary),

		Error:   lipgloss.NewStyle().Foreground(theme.Error),
		Success: lipgloss.NewStyle().Foreground(theme.Success),
		Warning: lipgloss.NewStyle().Foreground(theme.Warning),

		Tab: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 2),

		ActiveTab: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Foreground).
			Background(theme.Primary).
			Padding(0, 2),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(theme.StatusBackground).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted),

		domains: domains,
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// Domain returns the accent style for d, falling back to Title.
func (s *Styles) Domain(d domain.Domain) lipgloss.Style {
	if st, ok := s.domains[d]; ok {
		return st
	}
	return s.Title
}

// Priority returns the style for an insight priority badge.
func (s *Styles) Priority(p domain.Priority) lipgloss.Style {
	switch p {
	case domain.PriorityHigh:
		return s.Error
	case domain.PriorityMedium:
		return s.Warning
	default:
		return s.Success
	}
}

// Severity returns the style for an alert severity badge.
func (s *Styles) Severity(sev domain.AlertSeverity) lipgloss.Style {
	switch sev {
	case domain.SeverityHigh:
		return s.Error
	case domain.SeverityMedium:
		return s.Warning
	default:
		return s.Subtitle
	}
}
