// Package menu provides the role selection menu for the TUI.
package menu

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/compass/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/compass/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/compass/internal/core/domain"
)

// Item represents a single menu option.
type Item struct {
	Label string
	Role  domain.Domain     // If set, selecting this item selects the role
	View  messages.ViewType // Used when Role is empty
	Quit  bool              // If true, selecting this item quits the app
}

// View represents the role menu view.
type View struct {
	styles   *styles.Styles
	items    []Item
	current  domain.Domain
	selected int
	width    int
	height   int
	ready    bool
}

// NewView creates a new menu view listing every domain role.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	domains := domain.AllDomains()
	items := make([]Item, 0, len(domains)+2)
	for _, d := range domains {
		items = append(items, Item{Label: d.String(), Role: d})
	}
	items = append(items,
		Item{Label: "Help", View: messages.ViewHelp},
		Item{Label: "Quit", Quit: true},
	)

	return &View{
		styles: s,
		items:  items,
		width:  80,
		height: 24,
	}
}

// Init initialises the menu view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.selected > 0 {
				v.selected--
			}
			return v, nil

		case "down", "j":
			if v.selected < len(v.items)-1 {
				v.selected++
			}
			return v, nil

		case "enter":
			item := v.items[v.selected]
			switch {
			case item.Quit:
				return v, tea.Quit
			case item.Role != "":
				return v, func() tea.Msg {
					return messages.RoleSelected{Role: item.Role}
				}
			default:
				return v, func() tea.Msg {
					return messages.ViewChanged{View: item.View}
				}
			}

		case "q":
			return v, tea.Quit
		}
	}

	return v, nil
}

// View renders the menu.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Compass"))
	b.WriteString("\n\n")

	b.WriteString(v.styles.Muted.Render("Select your role"))
	b.WriteString("\n\n")

	for i, item := range v.items {
		cursor := "  "
		style := v.styles.Normal
		if item.Role != "" {
			style = v.styles.Domain(item.Role).UnsetBold()
		}
		if i == v.selected {
			cursor = "> "
			style = style.Bold(true)
		}

		line := cursor + style.Render(item.Label)
		if item.Role != "" && item.Role == v.current {
			line += v.styles.Muted.Render(" (current)")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] Navigate  [Enter] Select  [?] Help  [q] Quit"))

	return b.String()
}

// SetCurrent marks the active role and moves the cursor onto it.
// An empty domain clears the marker.
func (v *View) SetCurrent(d domain.Domain) {
	v.current = d
	for i, item := range v.items {
		if d != "" && item.Role == d {
			v.selected = i
			return
		}
	}
}

// Current returns the role marked as active.
func (v *View) Current() domain.Domain {
	return v.current
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Selected returns the currently selected index.
func (v *View) Selected() int {
	return v.selected
}

// Items returns the menu items.
func (v *View) Items() []Item {
	return v.items
}
