package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/compass/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/compass/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/compass/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/compass/internal/adapters/driving/tui/views/dashboard"
	"github.com/custodia-labs/compass/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/compass/internal/logger"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// keymap holds the key bindings shared by every view.
	keymap *keymap.KeyMap

	// menuView is the role selection menu.
	menuView *menu.View

	// dashboardView shows the selected role's dashboard.
	dashboardView *dashboard.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// previousView is where esc returns to from help.
	previousView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
// A previously selected role opens straight onto its dashboard.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	app := &App{
		ports:         ports,
		ctx:           context.Background(),
		styles:        s,
		keymap:        km,
		menuView:      menu.NewView(s),
		dashboardView: dashboard.NewView(s, km, ports.Views, ports.Dashboard),
		currentView:   messages.ViewMenu,
	}

	if role, ok := ports.Session.Current(); ok {
		app.menuView.SetCurrent(role)
		app.currentView = messages.ViewDashboard
	}

	return app, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.dashboardView.SetContext(ctx)
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.SetWindowTitle("compass")}
	if a.currentView == messages.ViewDashboard {
		cmds = append(cmds, a.dashboardView.SetRole(a.menuView.Current()))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		switch a.currentView {
		case messages.ViewMenu:
			if keymap.Matches(msg.String(), a.keymap.Help) {
				return a.changeView(messages.ViewHelp)
			}
			a.menuView, cmd = a.menuView.Update(msg)
			return a, cmd

		case messages.ViewDashboard:
			a.dashboardView, cmd = a.dashboardView.Update(msg)
			return a, cmd

		case messages.ViewHelp:
			if msg.Type == tea.KeyEsc || keymap.Matches(msg.String(), a.keymap.Help) {
				return a.changeView(a.previousView)
			}
			if msg.String() == "q" {
				return a, tea.Quit
			}
		}
		return a, nil

	case messages.RoleSelected:
		if err := a.ports.Session.Select(msg.Role); err != nil {
			// The dashboard still opens; only persistence failed.
			a.err = err
			logger.Warn("saving role %s: %v", msg.Role, err)
		}
		a.menuView.SetCurrent(msg.Role)
		a.currentView = messages.ViewDashboard
		return a, a.dashboardView.SetRole(msg.Role)

	case messages.LogoutRequested:
		if err := a.ports.Session.Logout(); err != nil {
			a.err = err
		}
		a.menuView.SetCurrent("")
		a.currentView = messages.ViewMenu
		return a, nil

	case messages.ViewChanged:
		return a.changeView(msg.View)

	case messages.DashboardLoaded, messages.AlertAcknowledged:
		a.dashboardView, cmd = a.dashboardView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	return a, nil
}

func (a *App) changeView(view messages.ViewType) (tea.Model, tea.Cmd) {
	if view == messages.ViewHelp && a.currentView != messages.ViewHelp {
		a.previousView = a.currentView
	}
	if view == messages.ViewDashboard && a.dashboardView.Role() == "" {
		// Nothing selected yet.
		view = messages.ViewMenu
	}
	a.currentView = view
	return a, nil
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewDashboard:
		return a.dashboardView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	case messages.ViewMenu:
	}

	out := a.menuView.View()
	if a.err != nil {
		out += "\n\n" + a.styles.Error.Render("Error: "+a.err.Error())
	}
	return out
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")
	for _, group := range a.keymap.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %-10s %s\n", h.Key, h.Desc))
		}
		b.WriteString("\n")
	}
	b.WriteString(a.styles.Muted.Render("Insights are scoped to the selected role. Acknowledged alerts leave the Alerts tab."))
	b.WriteString("\n\n")
	b.WriteString(a.styles.Help.Render("[esc] back"))
	return b.String()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Dashboard returns the dashboard view.
func (a *App) Dashboard() *dashboard.View {
	return a.dashboardView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.dashboardView.SetDimensions(width, height)
}
