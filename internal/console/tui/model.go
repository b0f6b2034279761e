// Package tui is the interactive terminal front end of the console.
//
// The view-models block on the network, so every operation runs as a tea.Cmd
// bound to the context of the view that issued it. Results for a view that is
// no longer on screen are ignored.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/autopeer-io/fleetconsole/internal/console/dashboard"
	"github.com/autopeer-io/fleetconsole/internal/console/pages"
	"github.com/autopeer-io/fleetconsole/internal/console/shell"
	"github.com/autopeer-io/fleetconsole/pkg/log"
)

const title = "EV Fleet Ops Console"

var navKeys = map[string]shell.PageID{
	"1": shell.PageDashboard,
	"2": shell.PageVehicles,
	"3": shell.PageChargers,
	"4": shell.PageDrivers,
}

// refreshedMsg reports the end of a page load.
type refreshedMsg struct {
	view *shell.View
	err  error
}

// opDoneMsg reports the end of a create, update or delete.
type opDoneMsg struct {
	view   *shell.View
	op     string
	status string
	err    error
}

// screen renders one mounted page and handles its keys.
type screen interface {
	// capturing reports whether the screen consumes every key, e.g. while a form is open.
	capturing() bool
	handleKey(msg tea.KeyMsg) tea.Cmd
	handleDone(msg opDoneMsg)
	view(width int) string
	help() string
}

// Model is the root bubbletea model.
type Model struct {
	shell  *shell.Shell
	active *shell.View
	screen screen

	width  int
	status string
}

var _ tea.Model = (*Model)(nil)

// New returns a model showing the shell's active page.
func New(sh *shell.Shell) *Model {
	m := &Model{shell: sh}
	m.mount(sh.Active())
	return m
}

func (m *Model) Init() tea.Cmd {
	return refresh(m.active)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case refreshedMsg:
		if msg.view != m.active {
			return m, nil
		}
		if msg.err == nil {
			m.status = ""
		}
		return m, nil

	case opDoneMsg:
		if msg.view != m.active {
			return m, nil
		}
		m.screen.handleDone(msg)
		m.status = ""
		if msg.err == nil {
			m.status = msg.status
		}
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	if key == "ctrl+c" {
		return tea.Quit
	}
	if m.screen.capturing() {
		return m.screen.handleKey(msg)
	}

	switch key {
	case "q":
		return tea.Quit
	case "r":
		m.status = ""
		return refresh(m.active)
	}

	if id, ok := navKeys[key]; ok {
		view, changed, err := m.shell.Navigate(id)
		if err != nil {
			log.Error(err, "Failed to navigate", "page", id)
			return nil
		}
		if !changed {
			return nil
		}
		m.status = ""
		m.mount(view)
		return refresh(view)
	}

	return m.screen.handleKey(msg)
}

func (m *Model) mount(v *shell.View) {
	m.active = v
	switch p := v.Page.(type) {
	case *dashboard.Dashboard:
		m.screen = &dashboardScreen{dash: p}
	case *pages.VehiclePage:
		m.screen = newListScreen(v, p)
	case *pages.ChargerPage:
		m.screen = newListScreen(v, p)
	case *pages.DriverPage:
		s := newListScreen(v, p)
		s.extraKeys = driverKeys(v, p)
		s.extraHelp = "t toggle active"
		m.screen = s
	default:
		m.screen = unknownScreen{title: v.Page.Title()}
	}
}

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(title + "\n")
	for i, id := range shell.Pages {
		name := pageTitle(id)
		if id == m.active.ID {
			name = "[" + name + "]"
		} else {
			name = " " + name + " "
		}
		fmt.Fprintf(&b, "%d %s  ", i+1, name)
	}
	b.WriteString("\n" + rule(m.width) + "\n")

	b.WriteString(m.screen.view(m.width))

	b.WriteString("\n" + rule(m.width) + "\n")
	if m.status != "" {
		b.WriteString(m.status + "\n")
	}
	b.WriteString(m.screen.help())
	if !m.screen.capturing() {
		b.WriteString(" · 1-4 pages · r reload · q quit")
	}
	b.WriteString("\n")
	return b.String()
}

func pageTitle(id shell.PageID) string {
	switch id {
	case shell.PageDashboard:
		return "Dashboard"
	case shell.PageVehicles:
		return "EVs"
	case shell.PageChargers:
		return "Chargers"
	case shell.PageDrivers:
		return "Drivers"
	}
	return string(id)
}

func rule(width int) string {
	if width <= 0 || width > 100 {
		width = 60
	}
	return strings.Repeat("─", width)
}

func refresh(v *shell.View) tea.Cmd {
	return func() tea.Msg {
		return refreshedMsg{view: v, err: v.Refresh()}
	}
}

// Run shows the console until the user quits or ctx is done.
func Run(ctx context.Context, sh *shell.Shell, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	_, err := tea.NewProgram(New(sh), opts...).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

type unknownScreen struct{ title string }

func (unknownScreen) capturing() bool              { return false }
func (unknownScreen) handleKey(tea.KeyMsg) tea.Cmd { return nil }
func (unknownScreen) handleDone(opDoneMsg)         {}
func (s unknownScreen) view(int) string            { return s.title }
func (unknownScreen) help() string                 { return "" }
