package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/autopeer-io/fleetconsole/internal/console/dashboard"
)

type dashboardScreen struct {
	dash *dashboard.Dashboard
}

func (s *dashboardScreen) capturing() bool              { return false }
func (s *dashboardScreen) handleKey(tea.KeyMsg) tea.Cmd { return nil }
func (s *dashboardScreen) handleDone(opDoneMsg)         {}
func (s *dashboardScreen) help() string                 { return "r refresh dashboard" }

func (s *dashboardScreen) view(int) string {
	st := s.dash.State()

	var b strings.Builder
	if st.Loading {
		b.WriteString("Loading dashboard…\n")
	}
	if st.Error != "" {
		b.WriteString("Error: " + st.Error + "\n")
	}
	b.WriteString(s.dash.View())
	return b.String()
}
