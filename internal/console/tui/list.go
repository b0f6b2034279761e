package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/autopeer-io/fleetconsole/internal/console/pages"
	"github.com/autopeer-io/fleetconsole/internal/console/resource"
	"github.com/autopeer-io/fleetconsole/internal/console/shell"
	v1 "github.com/autopeer-io/fleetconsole/pkg/apis/fleet/v1"
)

// listPage is satisfied by every collection page.
type listPage[T resource.Entity, D any] interface {
	shell.Page
	pages.Form
	State() resource.State[T, D]
	Create(ctx context.Context) (T, error)
	Delete(ctx context.Context, id int64) error
	Table(cursor int) string
}

type listScreen[T resource.Entity, D any] struct {
	active *shell.View
	page   listPage[T, D]
	cursor int
	form   *form

	// confirmDelete holds the id awaiting a y/n answer, 0 if none.
	confirmDelete int64

	extraKeys func(key string, item T) tea.Cmd
	extraHelp string
}

func newListScreen[T resource.Entity, D any](v *shell.View, p listPage[T, D]) *listScreen[T, D] {
	return &listScreen[T, D]{active: v, page: p}
}

func (s *listScreen[T, D]) capturing() bool {
	return s.form != nil || s.confirmDelete != 0
}

func (s *listScreen[T, D]) selected() (T, bool) {
	items := s.page.State().Items
	if s.cursor < 0 || s.cursor >= len(items) {
		var zero T
		return zero, false
	}
	return items[s.cursor], true
}

func (s *listScreen[T, D]) handleKey(msg tea.KeyMsg) tea.Cmd {
	if s.form != nil {
		cmd, closed := s.form.handleKey(msg, s.submit)
		if closed {
			s.form = nil
		}
		return cmd
	}

	key := msg.String()
	if s.confirmDelete != 0 {
		id := s.confirmDelete
		s.confirmDelete = 0
		if key == "y" {
			return s.delete(id)
		}
		return nil
	}

	n := len(s.page.State().Items)
	switch key {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
		return nil
	case "down", "j":
		if s.cursor < n-1 {
			s.cursor++
		}
		return nil
	case "n":
		s.form = newForm(s.page)
		return nil
	case "x":
		if item, ok := s.selected(); ok {
			s.confirmDelete = item.Identity()
		}
		return nil
	}

	if s.extraKeys != nil {
		if item, ok := s.selected(); ok {
			return s.extraKeys(key, item)
		}
	}
	return nil
}

func (s *listScreen[T, D]) submit() tea.Cmd {
	if s.page.State().Creating {
		return nil
	}
	v, p := s.active, s.page
	return func() tea.Msg {
		created, err := p.Create(v.Context())
		return opDoneMsg{view: v, op: resource.OpCreate, status: fmt.Sprintf("Created #%d", created.Identity()), err: err}
	}
}

func (s *listScreen[T, D]) delete(id int64) tea.Cmd {
	v, p := s.active, s.page
	return func() tea.Msg {
		err := p.Delete(v.Context(), id)
		return opDoneMsg{view: v, op: resource.OpDelete, status: fmt.Sprintf("Deleted #%d", id), err: err}
	}
}

func (s *listScreen[T, D]) handleDone(msg opDoneMsg) {
	if msg.op == resource.OpCreate && msg.err == nil {
		s.form = nil
	}
	if n := len(s.page.State().Items); s.cursor >= n {
		s.cursor = max(n-1, 0)
	}
}

func (s *listScreen[T, D]) view(int) string {
	st := s.page.State()

	var b strings.Builder
	b.WriteString(s.page.Title() + "\n")
	if st.Loading {
		b.WriteString("Loading…\n")
	}
	if st.Error != "" {
		b.WriteString("Error: " + st.Error + "\n")
	}
	b.WriteString(s.page.Table(s.cursor) + "\n")

	if s.confirmDelete != 0 {
		fmt.Fprintf(&b, "\nDelete #%d? (y/n)\n", s.confirmDelete)
	}
	if s.form != nil {
		b.WriteString("\n" + s.form.view(st.Creating))
	}
	return b.String()
}

func (s *listScreen[T, D]) help() string {
	if s.form != nil {
		return "tab next field · ←/→ or space change choice · enter save · esc close"
	}
	h := "↑/↓ select · n new · x delete"
	if s.extraHelp != "" {
		h += " · " + s.extraHelp
	}
	return h
}

func driverKeys(v *shell.View, p *pages.DriverPage) func(string, v1.Driver) tea.Cmd {
	return func(key string, d v1.Driver) tea.Cmd {
		if key != "t" {
			return nil
		}
		return func() tea.Msg {
			updated, err := p.ToggleActive(v.Context(), d)
			return opDoneMsg{
				view:   v,
				op:     resource.OpUpdate,
				status: fmt.Sprintf("%s is now %s", updated.Name, activeWord(updated.Active)),
				err:    err,
			}
		}
	}
}

func activeWord(active bool) string {
	if active {
		return "active"
	}
	return "inactive"
}
