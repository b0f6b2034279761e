// Package shell selects which console page is on screen.
//
// Exactly one page is mounted at a time. Every navigation builds a fresh page
// instance, so nothing survives a round trip away from a page, and cancels the
// context of the page it replaces. Responses that arrive for a replaced page
// are discarded by the page itself.
package shell

import (
	"context"
	"fmt"
	"sync"

	"github.com/looplab/fsm"

	fsmutil "github.com/autopeer-io/fleetconsole/internal/pkg/util/fsm"
	"github.com/autopeer-io/fleetconsole/pkg/log"
)

// PageID names a top-level page. It doubles as the state of the selector.
type PageID string

const (
	PageDashboard PageID = "dashboard"
	PageVehicles  PageID = "evs"
	PageChargers  PageID = "chargers"
	PageDrivers   PageID = "drivers"
)

// DefaultPage is shown when the console starts.
const DefaultPage = PageDashboard

// Pages lists the pages in navigation order.
var Pages = []PageID{PageDashboard, PageVehicles, PageChargers, PageDrivers}

// Page is what the shell mounts.
type Page interface {
	Title() string
	Refresh(ctx context.Context) error
}

// Factory builds a fresh page instance.
type Factory func() Page

// View is one mounted page together with its lifetime.
type View struct {
	ID   PageID
	Page Page

	ctx    context.Context
	cancel context.CancelFunc
}

// Context is cancelled once the view is replaced or the shell is closed.
func (v *View) Context() context.Context { return v.ctx }

// Alive reports whether the view is still mounted.
func (v *View) Alive() bool { return v.ctx.Err() == nil }

// Refresh reloads the page within the view's lifetime.
func (v *View) Refresh() error { return v.Page.Refresh(v.ctx) }

func showEvent(id PageID) string { return "show_" + string(id) }

// Shell is the page selector. It is safe for concurrent use.
type Shell struct {
	root      context.Context
	factories map[PageID]Factory
	logger    log.Logger

	mu     sync.Mutex
	fsm    *fsm.FSM
	active *View
}

// New mounts DefaultPage. Every page in Pages needs a factory. The returned
// shell's views live at most as long as ctx.
func New(ctx context.Context, factories map[PageID]Factory) (*Shell, error) {
	for _, id := range Pages {
		if factories[id] == nil {
			return nil, fmt.Errorf("no factory for page %q", id)
		}
	}

	s := &Shell{
		root:      ctx,
		factories: factories,
		logger:    log.WithName("shell"),
	}

	states := make([]string, 0, len(Pages))
	for _, id := range Pages {
		states = append(states, string(id))
	}
	events := make(fsm.Events, 0, len(Pages))
	for _, id := range Pages {
		events = append(events, fsm.EventDesc{Name: showEvent(id), Src: fsmutil.AllStates(states...), Dst: string(id)})
	}

	// Callbacks run inside Navigate, which holds s.mu.
	callbacks := fsm.Callbacks{
		"leave_state": func(context.Context, *fsm.Event) {
			s.unmount()
		},
		"enter_state": fsmutil.WrapEvent(func(_ context.Context, e *fsm.Event) error {
			return s.mount(PageID(e.Dst))
		}),
	}

	s.fsm = fsm.NewFSM(string(DefaultPage), events, callbacks)
	if err := s.mount(DefaultPage); err != nil {
		return nil, err
	}
	return s, nil
}

// Navigate shows page id. Showing the page that is already on screen is a no-op
// and reports changed == false; otherwise the previous view is cancelled and a
// new, not yet loaded view is returned.
func (s *Shell) Navigate(id PageID) (view *View, changed bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		return nil, false, fmt.Errorf("shell is closed")
	}
	if PageID(s.fsm.Current()) == id {
		return s.active, false, nil
	}

	// The selector itself is never cancelled; only the views are.
	if err := fsmutil.IgnoreNoTransition(s.fsm.Event(context.Background(), showEvent(id))); err != nil {
		return s.active, false, fmt.Errorf("navigate to %q: %w", id, err)
	}
	s.logger.Debug("Navigated", "page", id)
	return s.active, true, nil
}

// Current returns the id of the page on screen.
func (s *Shell) Current() PageID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return PageID(s.fsm.Current())
}

// Active returns the mounted view, or nil after Close.
func (s *Shell) Active() *View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Close cancels the mounted view.
func (s *Shell) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unmount()
}

// mount and unmount are called with s.mu held.
func (s *Shell) mount(id PageID) error {
	if err := s.root.Err(); err != nil {
		return fmt.Errorf("mount %q: %w", id, err)
	}
	ctx, cancel := context.WithCancel(s.root)
	s.active = &View{ID: id, Page: s.factories[id](), ctx: ctx, cancel: cancel}
	return nil
}

func (s *Shell) unmount() {
	if s.active != nil {
		s.active.cancel()
		s.active = nil
	}
}
