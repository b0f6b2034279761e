// Package resource implements the view-model shared by every list-and-create page
// of the console.
//
// A Resource holds a snapshot of one server collection plus a creation draft. The
// snapshot only changes after a confirmed server round trip: a full reload replaces
// it, a create appends the server's echo, an update replaces by id and a delete
// removes by id. Nothing is applied optimistically.
package resource

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"sync"

	"github.com/autopeer-io/fleetconsole/internal/pkg/metrics"
	"github.com/autopeer-io/fleetconsole/pkg/log"
	"github.com/autopeer-io/fleetconsole/pkg/rest"
)

// ErrStale is returned when a response arrived after it stopped mattering: a newer
// load was issued, or the page's context was cancelled. The response is not applied.
var ErrStale = errors.New("response discarded")

// Operation names used in logs and metrics.
const (
	OpLoad   = "load"
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// Entity is implemented by every type the API assigns an id to.
type Entity interface {
	Identity() int64
}

// Messages are the user-facing texts recorded when an operation fails.
// Details of the failure are logged, never shown.
type Messages struct {
	Load   string
	Create string
	Update string
	Delete string
}

// Definition binds the generic view-model to one collection of the API.
type Definition[T Entity, D any] struct {
	// Name identifies the page in logs and metrics, e.g. "evs".
	Name string

	// Path is the collection endpoint. Items live at Path + "/" + id.
	Path string

	Messages Messages

	// NewDraft returns the empty creation form.
	NewDraft func() D

	// SetField coerces a form input onto the draft.
	SetField func(draft *D, name, value string) error
}

// State is a point-in-time copy of a Resource.
type State[T Entity, D any] struct {
	Items    []T
	Loading  bool
	Creating bool
	// Error is the message of the last failed operation, empty if none.
	Error string
	Draft D
}

// Resource is the view-model of one collection page. It is safe for concurrent use.
type Resource[T Entity, D any] struct {
	def    Definition[T, D]
	client rest.Client
	logger log.Logger

	mu       sync.Mutex
	items    []T
	loading  bool
	creating bool
	errMsg   string
	draft    D

	// loadSeq is bumped on every Load; only the newest load may apply its response.
	loadSeq uint64
}

// New returns an empty Resource for def.
func New[T Entity, D any](client rest.Client, def Definition[T, D]) *Resource[T, D] {
	return &Resource[T, D]{
		def:    def,
		client: client,
		logger: log.WithName("page").WithValues("page", def.Name),
		items:  []T{},
		draft:  def.NewDraft(),
	}
}

// Name returns the page name of the resource.
func (r *Resource[T, D]) Name() string { return r.def.Name }

// State returns a copy of the current state.
func (r *Resource[T, D]) State() State[T, D] {
	r.mu.Lock()
	defer r.mu.Unlock()

	return State[T, D]{
		Items:    slices.Clone(r.items),
		Loading:  r.loading,
		Creating: r.creating,
		Error:    r.errMsg,
		Draft:    r.draft,
	}
}

// LastError returns the message of the last failed operation, or "".
func (r *Resource[T, D]) LastError() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.errMsg
}

// Find returns the item with the given id from the current snapshot.
func (r *Resource[T, D]) Find(id int64) (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, it := range r.items {
		if it.Identity() == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// Refresh reloads the collection. It lets a Resource serve as a shell page.
func (r *Resource[T, D]) Refresh(ctx context.Context) error {
	return r.Load(ctx)
}

// Load replaces the items with the server's list, preserving its order.
// On failure the previous items are kept and the load message is recorded.
func (r *Resource[T, D]) Load(ctx context.Context) error {
	r.mu.Lock()
	r.loadSeq++
	seq := r.loadSeq
	r.loading = true
	r.errMsg = ""
	r.mu.Unlock()

	var items []T
	err := r.client.Get(log.IntoContext(ctx, r.logger), r.def.Path, &items)

	r.mu.Lock()
	defer r.mu.Unlock()

	latest := seq == r.loadSeq
	if latest {
		r.loading = false
	}
	if !latest || ctx.Err() != nil {
		return r.discard(OpLoad)
	}

	if err != nil {
		r.fail(OpLoad, r.def.Messages.Load, err)
		return err
	}

	if items == nil {
		items = []T{}
	}
	r.items = items
	r.logger.Debug("Loaded items", "count", len(items))
	return nil
}

// Create submits the current draft. On success the server's entity is appended
// and the draft is reset; on failure the draft is left exactly as it was.
func (r *Resource[T, D]) Create(ctx context.Context) (T, error) {
	var created T

	r.mu.Lock()
	draft := r.draft
	r.creating = true
	r.errMsg = ""
	r.mu.Unlock()

	err := r.client.Post(log.IntoContext(ctx, r.logger), r.def.Path, draft, &created)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.creating = false
	if ctx.Err() != nil {
		return created, r.discard(OpCreate)
	}

	if err != nil {
		r.fail(OpCreate, r.def.Messages.Create, err)
		return created, err
	}

	r.items = append(slices.Clone(r.items), created)
	r.draft = r.def.NewDraft()
	r.logger.Info("Created item", "id", created.Identity())
	return created, nil
}

// Update sends the full entity and, once confirmed, replaces the item whose id
// matches the server's echo.
func (r *Resource[T, D]) Update(ctx context.Context, entity T) (T, error) {
	var updated T

	r.mu.Lock()
	r.errMsg = ""
	r.mu.Unlock()

	err := r.client.Put(log.IntoContext(ctx, r.logger), r.itemPath(entity.Identity()), entity, &updated)

	r.mu.Lock()
	defer r.mu.Unlock()

	if ctx.Err() != nil {
		return updated, r.discard(OpUpdate)
	}

	if err != nil {
		r.fail(OpUpdate, r.def.Messages.Update, err)
		return updated, err
	}

	items := slices.Clone(r.items)
	for i := range items {
		if items[i].Identity() == updated.Identity() {
			items[i] = updated
		}
	}
	r.items = items
	return updated, nil
}

// Delete removes the entity on the server and then drops it from the items.
// The API answering 404 counts as deleted.
func (r *Resource[T, D]) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	r.errMsg = ""
	r.mu.Unlock()

	err := r.client.Delete(log.IntoContext(ctx, r.logger), r.itemPath(id))

	r.mu.Lock()
	defer r.mu.Unlock()

	if ctx.Err() != nil {
		return r.discard(OpDelete)
	}

	if err != nil {
		r.fail(OpDelete, r.def.Messages.Delete, err)
		return err
	}

	r.items = slices.DeleteFunc(slices.Clone(r.items), func(it T) bool { return it.Identity() == id })
	return nil
}

// UpdateField applies one form input to the draft. It never talks to the server.
// The draft is unchanged when the value cannot be coerced.
func (r *Resource[T, D]) UpdateField(name, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	draft := r.draft
	if err := r.def.SetField(&draft, name, value); err != nil {
		return err
	}
	r.draft = draft
	return nil
}

func (r *Resource[T, D]) itemPath(id int64) string {
	return r.def.Path + "/" + strconv.FormatInt(id, 10)
}

// fail records msg for the user and the cause for operators. Callers hold r.mu.
func (r *Resource[T, D]) fail(op, msg string, err error) {
	kind := rest.KindOf(err)
	r.errMsg = msg
	r.logger.Error(err, msg, "operation", op, "kind", kind, "status", rest.StatusCode(err))
	metrics.OperationFailuresTotal.WithLabelValues(r.def.Name, op, kind.String()).Inc()
}

// discard drops a response nobody is waiting for. Callers hold r.mu.
func (r *Resource[T, D]) discard(op string) error {
	r.logger.Debug("Discarding response", "operation", op)
	metrics.StaleResponsesTotal.WithLabelValues(r.def.Name).Inc()
	return fmt.Errorf("%s %s: %w", r.def.Name, op, ErrStale)
}
