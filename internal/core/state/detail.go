package state

import (
	"context"
	"sync"

	"github.com/frahmantamala/project-console/internal"
)

type DetailFetchFunc[T any] func(ctx context.Context, id string) (*T, error)

// Detail keeps one aggregate, addressed by id, in step with the server.
type Detail[T any] struct {
	mu        sync.Mutex
	state     State[*T]
	id        string
	fetch     DetailFetchFunc[T]
	fetchErr  string
	missingID string
	life      lifetime
	opts      options
}

// NewDetail builds an aggregate controller. missingID is the Result error for
// mutations attempted while no id is set.
func NewDetail[T any](fetch DetailFetchFunc[T], id, fetchErr, missingID string, opts ...Option) *Detail[T] {
	return &Detail[T]{
		id:        id,
		fetch:     fetch,
		fetchErr:  fetchErr,
		missingID: missingID,
		life:      newLifetime(),
		opts:      newOptions(opts),
	}
}

func (d *Detail[T]) Open(ctx context.Context) State[*T] {
	if d.opts.autoFetch {
		return d.Fetch(ctx)
	}
	return d.State()
}

func (d *Detail[T]) Close() {
	d.life.cancel()
}

func (d *Detail[T]) ID() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.id
}

// State returns a shallow copy; nested slices are shared but never written
// in place.
func (d *Detail[T]) State() State[*T] {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.snapshot()
}

func (d *Detail[T]) snapshot() State[*T] {
	s := d.state
	if d.state.Data != nil {
		c := *d.state.Data
		s.Data = &c
	}
	return s
}

// SetID points the view at another aggregate and refetches when it changed.
func (d *Detail[T]) SetID(ctx context.Context, id string) bool {
	d.mu.Lock()
	if d.id == id {
		d.mu.Unlock()
		return false
	}
	d.id = id
	d.state.Data = nil
	d.mu.Unlock()

	if d.opts.autoFetch {
		d.Fetch(ctx)
	}
	return true
}

// Fetch loads the aggregate. Without an id it does nothing.
func (d *Detail[T]) Fetch(ctx context.Context) State[*T] {
	d.mu.Lock()
	id := d.id
	if id == "" || !d.life.alive() {
		s := d.snapshot()
		d.mu.Unlock()
		return s
	}
	d.state.Loading = true
	d.state.Error = ""
	d.mu.Unlock()
	d.changed()

	reqCtx, done := d.life.bind(ctx)
	data, err := d.fetch(reqCtx, id)
	done()

	if !d.life.alive() {
		d.opts.logger.Debug("discarding fetch result of closed view")
		return d.State()
	}

	d.mu.Lock()
	if err != nil {
		d.opts.logger.Warn("fetch failed", "id", id, "error", err)
		d.state.Error = internal.ErrorMessage(err, d.fetchErr)
	} else if d.id == id {
		d.state.Data = data
	}
	d.state.Loading = false
	s := d.snapshot()
	d.mu.Unlock()
	d.changed()

	return s
}

// Mutate runs call against the aggregate identified by the current id and
// folds the outcome in with apply. apply receives a copy and must not write
// through shared slices. Nothing is applied while no aggregate is loaded.
func Mutate[T any, R any](ctx context.Context, d *Detail[T], call func(ctx context.Context, id string) (R, error), apply func(T, R) T, failMsg string) Result[R] {
	id := d.ID()
	if id == "" {
		return Failed[R](d.missingID)
	}

	return mutate(ctx, d.life, d.opts, func(ctx context.Context) (R, error) {
		return call(ctx, id)
	}, failMsg, func(out R) {
		fold(d, id, out, apply)
	})
}

// MutateNested is Mutate for nested records addressed by their own id. It
// runs without a current aggregate id and folds the outcome in only when the
// aggregate loaded at call time is still the one shown.
func MutateNested[T any, R any](ctx context.Context, d *Detail[T], call func(ctx context.Context) (R, error), apply func(T, R) T, failMsg string) Result[R] {
	id := d.ID()
	return mutate(ctx, d.life, d.opts, call, failMsg, func(out R) {
		fold(d, id, out, apply)
	})
}

func fold[T any, R any](d *Detail[T], id string, out R, apply func(T, R) T) {
	d.mu.Lock()
	if d.state.Data == nil || d.id != id {
		d.mu.Unlock()
		return
	}
	next := apply(*d.state.Data, out)
	d.state.Data = &next
	d.mu.Unlock()
	d.changed()
}

func (d *Detail[T]) changed() {
	if d.opts.onChange != nil {
		d.opts.onChange()
	}
}
