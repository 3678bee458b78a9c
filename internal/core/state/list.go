package state

import (
	"context"
	"reflect"
	"sync"

	"github.com/frahmantamala/project-console/internal"
)

type ListFetchFunc[T any, F any] func(ctx context.Context, filter F) ([]T, error)

// ListLoadFunc is a fetch that also hands back commit, run under the list's
// lock in the same step that installs the items. It never runs for a result
// that is discarded.
type ListLoadFunc[T any, F any] func(ctx context.Context, filter F) (items []T, commit func(), err error)

// List keeps one collection in step with the server. Fetch replaces it;
// Create, Update and Delete fold the confirmed outcome in without refetching.
// Failures never escape: they land in State.Error or in the returned Result.
type List[T Entity, F any] struct {
	mu       sync.Mutex
	state    State[[]T]
	filter   F
	load     ListLoadFunc[T, F]
	fetchErr string
	life     lifetime
	opts     options
}

// NewList builds a collection controller. fetchErr is the message shown
// when a fetch fails without a server supplied one.
func NewList[T Entity, F any](fetch ListFetchFunc[T, F], filter F, fetchErr string, opts ...Option) *List[T, F] {
	return NewLoadList(func(ctx context.Context, f F) ([]T, func(), error) {
		items, err := fetch(ctx, f)
		return items, nil, err
	}, filter, fetchErr, opts...)
}

// NewLoadList is NewList for fetches that carry data beside the items, such
// as a total count, which must change together with them.
func NewLoadList[T Entity, F any](load ListLoadFunc[T, F], filter F, fetchErr string, opts ...Option) *List[T, F] {
	return &List[T, F]{
		state:    State[[]T]{Data: []T{}},
		filter:   filter,
		load:     load,
		fetchErr: fetchErr,
		life:     newLifetime(),
		opts:     newOptions(opts),
	}
}

// Open performs the initial fetch unless auto fetching is disabled.
func (l *List[T, F]) Open(ctx context.Context) State[[]T] {
	if l.opts.autoFetch {
		return l.Fetch(ctx)
	}
	return l.State()
}

// Close marks the view dead. In-flight calls are cancelled and anything that
// still resolves afterwards is dropped.
func (l *List[T, F]) Close() {
	l.life.cancel()
}

func (l *List[T, F]) Closed() bool {
	return !l.life.alive()
}

func (l *List[T, F]) State() State[[]T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshot()
}

func (l *List[T, F]) snapshot() State[[]T] {
	s := l.state
	s.Data = append([]T(nil), l.state.Data...)
	return s
}

func (l *List[T, F]) Filter() F {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.filter
}

// SetFilter swaps the filter. A different value triggers exactly one fetch
// (when auto fetching); an equal one does nothing. It reports whether the
// filter changed.
func (l *List[T, F]) SetFilter(ctx context.Context, filter F) bool {
	l.mu.Lock()
	if reflect.DeepEqual(l.filter, filter) {
		l.mu.Unlock()
		return false
	}
	l.filter = filter
	l.mu.Unlock()

	if l.opts.autoFetch {
		l.Fetch(ctx)
	}
	return true
}

// Fetch reloads the collection with the current filter. Concurrent fetches
// are not coalesced; whichever resolves last wins.
func (l *List[T, F]) Fetch(ctx context.Context) State[[]T] {
	if !l.life.alive() {
		return l.State()
	}

	l.mu.Lock()
	l.state.Loading = true
	l.state.Error = ""
	filter := l.filter
	l.mu.Unlock()
	l.changed()

	reqCtx, done := l.life.bind(ctx)
	items, commit, err := l.load(reqCtx, filter)
	done()

	if !l.life.alive() {
		l.opts.logger.Debug("discarding fetch result of closed view")
		return l.State()
	}

	l.mu.Lock()
	if err != nil {
		l.opts.logger.Warn("fetch failed", "error", err)
		l.state.Error = internal.ErrorMessage(err, l.fetchErr)
	} else {
		if items == nil {
			items = []T{}
		}
		l.state.Data = items
		if commit != nil {
			commit()
		}
	}
	l.state.Loading = false
	s := l.snapshot()
	l.mu.Unlock()
	l.changed()

	return s
}

// Create runs call and merges the entity it returns at the head of the
// collection.
func (l *List[T, F]) Create(ctx context.Context, call func(ctx context.Context) (T, error), failMsg string) Result[T] {
	return l.mutate(ctx, call, failMsg, MergeCreated[T])
}

// Update runs call and replaces the element with the returned entity's id.
func (l *List[T, F]) Update(ctx context.Context, call func(ctx context.Context) (T, error), failMsg string) Result[T] {
	return l.mutate(ctx, call, failMsg, MergeUpdated[T])
}

// Delete runs call and, only on success, drops id from the collection.
func (l *List[T, F]) Delete(ctx context.Context, id string, call func(ctx context.Context) error, failMsg string) Result[string] {
	return mutate(ctx, l.life, l.opts, func(ctx context.Context) (string, error) {
		return id, call(ctx)
	}, failMsg, func(string) {
		l.Apply(func(items []T) []T { return MergeDeleted(items, id) })
	})
}

// Apply runs a pure transformation over the current collection.
func (l *List[T, F]) Apply(fn func([]T) []T) {
	if !l.life.alive() {
		return
	}
	l.mu.Lock()
	l.state.Data = fn(l.state.Data)
	l.mu.Unlock()
	l.changed()
}

func (l *List[T, F]) mutate(ctx context.Context, call func(ctx context.Context) (T, error), failMsg string, merge func([]T, T) []T) Result[T] {
	return mutate(ctx, l.life, l.opts, call, failMsg, func(entity T) {
		l.Apply(func(items []T) []T { return merge(items, entity) })
	})
}

func (l *List[T, F]) changed() {
	if l.opts.onChange != nil {
		l.opts.onChange()
	}
}

// mutate is the shared mutation contract: run call, on success apply, on
// failure report without touching state.
func mutate[R any](ctx context.Context, life lifetime, opts options, call func(ctx context.Context) (R, error), failMsg string, apply func(R)) Result[R] {
	if !life.alive() {
		return Failed[R](ClosedMessage)
	}

	reqCtx, done := life.bind(ctx)
	out, err := call(reqCtx)
	done()

	if !life.alive() {
		opts.logger.Debug("discarding mutation result of closed view")
		return Failed[R](ClosedMessage)
	}
	if err != nil {
		opts.logger.Warn("mutation failed", "error", err)
		return Failed[R](internal.ErrorMessage(err, failMsg))
	}

	apply(out)
	return Ok(out)
}
