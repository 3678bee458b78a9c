// Package state holds the view-side engines shared by every resource: a
// collection controller, an aggregate controller and the pure merge
// functions they apply to server-confirmed mutations.
package state

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/project-console/pkg/logger"
)

// ClosedMessage is reported by mutations that resolve after Close.
const ClosedMessage = "view closed"

type Entity interface {
	GetID() string
}

type State[D any] struct {
	Data    D      `json:"data"`
	Loading bool   `json:"loading"`
	Error   string `json:"error,omitempty"`
}

// Result is what every mutation hands back instead of an error.
type Result[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func Ok[T any](data T) Result[T] {
	return Result[T]{Success: true, Data: data}
}

func Failed[T any](message string) Result[T] {
	return Result[T]{Error: message}
}

// Value adapts a service call returning a pointer to the value form the
// engines store.
func Value[T any](p *T, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	if p == nil {
		return zero, nil
	}
	return *p, nil
}

type options struct {
	autoFetch bool
	onChange  func()
	logger    *slog.Logger
}

type Option func(*options)

// WithAutoFetch controls whether Open and filter changes fetch on their own.
// Defaults to true.
func WithAutoFetch(enabled bool) Option {
	return func(o *options) {
		o.autoFetch = enabled
	}
}

// WithOnChange registers a listener run after every state transition.
func WithOnChange(fn func()) Option {
	return func(o *options) {
		o.onChange = fn
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func newOptions(opts []Option) options {
	o := options{autoFetch: true}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logger.LoggerWrapper()
	}
	return o
}

// lifetime is the liveness token of one view instance.
type lifetime struct {
	ctx    context.Context
	cancel context.CancelFunc
}

func newLifetime() lifetime {
	ctx, cancel := context.WithCancel(context.Background())
	return lifetime{ctx: ctx, cancel: cancel}
}

func (l lifetime) alive() bool {
	return l.ctx.Err() == nil
}

// bind derives a request context that is also cancelled when the view closes.
func (l lifetime) bind(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(l.ctx, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}
