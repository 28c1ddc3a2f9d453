// Package loader runs one fetch and degrades to a literal dataset when it fails.
package loader

import (
	"context"
	"errors"
	"time"

	"github.com/bobmcallan/sentinel/internal/common"
)

// State is the display state of a loaded section.
type State int

const (
	// StateLoading is the zero value: the fetch has not settled.
	StateLoading State = iota
	StateReady
	StateEmpty
	StateFallback
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateEmpty:
		return "empty"
	case StateFallback:
		return "fallback"
	}
	return "unknown"
}

var errNoFetch = errors.New("no fetch function configured")

// Source describes one fetch-or-fallback section. R is what the fetch
// returns, T is the display item.
type Source[R, T any] struct {
	// Name identifies the section in logs
	Name string

	Fetch func(ctx context.Context) (R, error)

	// Map converts a successful response to display items
	Map func(R) []T

	// Fallback builds the literal dataset shown on failure. It receives the
	// load time so relative timestamps stay relative.
	Fallback func(now time.Time) []T

	// ErrorFlag is the generic error string recorded on failure
	ErrorFlag string

	// Warning is the banner text shown with fallback data
	Warning string
}

// Result is the settled outcome of Load.
type Result[T any] struct {
	State    State
	Items    []T
	Error    string
	Warning  string
	LoadedAt time.Time
}

// Degraded reports whether fallback data is being shown.
func (r Result[T]) Degraded() bool { return r.State == StateFallback }

// Settled reports whether the fetch has completed.
func (r Result[T]) Settled() bool { return r.State != StateLoading }

type options struct {
	logger *common.Logger
	now    func() time.Time
}

// Option configures Load
type Option func(*options)

// WithLogger sets the logger failures are reported to
func WithLogger(logger *common.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithClock overrides time.Now
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// Load calls src.Fetch exactly once. A failure is logged at warn level and
// replaced by the fallback dataset; Load never returns an error.
func Load[R, T any](ctx context.Context, src Source[R, T], opts ...Option) Result[T] {
	o := options{logger: common.NewSilentLogger(), now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	var (
		resp R
		err  = errNoFetch
	)
	if src.Fetch != nil {
		resp, err = src.Fetch(ctx)
	}
	now := o.now()

	if err != nil {
		o.logger.Warn().Str("section", src.Name).Err(err).Msg("Fetch failed, showing fallback data")
		var items []T
		if src.Fallback != nil {
			items = src.Fallback(now)
		}
		return Result[T]{
			State:    StateFallback,
			Items:    items,
			Error:    src.ErrorFlag,
			Warning:  src.Warning,
			LoadedAt: now,
		}
	}

	var items []T
	if src.Map != nil {
		items = src.Map(resp)
	}
	if len(items) == 0 {
		return Result[T]{State: StateEmpty, LoadedAt: now}
	}
	return Result[T]{State: StateReady, Items: items, LoadedAt: now}
}

// Start runs Load in its own goroutine and delivers the result on the
// returned channel, which is closed afterwards. Callers that stop listening
// do not cancel the fetch.
func Start[R, T any](ctx context.Context, src Source[R, T], opts ...Option) <-chan Result[T] {
	ch := make(chan Result[T], 1)
	go func() {
		defer close(ch)
		ch <- Load(ctx, src, opts...)
	}()
	return ch
}

// Items is a Map for fetches that already return display items.
func Items[T any](items []T) []T { return items }
