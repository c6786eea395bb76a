// Package portal holds the front-end state machines of the portal: list and
// form screens, the session gate and role dashboards. It performs no I/O of
// its own; loaders and submitters are injected, typically as pkg/client calls.
package portal

import (
	"context"
	"errors"
	"sync"
)

var (
	// ErrStale is returned by Load when a newer Load superseded it.
	ErrStale = errors.New("portal: response superseded by a newer load")
	// ErrClosed is returned once the view is closed.
	ErrClosed = errors.New("portal: view closed")
	// ErrDeclined is returned by Delete when the confirmation was refused.
	ErrDeclined = errors.New("portal: delete not confirmed")
)

// LoadState is the list lifecycle state.
type LoadState int

const (
	Idle LoadState = iota
	Loading
	Loaded
	LoadError
)

func (s LoadState) String() string {
	switch s {
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case LoadError:
		return "load_error"
	default:
		return "idle"
	}
}

// FeedbackKind classifies a user-facing message.
type FeedbackKind string

const (
	FeedbackSuccess FeedbackKind = "success"
	FeedbackError   FeedbackKind = "error"
)

// Feedback is the last message a screen shows.
type Feedback struct {
	Kind    FeedbackKind
	Message string
}

func success(msg string) *Feedback { return &Feedback{Kind: FeedbackSuccess, Message: msg} }

func failure(err error) *Feedback { return &Feedback{Kind: FeedbackError, Message: err.Error()} }

// Loader fetches the rows of a list screen.
type Loader[T any] func(ctx context.Context) ([]T, error)

// Confirm asks the user a yes/no question.
type Confirm func(prompt string) bool

// ListView is one list screen. Every Load takes a fresh generation and only the
// latest generation may write rows; on error the previous rows stay visible.
type ListView[T any] struct {
	mu       sync.Mutex
	load     Loader[T]
	state    LoadState
	rows     []T
	err      error
	gen      uint64
	loaded   bool
	closed   bool
	feedback *Feedback
}

// NewListView builds an Idle list over load.
func NewListView[T any](load Loader[T]) *ListView[T] {
	return &ListView[T]{load: load}
}

func (v *ListView[T]) begin() (uint64, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return 0, ErrClosed
	}
	v.gen++
	v.state = Loading
	return v.gen, nil
}

// Load fetches rows. A response that arrives after a newer Load started, or
// after Close, is discarded and ErrStale or ErrClosed is returned.
func (v *ListView[T]) Load(ctx context.Context) error {
	gen, err := v.begin()
	if err != nil {
		return err
	}

	rows, loadErr := v.load(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return ErrClosed
	}
	if gen != v.gen {
		return ErrStale
	}
	if loadErr != nil {
		v.state = LoadError
		v.err = loadErr
		v.feedback = failure(loadErr)
		if !v.loaded {
			v.rows = nil
		}
		return loadErr
	}
	if rows == nil {
		rows = []T{}
	}
	v.rows = rows
	v.err = nil
	v.loaded = true
	v.state = Loaded
	return nil
}

// Delete asks confirm and, on yes, calls del and reloads. A failed delete keeps
// the rows and records the error.
func (v *ListView[T]) Delete(ctx context.Context, confirm Confirm, prompt string, del func(ctx context.Context) error) error {
	if confirm != nil && !confirm(prompt) {
		return ErrDeclined
	}
	if err := del(ctx); err != nil {
		v.mu.Lock()
		v.feedback = failure(err)
		v.mu.Unlock()
		return err
	}
	v.SetFeedback(success("deleted"))
	return v.Load(ctx)
}

// Close marks the view dead; late responses are dropped.
func (v *ListView[T]) Close() {
	v.mu.Lock()
	v.closed = true
	v.mu.Unlock()
}

// Closed reports whether Close was called.
func (v *ListView[T]) Closed() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.closed
}

// State returns the lifecycle state.
func (v *ListView[T]) State() LoadState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Rows returns a copy of the visible rows, nil until a load has succeeded.
func (v *ListView[T]) Rows() []T {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.rows == nil {
		return nil
	}
	out := make([]T, len(v.rows))
	copy(out, v.rows)
	return out
}

// Err returns the last load error, nil after a successful load.
func (v *ListView[T]) Err() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.err
}

// Generation returns the number of loads started so far.
func (v *ListView[T]) Generation() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.gen
}

// Feedback returns the current message, if any.
func (v *ListView[T]) Feedback() *Feedback {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.feedback
}

// SetFeedback replaces the current message.
func (v *ListView[T]) SetFeedback(f *Feedback) {
	v.mu.Lock()
	v.feedback = f
	v.mu.Unlock()
}
