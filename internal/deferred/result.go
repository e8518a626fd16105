package deferred

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrAlreadyResolved is returned by Resolve when the result already holds a value.
var ErrAlreadyResolved = errors.New("result already resolved")

// ProtocolError signals a broken resolution invariant. It is raised as a
// panic by MustResolve, since it can only come from a collaborator calling
// back more often than its contract allows.
type ProtocolError struct {
	Err error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("deferred protocol violation: %v", e.Err)
}

func (e *ProtocolError) Unwrap() error { return e.Err }

// Result is a value that becomes available exactly once.
type Result[T any] struct {
	mu        sync.Mutex
	resolved  bool
	value     T
	observers []func(T)
	progress  []func(string)
	done      chan struct{}
}

// New creates an unresolved result.
func New[T any]() *Result[T] {
	return &Result[T]{done: make(chan struct{})}
}

// Resolve stores v and hands it to every registered observer, in
// registration order, on the calling goroutine.
func (r *Result[T]) Resolve(v T) error {
	r.mu.Lock()
	if r.resolved {
		r.mu.Unlock()
		return ErrAlreadyResolved
	}
	r.resolved = true
	r.value = v
	observers := r.observers
	r.observers = nil
	r.progress = nil
	close(r.done)
	r.mu.Unlock()

	for _, fn := range observers {
		fn(v)
	}
	return nil
}

// MustResolve resolves r and panics with a *ProtocolError if r was already resolved.
func (r *Result[T]) MustResolve(v T) {
	if err := r.Resolve(v); err != nil {
		panic(&ProtocolError{Err: err})
	}
}

// Observe registers fn to receive the value. If r is already resolved fn
// runs immediately on the calling goroutine.
func (r *Result[T]) Observe(fn func(T)) {
	r.mu.Lock()
	if !r.resolved {
		r.observers = append(r.observers, fn)
		r.mu.Unlock()
		return
	}
	v := r.value
	r.mu.Unlock()
	fn(v)
}

// Value returns the resolved value, if any.
func (r *Result[T]) Value() (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.value, r.resolved
}

// Resolved reports whether r holds a value.
func (r *Result[T]) Resolved() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resolved
}

// Done is closed once r is resolved.
func (r *Result[T]) Done() <-chan struct{} {
	return r.done
}

// Wait blocks until r is resolved or ctx is done.
func (r *Result[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-r.done:
		v, _ := r.Value()
		return v, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// SetProgress reports an intermediate status message to progress observers.
// It is dropped once r is resolved.
func (r *Result[T]) SetProgress(msg string) {
	r.mu.Lock()
	if r.resolved {
		r.mu.Unlock()
		return
	}
	observers := append([]func(string){}, r.progress...)
	r.mu.Unlock()

	for _, fn := range observers {
		fn(msg)
	}
}

// ObserveProgress registers fn for progress messages sent before resolution.
func (r *Result[T]) ObserveProgress(fn func(string)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.resolved {
		return
	}
	r.progress = append(r.progress, fn)
}
