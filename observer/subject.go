// Package observer implements a minimal synchronous subject/observer
// registry with per-observer failure isolation.
package observer

import (
	"context"
	"log/slog"
	"reflect"
	"sync"
)

// Observer receives values published by a Subject. Returned errors are
// logged by the subject and never propagate to the notifying caller.
type Observer[T any] interface {
	Update(ctx context.Context, value T) error
}

// Func adapts a plain function to the Observer interface.
type Func[T any] func(ctx context.Context, value T) error

// Update implements Observer.
func (f Func[T]) Update(ctx context.Context, value T) error {
	return f(ctx, value)
}

// Subject broadcasts values to its registered observers in registration
// order. Dispatch is synchronous, but each observer invocation is isolated:
// an observer that errors or panics is logged and skipped, and never
// prevents subsequent observers from running.
type Subject[T any] struct {
	mu        sync.Mutex
	observers []Observer[T]
	logger    *slog.Logger
}

// NewSubject creates a subject with its initial observers already
// registered.
func NewSubject[T any](logger *slog.Logger, observers ...Observer[T]) *Subject[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Subject[T]{
		observers: append([]Observer[T](nil), observers...),
		logger:    logger,
	}
}

// Add registers an observer at the end of the dispatch order.
func (s *Subject[T]) Add(o Observer[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

// Remove unregisters an observer. Removing an observer that was never
// registered is a no-op. Observers are matched by interface equality, so
// implementations that need to be removable must be comparable (pointer
// receivers are). Uncomparable implementations such as Func never match
// and stay registered.
func (s *Subject[T]) Remove(o Observer[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.observers {
		if sameObserver(existing, o) {
			s.observers = append(s.observers[:i], s.observers[i+1:]...)
			return
		}
	}
}

// sameObserver compares two observers by interface equality, treating
// uncomparable dynamic types (funcs, slices, maps) as never equal instead
// of letting the == panic.
func sameObserver[T any](a, b Observer[T]) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta == nil || tb == nil {
		return ta == tb
	}
	if !ta.Comparable() || !tb.Comparable() {
		return false
	}
	return a == b
}

// Notify dispatches value to every registered observer in order. It never
// returns an error and never panics: observer failures degrade to log
// lines, not to failed reads.
func (s *Subject[T]) Notify(ctx context.Context, value T) {
	s.mu.Lock()
	observers := append([]Observer[T](nil), s.observers...)
	s.mu.Unlock()

	for _, o := range observers {
		s.notifyOne(ctx, o, value)
	}
}

func (s *Subject[T]) notifyOne(ctx context.Context, o Observer[T], value T) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("observer panicked", "panic", r)
		}
	}()

	if err := o.Update(ctx, value); err != nil {
		s.logger.Error("observer failed", "error", err)
	}
}
