// Package hook implements the platform's extension points as explicit,
// ordered lists of registered callbacks.
//
// Two shapes exist: a Filter passes a value through every registered
// callback in registration order and returns the final value; an Event
// notifies every registered callback of a payload and consumes no return
// value. Both are safe for concurrent registration, though the platform
// contract is that all registration happens during startup, before the
// configuration is first computed.
package hook

import (
	"sync"

	"github.com/humanmade/platform-core/src/logger"
)

var log = logger.New("hook")

// Filter is a named extension point whose callbacks each receive the
// current value and return a (possibly modified) replacement.
type Filter[T any] struct {
	name string

	mu  sync.RWMutex
	fns []func(T) T
}

// NewFilter creates a Filter with the given name. The name is only used
// for logging and debugging; uniqueness is not enforced.
func NewFilter[T any](name string) *Filter[T] {
	return &Filter[T]{name: name}
}

// Name returns the extension point name.
func (f *Filter[T]) Name() string { return f.name }

// Add appends a callback. Callbacks run in registration order.
func (f *Filter[T]) Add(fn func(T) T) {
	if fn == nil {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fns = append(f.fns, fn)
	log.Debug().Str("hook", f.name).Int("callbacks", len(f.fns)).Msg("filter callback registered")
}

// Apply threads v through every registered callback and returns the result.
// With no callbacks registered, v is returned unchanged.
func (f *Filter[T]) Apply(v T) T {
	f.mu.RLock()
	fns := make([]func(T) T, len(f.fns))
	copy(fns, f.fns)
	f.mu.RUnlock()

	for _, fn := range fns {
		v = fn(v)
	}
	return v
}

// Len reports the number of registered callbacks.
func (f *Filter[T]) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.fns)
}

// Event is a named extension point whose callbacks are notified with a
// payload. Return values are not consumed; events are side-effect only.
type Event[T any] struct {
	name string

	mu  sync.RWMutex
	fns []func(T)
}

// NewEvent creates an Event with the given name.
func NewEvent[T any](name string) *Event[T] {
	return &Event[T]{name: name}
}

// Name returns the extension point name.
func (e *Event[T]) Name() string { return e.name }

// Add appends a callback. Callbacks run in registration order.
func (e *Event[T]) Add(fn func(T)) {
	if fn == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.fns = append(e.fns, fn)
}

// Emit notifies every registered callback with payload, in order.
func (e *Event[T]) Emit(payload T) {
	e.mu.RLock()
	fns := make([]func(T), len(e.fns))
	copy(fns, e.fns)
	e.mu.RUnlock()

	for _, fn := range fns {
		fn(payload)
	}
}

// Len reports the number of registered callbacks.
func (e *Event[T]) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.fns)
}
