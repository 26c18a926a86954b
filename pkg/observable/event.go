package observable

import "sync"

// Event is a single-slot, single-consumer notification. A sent event is
// handed to exactly one consumer, either the registered observer or a Take
// call, and is never redelivered. An unconsumed event is replaced by a
// newer one.
type Event[T any] struct {
	mu       sync.Mutex
	pending  *T
	observer func(T)
	// generation identifies the current observer registration.
	generation int
}

func NewEvent[T any]() *Event[T] {
	return &Event[T]{}
}

func (e *Event[T]) Send(value T) {
	e.mu.Lock()
	observer := e.observer
	if observer == nil {
		e.pending = &value
		e.mu.Unlock()
		return
	}
	e.pending = nil
	e.mu.Unlock()

	observer(value)
}

// Observe registers fn as the only observer, replacing any previous one.
// A pending event is delivered to fn immediately.
func (e *Event[T]) Observe(fn func(T)) (cancel func()) {
	e.mu.Lock()
	e.generation++
	generation := e.generation
	e.observer = fn
	pending := e.pending
	e.pending = nil
	e.mu.Unlock()

	if pending != nil {
		fn(*pending)
	}

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if e.generation == generation {
			e.observer = nil
		}
	}
}

// Take consumes the pending event, if any.
func (e *Event[T]) Take() (T, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.pending == nil {
		var zero T
		return zero, false
	}
	value := *e.pending
	e.pending = nil
	return value, true
}

// Source is the consumer side of an Event.
type Source[T any] interface {
	Observe(fn func(T)) (cancel func())
	Take() (T, bool)
}

var _ Source[int] = (*Event[int])(nil)
