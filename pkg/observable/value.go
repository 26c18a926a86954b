// Package observable provides the reactive containers a screen publishes its
// state through: Value replays its current value to new observers, Event
// delivers each notification at most once.
package observable

import "sync"

// Value holds a current value and broadcasts every update to its observers.
type Value[T any] struct {
	mu        sync.RWMutex
	value     T
	nextID    int
	observers []observer[T]
}

type observer[T any] struct {
	id int
	fn func(T)
}

func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{value: initial}
}

func (v *Value[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.value
}

// Set stores value and notifies observers outside the lock.
func (v *Value[T]) Set(value T) {
	v.mu.Lock()
	v.value = value
	observers := v.snapshot()
	v.mu.Unlock()

	for _, fn := range observers {
		fn(value)
	}
}

// Observe calls fn with the current value right away and on every Set
// until the returned func is called.
func (v *Value[T]) Observe(fn func(T)) (cancel func()) {
	v.mu.Lock()
	id := v.nextID
	v.nextID++
	v.observers = append(v.observers, observer[T]{id: id, fn: fn})
	current := v.value
	v.mu.Unlock()

	fn(current)

	var once sync.Once
	return func() {
		once.Do(func() {
			v.mu.Lock()
			v.remove(id)
			v.mu.Unlock()
		})
	}
}

// snapshot returns the observers in registration order.
func (v *Value[T]) snapshot() []func(T) {
	observers := make([]func(T), len(v.observers))
	for i, o := range v.observers {
		observers[i] = o.fn
	}
	return observers
}

func (v *Value[T]) remove(id int) {
	for i, o := range v.observers {
		if o.id == id {
			v.observers = append(v.observers[:i:i], v.observers[i+1:]...)
			return
		}
	}
}

// Readable is the read side of a Value handed to presentation code.
type Readable[T any] interface {
	Get() T
	Observe(fn func(T)) (cancel func())
}

var _ Readable[int] = (*Value[int])(nil)
