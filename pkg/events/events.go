// Package events provides a small typed publish/subscribe primitive: an
// ordered list of handlers for values of one type, with unsubscribe
// functions that are safe to call at any point, including from inside a
// handler while a dispatch is in flight.
package events

import "sync"

type handler[T any] struct {
	fn     func(T)
	active bool
}

// Emitter fans a value out to every subscribed handler, in subscription
// order, on the goroutine that calls Emit.
type Emitter[T any] struct {
	mu       sync.Mutex
	handlers []*handler[T]
}

func NewEmitter[T any]() *Emitter[T] {
	return &Emitter[T]{}
}

// Subscribe registers fn and returns its unsubscribe function. The
// returned function is idempotent. A handler subscribed during a
// dispatch does not receive the in-flight value.
func (e *Emitter[T]) Subscribe(fn func(T)) func() {
	h := &handler[T]{fn: fn, active: true}
	e.mu.Lock()
	e.handlers = append(e.handlers, h)
	e.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Lock()
			h.active = false
			for i, cur := range e.handlers {
				if cur == h {
					e.handlers = append(e.handlers[:i], e.handlers[i+1:]...)
					break
				}
			}
			e.mu.Unlock()
		})
	}
}

// Emit delivers v to the handlers subscribed at the time of the call.
// Handlers unsubscribed mid-dispatch are skipped even if they appear in
// the snapshot taken at the start.
func (e *Emitter[T]) Emit(v T) {
	e.mu.Lock()
	snapshot := make([]*handler[T], len(e.handlers))
	copy(snapshot, e.handlers)
	e.mu.Unlock()

	for _, h := range snapshot {
		e.mu.Lock()
		active := h.active
		e.mu.Unlock()
		if active {
			h.fn(v)
		}
	}
}

// Len reports the number of live subscriptions.
func (e *Emitter[T]) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.handlers)
}
