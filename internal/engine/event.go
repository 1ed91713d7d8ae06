package engine

// ListenerHandle identifies a registered listener so it can be removed later.
// The zero handle is never issued.
type ListenerHandle uint64

type listenerEntry[F any] struct {
	handle ListenerHandle
	fn     F
}

// Event is a multi-cast event. Listeners run in registration order.
type Event struct {
	listeners []listenerEntry[func()]
	next      ListenerHandle
}

// AddListener adds a callback to be invoked when the event fires.
// A nil callback is ignored and yields the zero handle.
func (e *Event) AddListener(callback func()) ListenerHandle {
	if callback == nil {
		return 0
	}
	e.next++
	e.listeners = append(e.listeners, listenerEntry[func()]{handle: e.next, fn: callback})
	return e.next
}

// RemoveListener removes the listener registered under h.
func (e *Event) RemoveListener(h ListenerHandle) bool {
	for i, l := range e.listeners {
		if l.handle == h {
			e.listeners = append(e.listeners[:i:i], e.listeners[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveAllListeners clears all listeners
func (e *Event) RemoveAllListeners() {
	e.listeners = nil
}

// Invoke calls all registered listeners. Listeners added or removed during
// the broadcast take effect on the next one.
func (e *Event) Invoke() {
	for _, l := range e.snapshot() {
		l.fn()
	}
}

func (e *Event) snapshot() []listenerEntry[func()] {
	return append([]listenerEntry[func()](nil), e.listeners...)
}

// GetListenerCount returns the number of registered listeners
func (e *Event) GetListenerCount() int {
	return len(e.listeners)
}

// EventWithArg is a generic event with one argument
type EventWithArg[T any] struct {
	listeners []listenerEntry[func(T)]
	next      ListenerHandle
}

func (e *EventWithArg[T]) AddListener(callback func(T)) ListenerHandle {
	if callback == nil {
		return 0
	}
	e.next++
	e.listeners = append(e.listeners, listenerEntry[func(T)]{handle: e.next, fn: callback})
	return e.next
}

func (e *EventWithArg[T]) RemoveListener(h ListenerHandle) bool {
	for i, l := range e.listeners {
		if l.handle == h {
			e.listeners = append(e.listeners[:i:i], e.listeners[i+1:]...)
			return true
		}
	}
	return false
}

func (e *EventWithArg[T]) RemoveAllListeners() {
	e.listeners = nil
}

func (e *EventWithArg[T]) Invoke(arg T) {
	for _, l := range append([]listenerEntry[func(T)](nil), e.listeners...) {
		l.fn(arg)
	}
}

func (e *EventWithArg[T]) GetListenerCount() int {
	return len(e.listeners)
}
