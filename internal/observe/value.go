// Package observe provides a small observable value holder. It carries the
// widget-facing state of the tour engine without tying the core packages to
// any particular UI framework: hosts subscribe render logic to a Value and
// flip it to drive the engine.
package observe

// Value holds a single comparable value and notifies subscribers
// synchronously whenever it changes.
//
// Value is not safe for concurrent use. It is meant to live on a UI event
// loop: listeners run inline inside Set, and a listener may call Set on
// other holders (nested notifications complete before the outer Set
// returns).
type Value[T comparable] struct {
	current   T
	closed    bool
	nextToken int
	order     []int
	listeners map[int]func(old, next T)
}

// New returns a Value holding initial.
func New[T comparable](initial T) *Value[T] {
	return &Value[T]{
		current:   initial,
		listeners: make(map[int]func(old, next T)),
	}
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	return v.current
}

// Set stores next and notifies subscribers in subscription order before
// returning. Setting the current value again is a no-op, as is setting a
// closed Value.
func (v *Value[T]) Set(next T) {
	if v.closed || next == v.current {
		return
	}
	old := v.current
	v.current = next

	// Snapshot the order so subscribe/unsubscribe from inside a listener
	// cannot affect the in-flight pass.
	tokens := make([]int, len(v.order))
	copy(tokens, v.order)
	for _, tok := range tokens {
		if fn, ok := v.listeners[tok]; ok {
			fn(old, next)
		}
	}
}

// Subscribe registers fn to run on every change and returns a token for
// Unsubscribe. A nil fn or a closed Value yields an inert token.
func (v *Value[T]) Subscribe(fn func(old, next T)) int {
	if v.closed || fn == nil {
		return -1
	}
	tok := v.nextToken
	v.nextToken++
	v.listeners[tok] = fn
	v.order = append(v.order, tok)
	return tok
}

// Unsubscribe removes the subscription for token. Unknown tokens are
// ignored.
func (v *Value[T]) Unsubscribe(token int) {
	if _, ok := v.listeners[token]; !ok {
		return
	}
	delete(v.listeners, token)
	for i, tok := range v.order {
		if tok == token {
			v.order = append(v.order[:i], v.order[i+1:]...)
			break
		}
	}
}

// Close drops every subscription and freezes the value: Get keeps
// returning the last value, Set becomes a no-op. Close is idempotent.
func (v *Value[T]) Close() {
	if v.closed {
		return
	}
	v.closed = true
	v.listeners = nil
	v.order = nil
}

// Closed reports whether Close has been called.
func (v *Value[T]) Closed() bool {
	return v.closed
}
