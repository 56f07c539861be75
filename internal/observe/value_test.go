package observe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueGetSet(t *testing.T) {
	t.Run("returns the initial value", func(t *testing.T) {
		v := New(false)
		assert.False(t, v.Get())

		s := New("hello")
		assert.Equal(t, "hello", s.Get())
	})

	t.Run("set updates the current value", func(t *testing.T) {
		v := New(false)
		v.Set(true)
		assert.True(t, v.Get())
	})

	t.Run("set notifies with old and new values", func(t *testing.T) {
		v := New(1)
		var gotOld, gotNext int
		v.Subscribe(func(old, next int) {
			gotOld = old
			gotNext = next
		})

		v.Set(5)
		assert.Equal(t, 1, gotOld)
		assert.Equal(t, 5, gotNext)
	})

	t.Run("setting the same value does not notify", func(t *testing.T) {
		v := New(true)
		calls := 0
		v.Subscribe(func(old, next bool) { calls++ })

		v.Set(true)
		assert.Equal(t, 0, calls)

		v.Set(false)
		assert.Equal(t, 1, calls)
	})
}

func TestValueSubscribe(t *testing.T) {
	t.Run("notifies subscribers in subscription order", func(t *testing.T) {
		v := New(0)
		var order []string
		v.Subscribe(func(_, _ int) { order = append(order, "first") })
		v.Subscribe(func(_, _ int) { order = append(order, "second") })
		v.Subscribe(func(_, _ int) { order = append(order, "third") })

		v.Set(1)
		assert.Equal(t, []string{"first", "second", "third"}, order)
	})

	t.Run("unsubscribe stops notifications", func(t *testing.T) {
		v := New(0)
		calls := 0
		tok := v.Subscribe(func(_, _ int) { calls++ })

		v.Set(1)
		v.Unsubscribe(tok)
		v.Set(2)
		assert.Equal(t, 1, calls)
	})

	t.Run("unknown token is ignored", func(t *testing.T) {
		v := New(0)
		v.Unsubscribe(99)
		v.Unsubscribe(-1)
	})

	t.Run("nil listener yields an inert token", func(t *testing.T) {
		v := New(0)
		tok := v.Subscribe(nil)
		assert.Equal(t, -1, tok)
		v.Set(1)
	})

	t.Run("subscribing inside a listener does not join the current pass", func(t *testing.T) {
		v := New(0)
		lateCalls := 0
		v.Subscribe(func(_, _ int) {
			v.Subscribe(func(_, _ int) { lateCalls++ })
		})

		v.Set(1)
		assert.Equal(t, 0, lateCalls)

		v.Set(2)
		assert.Equal(t, 1, lateCalls)
	})

	t.Run("unsubscribing a later listener inside an earlier one skips it", func(t *testing.T) {
		v := New(0)
		secondCalls := 0
		var secondTok int
		v.Subscribe(func(_, _ int) { v.Unsubscribe(secondTok) })
		secondTok = v.Subscribe(func(_, _ int) { secondCalls++ })

		v.Set(1)
		assert.Equal(t, 0, secondCalls)
	})
}

func TestValueReentrancy(t *testing.T) {
	t.Run("nested set on another holder completes before the outer set returns", func(t *testing.T) {
		a := New(true)
		b := New(false)

		var events []string
		a.Subscribe(func(_, next bool) {
			events = append(events, "a->false")
			b.Set(true)
			events = append(events, "a listener done")
		})
		b.Subscribe(func(_, next bool) {
			events = append(events, "b->true")
		})

		a.Set(false)
		assert.Equal(t, []string{"a->false", "b->true", "a listener done"}, events)
	})
}

func TestValueClose(t *testing.T) {
	t.Run("close freezes the value and drops listeners", func(t *testing.T) {
		v := New(true)
		calls := 0
		v.Subscribe(func(_, _ bool) { calls++ })

		v.Close()
		assert.True(t, v.Closed())

		v.Set(false)
		assert.True(t, v.Get())
		assert.Equal(t, 0, calls)
	})

	t.Run("close is idempotent", func(t *testing.T) {
		v := New(1)
		v.Close()
		v.Close()
		assert.True(t, v.Closed())
	})

	t.Run("subscribe after close is inert", func(t *testing.T) {
		v := New(1)
		v.Close()
		tok := v.Subscribe(func(_, _ int) {})
		assert.Equal(t, -1, tok)
	})

	t.Run("close inside a listener stops the remaining pass", func(t *testing.T) {
		v := New(0)
		laterCalls := 0
		v.Subscribe(func(_, _ int) { v.Close() })
		v.Subscribe(func(_, _ int) { laterCalls++ })

		v.Set(1)
		assert.Equal(t, 0, laterCalls)
	})
}
