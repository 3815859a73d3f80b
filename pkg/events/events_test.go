package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmitOrder(t *testing.T) {
	e := NewEmitter[int]()
	var got []string
	e.Subscribe(func(v int) { got = append(got, "a") })
	e.Subscribe(func(v int) { got = append(got, "b") })
	e.Subscribe(func(v int) { got = append(got, "c") })

	e.Emit(1)
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestUnsubscribeIdempotent(t *testing.T) {
	e := NewEmitter[int]()
	calls := 0
	unsub := e.Subscribe(func(v int) { calls++ })
	unsub()
	unsub()
	e.Emit(1)
	assert.Zero(t, calls)
	assert.Zero(t, e.Len())
}

func TestUnsubscribeDuringDispatchSkipsLaterHandler(t *testing.T) {
	e := NewEmitter[int]()
	var unsubB func()
	aCalls, bCalls := 0, 0
	e.Subscribe(func(v int) {
		aCalls++
		unsubB()
	})
	unsubB = e.Subscribe(func(v int) { bCalls++ })

	e.Emit(1)
	assert.Equal(t, 1, aCalls)
	assert.Zero(t, bCalls, "handler removed mid-dispatch must not run")

	e.Emit(2)
	assert.Equal(t, 2, aCalls)
	assert.Zero(t, bCalls)
}

func TestSubscribeDuringDispatchExcluded(t *testing.T) {
	e := NewEmitter[int]()
	lateCalls := 0
	e.Subscribe(func(v int) {
		e.Subscribe(func(v int) { lateCalls++ })
	})

	e.Emit(1)
	assert.Zero(t, lateCalls, "handler added mid-dispatch must not see the in-flight value")

	e.Emit(2)
	assert.Equal(t, 1, lateCalls)
}
