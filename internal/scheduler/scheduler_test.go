package scheduler

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ember-chat/internal/domain"
)

func newTestScheduler(t *testing.T) *Scheduler {
	t.Helper()
	s := New(Config{
		SentDelay:      20 * time.Millisecond,
		DeliveredDelay: 30 * time.Millisecond,
		TypingTTL:      50 * time.Millisecond,
	})
	t.Cleanup(s.Stop)
	return s
}

func TestDeliveryChainOrder(t *testing.T) {
	s := newTestScheduler(t)
	ch := make(chan domain.MessageStatus, 2)
	s.ScheduleDelivery(func(st domain.MessageStatus) { ch <- st })

	select {
	case st := <-ch:
		assert.Equal(t, domain.StatusSent, st)
	case <-time.After(time.Second):
		t.Fatal("sent hop never fired")
	}
	select {
	case st := <-ch:
		assert.Equal(t, domain.StatusDelivered, st)
	case <-time.After(time.Second):
		t.Fatal("delivered hop never fired")
	}
}

func TestTypingRefreshResetsInsteadOfStacking(t *testing.T) {
	s := newTestScheduler(t)
	var fired atomic.Int32
	expire := func() { fired.Add(1) }

	s.ResetTypingExpiry("c1", "u1", expire)
	time.Sleep(30 * time.Millisecond)
	s.ResetTypingExpiry("c1", "u1", expire)

	// The original timer would have fired by now; the refresh replaced it.
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())

	require.Eventually(t, func() bool { return fired.Load() == 1 },
		time.Second, 5*time.Millisecond)

	// And only once: the stacked-timer bug would fire twice.
	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load())
}

func TestCancelTypingExpiry(t *testing.T) {
	s := newTestScheduler(t)
	var fired atomic.Int32
	s.ResetTypingExpiry("c1", "u1", func() { fired.Add(1) })

	assert.True(t, s.CancelTypingExpiry("c1", "u1"))
	assert.False(t, s.CancelTypingExpiry("c1", "u1"), "second cancel reports nothing pending")

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())
}

func TestStopSilencesTimers(t *testing.T) {
	s := New(Config{
		SentDelay:      10 * time.Millisecond,
		DeliveredDelay: 10 * time.Millisecond,
		TypingTTL:      10 * time.Millisecond,
	})
	var fired atomic.Int32
	s.ScheduleDelivery(func(domain.MessageStatus) { fired.Add(1) })
	s.ResetTypingExpiry("c1", "u1", func() { fired.Add(1) })
	s.Stop()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())
}
