// Package scheduler owns every time-delayed effect of the engine: the
// simulated delivery progression of outgoing messages and the expiry of
// typing indicators. The timers are a stand-in for real transport
// acknowledgements; swapping them out must not touch engine logic.
package scheduler

import (
	"sync"
	"time"

	"ember-chat/internal/domain"
)

// Config carries the delays. Tests shorten them.
type Config struct {
	SentDelay      time.Duration
	DeliveredDelay time.Duration
	TypingTTL      time.Duration
}

// DefaultConfig mirrors the observable timing of the simulated network:
// sent after ~300ms, delivered ~500ms later, typing expires after ~3s.
func DefaultConfig() Config {
	return Config{
		SentDelay:      300 * time.Millisecond,
		DeliveredDelay: 500 * time.Millisecond,
		TypingTTL:      3 * time.Second,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.SentDelay <= 0 {
		c.SentDelay = d.SentDelay
	}
	if c.DeliveredDelay <= 0 {
		c.DeliveredDelay = d.DeliveredDelay
	}
	if c.TypingTTL <= 0 {
		c.TypingTTL = d.TypingTTL
	}
	return c
}

// Scheduler tracks its outstanding timers so Stop can drain them.
type Scheduler struct {
	cfg Config

	mu       sync.Mutex
	stopped  bool
	typing   map[string]*time.Timer
	delivery map[*time.Timer]struct{}
}

func New(cfg Config) *Scheduler {
	return &Scheduler{
		cfg:      cfg.withDefaults(),
		typing:   make(map[string]*time.Timer),
		delivery: make(map[*time.Timer]struct{}),
	}
}

func typingKey(chatID, userID string) string {
	return chatID + "\x00" + userID
}

func (s *Scheduler) after(d time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	var t *time.Timer
	t = time.AfterFunc(d, func() {
		s.mu.Lock()
		delete(s.delivery, t)
		stopped := s.stopped
		s.mu.Unlock()
		if !stopped {
			fn()
		}
	})
	s.delivery[t] = struct{}{}
}

// ScheduleDelivery drives advance through SENT and then DELIVERED.
// advance owns the monotonic-status check; a message already read or
// failed simply ignores the late hop.
func (s *Scheduler) ScheduleDelivery(advance func(domain.MessageStatus)) {
	s.after(s.cfg.SentDelay, func() {
		advance(domain.StatusSent)
		s.after(s.cfg.DeliveredDelay, func() {
			advance(domain.StatusDelivered)
		})
	})
}

// ResetTypingExpiry (re)starts the single-shot expiry timer for
// (chatID, userID). A repeat call resets the countdown instead of
// stacking a second timer.
func (s *Scheduler) ResetTypingExpiry(chatID, userID string, expire func()) {
	key := typingKey(chatID, userID)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	if t, ok := s.typing[key]; ok {
		t.Stop()
	}
	s.typing[key] = time.AfterFunc(s.cfg.TypingTTL, func() {
		s.mu.Lock()
		delete(s.typing, key)
		stopped := s.stopped
		s.mu.Unlock()
		if !stopped {
			expire()
		}
	})
}

// CancelTypingExpiry stops the expiry timer for (chatID, userID) and
// reports whether one was pending.
func (s *Scheduler) CancelTypingExpiry(chatID, userID string) bool {
	key := typingKey(chatID, userID)
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.typing[key]
	if !ok {
		return false
	}
	delete(s.typing, key)
	t.Stop()
	return true
}

// Stop drains all outstanding timers. Callbacks that already fired may
// still be running; they observe stopped and become no-ops.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	for key, t := range s.typing {
		t.Stop()
		delete(s.typing, key)
	}
	for t := range s.delivery {
		t.Stop()
		delete(s.delivery, t)
	}
}
