// Package engine owns the canonical in-memory state of chats and
// messages and implements every mutation over it. One engine exists per
// process, built once at startup and handed to its consumers; mutations
// and reads serialize on a single mutex, so "read current state,
// decide, write, notify" is one non-interruptible unit.
package engine

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"ember-chat/internal/domain"
	"ember-chat/internal/notify"
	"ember-chat/internal/scheduler"
	"ember-chat/internal/storage"
	"ember-chat/pkg/logger"
)

// Identity supplies the acting user for every operation. Permission
// checks (edit, delete) and unread accounting are relative to it.
type Identity interface {
	CurrentUserID() string
}

// StaticIdentity is the trivial Identity: a fixed user id.
type StaticIdentity string

func (s StaticIdentity) CurrentUserID() string { return string(s) }

// Options configures a new Engine. Identity is required; a nil Adapter
// falls back to an in-memory blob store and a nil Logger to a no-op.
type Options struct {
	Identity  Identity
	Adapter   *storage.Adapter
	Logger    *logger.Logger
	Scheduler scheduler.Config
}

type Engine struct {
	mu     sync.Mutex
	closed bool

	chats    []*domain.Chat
	messages map[string][]*domain.Message
	users    map[string]*domain.User
	typing   map[string][]domain.TypingIndicator

	bus      *notify.Bus
	sched    *scheduler.Scheduler
	adapter  *storage.Adapter
	log      *logger.Logger
	identity Identity

	persistCh chan storage.Snapshot
	persistWG sync.WaitGroup
}

// New builds the engine and hydrates it from the last saved snapshot.
// A snapshot that fails to load yields an empty store, never an error.
func New(opts Options) *Engine {
	if opts.Identity == nil {
		panic("engine: Options.Identity is required")
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	adapter := opts.Adapter
	if adapter == nil {
		adapter = storage.NewAdapter(storage.NewMemoryStore(), log)
	}

	e := &Engine{
		messages:  make(map[string][]*domain.Message),
		users:     make(map[string]*domain.User),
		typing:    make(map[string][]domain.TypingIndicator),
		bus:       notify.NewBus(),
		sched:     scheduler.New(opts.Scheduler),
		adapter:   adapter,
		log:       log,
		identity:  opts.Identity,
		persistCh: make(chan storage.Snapshot, 1),
	}
	e.hydrate(adapter.Load(context.Background()))

	e.persistWG.Add(1)
	go e.persistLoop()
	return e
}

func (e *Engine) hydrate(snap storage.Snapshot) {
	for i := range snap.Users {
		u := snap.Users[i]
		e.users[u.ID] = &u
	}
	for i := range snap.Chats {
		c := snap.Chats[i]
		if err := c.Validate(); err != nil {
			e.log.Warn("snapshot_chat_rejected", zap.String("chat_id", c.ID), zap.Error(err))
			continue
		}
		e.chats = append(e.chats, &c)
		for _, m := range snap.Messages[c.ID] {
			msg := m
			e.messages[c.ID] = append(e.messages[c.ID], &msg)
		}
	}
	e.sortChatsLocked()
	if !snap.Empty() {
		e.log.Info("engine_hydrated",
			zap.Int("chats", len(e.chats)),
			zap.Int("users", len(e.users)))
	}
}

func (e *Engine) persistLoop() {
	defer e.persistWG.Done()
	for snap := range e.persistCh {
		// Failure is logged inside the adapter; memory stays the
		// source of truth and the next save reconciles.
		_ = e.adapter.Save(context.Background(), snap)
	}
}

// Close drains the scheduler and the persistence loop. The engine is
// unusable afterwards; in normal operation it lives for the process.
func (e *Engine) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	e.mu.Unlock()

	e.sched.Stop()
	close(e.persistCh)
	e.persistWG.Wait()
}

// snapshotLocked deep-copies the current state for persistence.
func (e *Engine) snapshotLocked() storage.Snapshot {
	snap := storage.Snapshot{
		Messages: make(map[string][]domain.Message, len(e.messages)),
	}
	for _, c := range e.chats {
		snap.Chats = append(snap.Chats, c.Clone())
	}
	for chatID, msgs := range e.messages {
		out := make([]domain.Message, 0, len(msgs))
		for _, m := range msgs {
			out = append(out, m.Clone())
		}
		snap.Messages[chatID] = out
	}
	for _, u := range e.users {
		snap.Users = append(snap.Users, *u)
	}
	return snap
}

// persistLocked hands a snapshot to the background writer. Only the
// latest pending snapshot matters, so an unconsumed one is replaced.
func (e *Engine) persistLocked() {
	if e.closed {
		return
	}
	snap := e.snapshotLocked()
	for {
		select {
		case e.persistCh <- snap:
			return
		default:
		}
		select {
		case <-e.persistCh:
		default:
		}
	}
}

func (e *Engine) findChatLocked(chatID string) *domain.Chat {
	for _, c := range e.chats {
		if c.ID == chatID {
			return c
		}
	}
	return nil
}

func (e *Engine) findMessageLocked(chatID, messageID string) *domain.Message {
	for _, m := range e.messages[chatID] {
		if m.ID == messageID {
			return m
		}
	}
	return nil
}

// sortChatsLocked keeps the chat list in display order: pinned chats
// first, then most recent activity first.
func (e *Engine) sortChatsLocked() {
	sort.SliceStable(e.chats, func(i, j int) bool {
		a, b := e.chats[i], e.chats[j]
		if a.IsPinned != b.IsPinned {
			return a.IsPinned
		}
		return a.LastActivity.After(b.LastActivity)
	})
}

// recomputeUnreadLocked rederives the unread count from the message
// list instead of incrementing, so it can never drift.
func (e *Engine) recomputeUnreadLocked(c *domain.Chat) {
	self := e.identity.CurrentUserID()
	n := 0
	for _, m := range e.messages[c.ID] {
		if m.IsDeleted || m.SenderID == self {
			continue
		}
		if m.Status != domain.StatusRead {
			n++
		}
	}
	c.UnreadCount = n
}

// refreshLastMessageLocked re-points the chat's cached last message at
// the most recent non-deleted message, or clears it if none remain.
// LastActivity follows that message's timestamp.
func (e *Engine) refreshLastMessageLocked(c *domain.Chat) {
	msgs := e.messages[c.ID]
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].IsDeleted {
			continue
		}
		lm := msgs[i].Clone()
		c.LastMessage = &lm
		c.LastActivity = lm.CreatedAt
		return
	}
	c.LastMessage = nil
}

func (e *Engine) chatListLocked() []domain.Chat {
	out := make([]domain.Chat, 0, len(e.chats))
	for _, c := range e.chats {
		out = append(out, c.Clone())
	}
	return out
}

func (e *Engine) messageListLocked(chatID string) []domain.Message {
	msgs := e.messages[chatID]
	out := make([]domain.Message, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, m.Clone())
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (e *Engine) typingListLocked(chatID string) []domain.TypingIndicator {
	return append([]domain.TypingIndicator(nil), e.typing[chatID]...)
}

func (e *Engine) publishChatsLocked() {
	e.bus.PublishChats(e.chatListLocked())
}

func (e *Engine) publishMessagesLocked(chatID string) {
	e.bus.PublishMessages(chatID, e.messageListLocked(chatID))
}

func (e *Engine) publishTypingLocked(chatID string) {
	e.bus.PublishTyping(chatID, e.typingListLocked(chatID))
}

func (e *Engine) now() time.Time {
	return time.Now()
}
