// Package notify fans engine state changes out to subscribers. Three
// independent families: the chat list, per-chat message lists, and
// per-chat typing indicators. Delivery is synchronous, in subscription
// order, on whichever goroutine applied the change.
package notify

import (
	"sync"

	"ember-chat/internal/domain"
	"ember-chat/pkg/events"
)

type Bus struct {
	chats *events.Emitter[[]domain.Chat]

	mu       sync.Mutex
	messages map[string]*events.Emitter[[]domain.Message]
	typing   map[string]*events.Emitter[[]domain.TypingIndicator]
}

func NewBus() *Bus {
	return &Bus{
		chats:    events.NewEmitter[[]domain.Chat](),
		messages: make(map[string]*events.Emitter[[]domain.Message]),
		typing:   make(map[string]*events.Emitter[[]domain.TypingIndicator]),
	}
}

func (b *Bus) messageEmitter(chatID string) *events.Emitter[[]domain.Message] {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, ok := b.messages[chatID]
	if !ok {
		e = events.NewEmitter[[]domain.Message]()
		b.messages[chatID] = e
	}
	return e
}

func (b *Bus) typingEmitter(chatID string) *events.Emitter[[]domain.TypingIndicator] {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, ok := b.typing[chatID]
	if !ok {
		e = events.NewEmitter[[]domain.TypingIndicator]()
		b.typing[chatID] = e
	}
	return e
}

// OnChatsChanged subscribes to chat-list changes (create, reorder,
// unread count, last message). Returns the unsubscribe function.
func (b *Bus) OnChatsChanged(fn func([]domain.Chat)) func() {
	return b.chats.Subscribe(fn)
}

// OnMessagesChanged subscribes to changes of one chat's message list,
// status-only changes included.
func (b *Bus) OnMessagesChanged(chatID string, fn func([]domain.Message)) func() {
	return b.messageEmitter(chatID).Subscribe(fn)
}

// OnTypingChanged subscribes to one chat's typing-indicator set.
func (b *Bus) OnTypingChanged(chatID string, fn func([]domain.TypingIndicator)) func() {
	return b.typingEmitter(chatID).Subscribe(fn)
}

// PublishChats delivers the full current chat list to all chat-list
// subscribers.
func (b *Bus) PublishChats(chats []domain.Chat) {
	b.chats.Emit(chats)
}

// PublishMessages delivers the full current message list for chatID.
func (b *Bus) PublishMessages(chatID string, messages []domain.Message) {
	b.messageEmitter(chatID).Emit(messages)
}

// PublishTyping delivers the current typing indicators for chatID.
func (b *Bus) PublishTyping(chatID string, indicators []domain.TypingIndicator) {
	b.typingEmitter(chatID).Emit(indicators)
}
