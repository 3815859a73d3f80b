package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ember-chat/internal/domain"
)

func TestMessageFamiliesAreIndependentPerChat(t *testing.T) {
	b := NewBus()
	var c1, c2 int
	b.OnMessagesChanged("c1", func([]domain.Message) { c1++ })
	b.OnMessagesChanged("c2", func([]domain.Message) { c2++ })

	b.PublishMessages("c1", nil)
	b.PublishMessages("c1", nil)
	b.PublishMessages("c2", nil)

	assert.Equal(t, 2, c1)
	assert.Equal(t, 1, c2)
}

func TestChatSubscribersReceiveFullList(t *testing.T) {
	b := NewBus()
	var got []domain.Chat
	b.OnChatsChanged(func(chats []domain.Chat) { got = chats })

	b.PublishChats([]domain.Chat{{ID: "c1"}, {ID: "c2"}})
	assert.Len(t, got, 2)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := NewBus()
	calls := 0
	unsub := b.OnTypingChanged("c1", func([]domain.TypingIndicator) { calls++ })

	b.PublishTyping("c1", []domain.TypingIndicator{{ChatID: "c1", UserID: "u2"}})
	unsub()
	b.PublishTyping("c1", nil)

	assert.Equal(t, 1, calls)
}

func TestPublishToChatWithoutSubscribers(t *testing.T) {
	b := NewBus()
	// Must simply be a no-op.
	b.PublishMessages("ghost", nil)
	b.PublishTyping("ghost", nil)
}
