package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NewMessageID returns a message id that sorts by creation time: a
// zero-padded nanosecond timestamp followed by a uuid for uniqueness
// when two messages share the same nanosecond.
func NewMessageID() string {
	return fmt.Sprintf("%020d-%s", time.Now().UTC().UnixNano(), uuid.NewString())
}

// NewChatID returns a fresh chat id.
func NewChatID() string {
	return "chat-" + uuid.NewString()
}
