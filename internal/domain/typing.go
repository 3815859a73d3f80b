package domain

import "time"

// TypingIndicator is an ephemeral "user is composing" signal, keyed by
// (chat, user). It is never persisted and expires on a timer unless
// refreshed or cleared.
type TypingIndicator struct {
	ChatID    string    `json:"chat_id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	StartedAt time.Time `json:"started_at"`
}
