package domain

import "time"

// TombstoneText replaces the payload of a soft-deleted message.
const TombstoneText = "This message was deleted"

// Reaction is one user's emoji reaction to a message. A reactor holds
// at most one reaction per message; repeat reactions replace it.
type Reaction struct {
	Emoji     string    `json:"emoji"`
	ReactorID string    `json:"reactor_id"`
	ReactedAt time.Time `json:"reacted_at"`
}

// ReplySnapshot is the quoted preview captured when a reply is sent.
// It is a copy, not a live reference: later edits or deletion of the
// target do not change it.
type ReplySnapshot struct {
	MessageID  string `json:"message_id"`
	SenderName string `json:"sender_name"`
	Preview    string `json:"preview"`
}

// Message is one entry in a chat's history. ChatID and CreatedAt never
// change after creation; Status only moves per MessageStatus.CanTransition.
type Message struct {
	ID              string         `json:"id"`
	ChatID          string         `json:"chat_id"`
	SenderID        string         `json:"sender_id"`
	SenderName      string         `json:"sender_name"`
	SenderAvatarURL string         `json:"sender_avatar_url,omitempty"`
	Type            MessageType    `json:"type"`
	Payload         Payload        `json:"payload"`
	Status          MessageStatus  `json:"status"`
	CreatedAt       time.Time      `json:"created_at"`
	ReplyTo         *ReplySnapshot `json:"reply_to,omitempty"`
	Reactions       []Reaction     `json:"reactions,omitempty"`
	IsEdited        bool           `json:"is_edited,omitempty"`
	EditedAt        *time.Time     `json:"edited_at,omitempty"`
	IsForwarded     bool           `json:"is_forwarded,omitempty"`
	ForwardedFrom   string         `json:"forwarded_from,omitempty"`
	IsDeleted       bool           `json:"is_deleted,omitempty"`
	DeletedAt       *time.Time     `json:"deleted_at,omitempty"`
}

// Preview returns the chat-list preview string for the message.
func (m *Message) Preview() string {
	return m.Payload.Preview()
}

// ReactionBy returns the reactor's current reaction, if any.
func (m *Message) ReactionBy(reactorID string) (Reaction, bool) {
	for _, r := range m.Reactions {
		if r.ReactorID == reactorID {
			return r, true
		}
	}
	return Reaction{}, false
}

// Clone returns a deep copy safe to hand to subscribers.
func (m *Message) Clone() Message {
	c := *m
	if m.ReplyTo != nil {
		rt := *m.ReplyTo
		c.ReplyTo = &rt
	}
	if m.Reactions != nil {
		c.Reactions = make([]Reaction, len(m.Reactions))
		copy(c.Reactions, m.Reactions)
	}
	if m.EditedAt != nil {
		t := *m.EditedAt
		c.EditedAt = &t
	}
	if m.DeletedAt != nil {
		t := *m.DeletedAt
		c.DeletedAt = &t
	}
	return c
}
