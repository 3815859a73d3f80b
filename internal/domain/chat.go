package domain

import (
	"errors"
	"time"
)

// Chat is a conversation container. LastMessage is a cached copy of the
// most recent non-deleted message, kept in sync by the engine; it is
// never the authoritative record.
type Chat struct {
	ID             string    `json:"id"`
	Kind           ChatKind  `json:"kind"`
	Name           string    `json:"name,omitempty"`
	ParticipantIDs []string  `json:"participant_ids"`
	Participants   []User    `json:"participants,omitempty"`
	LastMessage    *Message  `json:"last_message,omitempty"`
	LastActivity   time.Time `json:"last_activity"`
	UnreadCount    int       `json:"unread_count"`
	IsArchived     bool      `json:"is_archived,omitempty"`
	IsMuted        bool      `json:"is_muted,omitempty"`
	IsPinned       bool      `json:"is_pinned,omitempty"`
}

// Validate enforces the structural invariants: a known kind, at least
// two distinct participants, and an explicit name for group/channel
// chats (direct chats derive theirs from the other participant).
func (c *Chat) Validate() error {
	switch c.Kind {
	case ChatKindDirect, ChatKindGroup, ChatKindChannel:
	default:
		return errors.New("unknown chat kind")
	}
	if len(c.ParticipantIDs) < 2 {
		return errors.New("chat requires at least two participants")
	}
	seen := make(map[string]struct{}, len(c.ParticipantIDs))
	for _, id := range c.ParticipantIDs {
		if id == "" {
			return errors.New("empty participant id")
		}
		if _, dup := seen[id]; dup {
			return errors.New("duplicate participant id")
		}
		seen[id] = struct{}{}
	}
	if c.Kind != ChatKindDirect && c.Name == "" {
		return errors.New("group and channel chats require a name")
	}
	return nil
}

// HasParticipant reports whether userID belongs to the chat.
func (c *Chat) HasParticipant(userID string) bool {
	for _, id := range c.ParticipantIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// DisplayName returns the name shown to viewerID: the explicit name for
// group/channel chats, the other participant's name for direct chats.
func (c *Chat) DisplayName(viewerID string) string {
	if c.Kind != ChatKindDirect || c.Name != "" {
		return c.Name
	}
	for _, p := range c.Participants {
		if p.ID != viewerID {
			return p.DisplayName
		}
	}
	for _, id := range c.ParticipantIDs {
		if id != viewerID {
			return id
		}
	}
	return c.ID
}

// Clone returns a deep copy safe to hand to subscribers.
func (c *Chat) Clone() Chat {
	out := *c
	out.ParticipantIDs = append([]string(nil), c.ParticipantIDs...)
	if c.Participants != nil {
		out.Participants = make([]User, len(c.Participants))
		copy(out.Participants, c.Participants)
	}
	if c.LastMessage != nil {
		lm := c.LastMessage.Clone()
		out.LastMessage = &lm
	}
	return out
}
