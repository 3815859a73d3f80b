package engine

import (
	"ember-chat/internal/commands"
	"ember-chat/internal/domain"
	ember_errors "ember-chat/pkg/errors"
)

// GetChats returns the chat list in display order: pinned first, then
// most recent activity first.
func (e *Engine) GetChats() []domain.Chat {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.chatListLocked()
}

// FindChat returns the chat by id.
func (e *Engine) FindChat(chatID string) (domain.Chat, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	c := e.findChatLocked(chatID)
	if c == nil {
		return domain.Chat{}, ember_errors.ErrNotFound
	}
	return c.Clone(), nil
}

func (e *Engine) participantsLocked(ids []string) []domain.User {
	out := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := e.users[id]; ok {
			out = append(out, *u)
		} else {
			out = append(out, domain.User{ID: id, DisplayName: id})
		}
	}
	return out
}

// CreateDirectChat opens a one-to-one chat between the current user and
// otherUserID. If one already exists it is returned as is.
func (e *Engine) CreateDirectChat(otherUserID string) (domain.Chat, error) {
	cmd := commands.NewCreateDirectChatCommand(e.identity.CurrentUserID(), otherUserID)
	if err := cmd.Validate(); err != nil {
		return domain.Chat{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	for _, c := range e.chats {
		if c.Kind == domain.ChatKindDirect && c.HasParticipant(cmd.InitiatorID) && c.HasParticipant(cmd.OtherUserID) {
			return c.Clone(), nil
		}
	}
	c := &domain.Chat{
		ID:             domain.NewChatID(),
		Kind:           domain.ChatKindDirect,
		ParticipantIDs: []string{cmd.InitiatorID, cmd.OtherUserID},
		LastActivity:   e.now(),
	}
	c.Participants = e.participantsLocked(c.ParticipantIDs)
	if err := c.Validate(); err != nil {
		return domain.Chat{}, err
	}
	e.chats = append(e.chats, c)
	e.sortChatsLocked()
	e.persistLocked()
	e.publishChatsLocked()
	return c.Clone(), nil
}

// CreateGroupChat creates a named group chat. The creator is included
// whether listed or not; duplicate participant ids collapse.
func (e *Engine) CreateGroupChat(name string, participantIDs []string) (domain.Chat, error) {
	cmd := commands.NewCreateGroupChatCommand(e.identity.CurrentUserID(), name, participantIDs)
	if err := cmd.Validate(); err != nil {
		return domain.Chat{}, err
	}

	ids := []string{cmd.CreatorID}
	seen := map[string]struct{}{cmd.CreatorID: {}}
	for _, id := range cmd.ParticipantIDs {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	c := &domain.Chat{
		ID:             domain.NewChatID(),
		Kind:           domain.ChatKindGroup,
		Name:           cmd.Name,
		ParticipantIDs: ids,
		LastActivity:   e.now(),
	}
	c.Participants = e.participantsLocked(ids)
	if err := c.Validate(); err != nil {
		return domain.Chat{}, err
	}
	e.chats = append(e.chats, c)
	e.sortChatsLocked()
	e.persistLocked()
	e.publishChatsLocked()
	return c.Clone(), nil
}

func (e *Engine) setChatFlag(chatID string, apply func(*domain.Chat)) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	c := e.findChatLocked(chatID)
	if c == nil {
		return ember_errors.ErrNotFound
	}
	apply(c)
	e.sortChatsLocked()
	e.persistLocked()
	e.publishChatsLocked()
	return nil
}

// SetArchived archives or unarchives the chat. Chats are never hard
// deleted.
func (e *Engine) SetArchived(chatID string, archived bool) error {
	return e.setChatFlag(chatID, func(c *domain.Chat) { c.IsArchived = archived })
}

// SetMuted mutes or unmutes the chat.
func (e *Engine) SetMuted(chatID string, muted bool) error {
	return e.setChatFlag(chatID, func(c *domain.Chat) { c.IsMuted = muted })
}

// SetPinned pins or unpins the chat, which reorders the chat list.
func (e *Engine) SetPinned(chatID string, pinned bool) error {
	return e.setChatFlag(chatID, func(c *domain.Chat) { c.IsPinned = pinned })
}

// OnChatsChanged subscribes to chat-list changes. Handlers run
// synchronously inside the mutation and must not call back into the
// engine.
func (e *Engine) OnChatsChanged(fn func([]domain.Chat)) func() {
	return e.bus.OnChatsChanged(fn)
}
