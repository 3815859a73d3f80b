package engine

import (
	"ember-chat/internal/commands"
	"ember-chat/internal/domain"
	ember_errors "ember-chat/pkg/errors"
)

// AddReaction upserts reactorID's reaction on a message: a repeat call
// by the same reactor replaces the previous emoji, never appends.
func (e *Engine) AddReaction(chatID, messageID, emoji, reactorID string) error {
	cmd := commands.NewAddReactionCommand(chatID, messageID, reactorID, emoji)
	if err := cmd.Validate(); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	msg := e.findMessageLocked(chatID, messageID)
	if msg == nil || msg.IsDeleted {
		return ember_errors.ErrNotFound
	}
	reaction := domain.Reaction{
		Emoji:     cmd.Emoji,
		ReactorID: cmd.ReactorID,
		ReactedAt: e.now(),
	}
	replaced := false
	for i := range msg.Reactions {
		if msg.Reactions[i].ReactorID == cmd.ReactorID {
			msg.Reactions[i] = reaction
			replaced = true
			break
		}
	}
	if !replaced {
		msg.Reactions = append(msg.Reactions, reaction)
	}
	e.persistLocked()
	e.publishMessagesLocked(chatID)
	return nil
}

// RemoveReaction drops reactorID's reaction from a message, if any.
func (e *Engine) RemoveReaction(chatID, messageID, reactorID string) error {
	cmd := commands.NewRemoveReactionCommand(chatID, messageID, reactorID)
	if err := cmd.Validate(); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	msg := e.findMessageLocked(chatID, messageID)
	if msg == nil {
		return ember_errors.ErrNotFound
	}
	for i := range msg.Reactions {
		if msg.Reactions[i].ReactorID == cmd.ReactorID {
			msg.Reactions = append(msg.Reactions[:i], msg.Reactions[i+1:]...)
			e.persistLocked()
			e.publishMessagesLocked(chatID)
			return nil
		}
	}
	return nil
}
