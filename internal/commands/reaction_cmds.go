package commands

import ember_errors "ember-chat/pkg/errors"

// AddReactionCommand upserts one reactor's emoji on a message.
type AddReactionCommand struct {
	ChatID    string
	MessageID string
	ReactorID string
	Emoji     string
}

// NewAddReactionCommand creates a new add reaction command
func NewAddReactionCommand(chatID, messageID, reactorID, emoji string) AddReactionCommand {
	return AddReactionCommand{ChatID: chatID, MessageID: messageID, ReactorID: reactorID, Emoji: emoji}
}

func (c AddReactionCommand) CommandType() string { return "reaction.add" }

// Validate validates the command
func (c AddReactionCommand) Validate() error {
	if c.ChatID == "" || c.MessageID == "" || c.ReactorID == "" || c.Emoji == "" {
		return ember_errors.ErrInvalidInput
	}
	return nil
}

// RemoveReactionCommand removes one reactor's reaction from a message.
type RemoveReactionCommand struct {
	ChatID    string
	MessageID string
	ReactorID string
}

// NewRemoveReactionCommand creates a new remove reaction command
func NewRemoveReactionCommand(chatID, messageID, reactorID string) RemoveReactionCommand {
	return RemoveReactionCommand{ChatID: chatID, MessageID: messageID, ReactorID: reactorID}
}

func (c RemoveReactionCommand) CommandType() string { return "reaction.remove" }

// Validate validates the command
func (c RemoveReactionCommand) Validate() error {
	if c.ChatID == "" || c.MessageID == "" || c.ReactorID == "" {
		return ember_errors.ErrInvalidInput
	}
	return nil
}
