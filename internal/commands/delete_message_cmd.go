package commands

import ember_errors "ember-chat/pkg/errors"

// DeleteMessageCommand soft-deletes a message, leaving a tombstone.
type DeleteMessageCommand struct {
	ChatID      string
	MessageID   string
	RequesterID string
}

// NewDeleteMessageCommand creates a new delete message command
func NewDeleteMessageCommand(chatID, messageID, requesterID string) DeleteMessageCommand {
	return DeleteMessageCommand{ChatID: chatID, MessageID: messageID, RequesterID: requesterID}
}

func (c DeleteMessageCommand) CommandType() string { return "message.delete" }

// Validate validates the command
func (c DeleteMessageCommand) Validate() error {
	if c.ChatID == "" || c.MessageID == "" || c.RequesterID == "" {
		return ember_errors.ErrInvalidInput
	}
	return nil
}
