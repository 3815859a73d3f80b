package commands

import (
	"strings"

	ember_errors "ember-chat/pkg/errors"
)

// EditMessageCommand replaces the text of a message. Only the original
// sender may edit; the engine enforces that.
type EditMessageCommand struct {
	ChatID    string
	MessageID string
	EditorID  string
	NewText   string
}

// NewEditMessageCommand creates a new edit message command
func NewEditMessageCommand(chatID, messageID, editorID, newText string) EditMessageCommand {
	return EditMessageCommand{ChatID: chatID, MessageID: messageID, EditorID: editorID, NewText: newText}
}

func (c EditMessageCommand) CommandType() string { return "message.edit" }

// Validate validates the command
func (c EditMessageCommand) Validate() error {
	if c.ChatID == "" || c.MessageID == "" || c.EditorID == "" {
		return ember_errors.ErrInvalidInput
	}
	if strings.TrimSpace(c.NewText) == "" {
		return ember_errors.ErrEmptyContent
	}
	return nil
}
