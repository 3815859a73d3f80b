package commands

import ember_errors "ember-chat/pkg/errors"

// SetTypingCommand upserts a typing indicator for (chat, user).
type SetTypingCommand struct {
	ChatID   string
	UserID   string
	UserName string
}

// NewSetTypingCommand creates a new set typing command
func NewSetTypingCommand(chatID, userID, userName string) SetTypingCommand {
	return SetTypingCommand{ChatID: chatID, UserID: userID, UserName: userName}
}

func (c SetTypingCommand) CommandType() string { return "typing.set" }

// Validate validates the command
func (c SetTypingCommand) Validate() error {
	if c.ChatID == "" || c.UserID == "" {
		return ember_errors.ErrInvalidInput
	}
	return nil
}
