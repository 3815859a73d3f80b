package commands

import (
	"ember-chat/internal/domain"
	ember_errors "ember-chat/pkg/errors"
)

// SendMessageCommand sends a new message into a chat.
type SendMessageCommand struct {
	ChatID   string
	SenderID string
	Payload  domain.Payload
}

// NewSendMessageCommand creates a new send message command
func NewSendMessageCommand(chatID, senderID string, payload domain.Payload) SendMessageCommand {
	return SendMessageCommand{ChatID: chatID, SenderID: senderID, Payload: payload}
}

func (c SendMessageCommand) CommandType() string { return "message.send" }

// Validate validates the command
func (c SendMessageCommand) Validate() error {
	if c.ChatID == "" || c.SenderID == "" {
		return ember_errors.ErrInvalidInput
	}
	if c.Payload.IsEmpty() {
		return ember_errors.ErrEmptyContent
	}
	return nil
}

// SendReplyCommand sends a message quoting another message in the same
// chat. ReplyToID is resolved and snapshotted by the engine.
type SendReplyCommand struct {
	SendMessageCommand
	ReplyToID string
}

// NewSendReplyCommand creates a new send reply command
func NewSendReplyCommand(chatID, senderID string, payload domain.Payload, replyToID string) SendReplyCommand {
	return SendReplyCommand{
		SendMessageCommand: NewSendMessageCommand(chatID, senderID, payload),
		ReplyToID:          replyToID,
	}
}

func (c SendReplyCommand) CommandType() string { return "message.reply" }

// Validate validates the command
func (c SendReplyCommand) Validate() error {
	if err := c.SendMessageCommand.Validate(); err != nil {
		return err
	}
	if c.ReplyToID == "" {
		return ember_errors.ErrInvalidInput
	}
	return nil
}
