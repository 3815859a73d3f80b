package commands

import ember_errors "ember-chat/pkg/errors"

// ForwardMessageCommand re-sends an existing message to one or more
// target chats. Unknown targets are skipped, not fatal.
type ForwardMessageCommand struct {
	SourceChatID  string
	MessageID     string
	SenderID      string
	TargetChatIDs []string
}

// NewForwardMessageCommand creates a new forward message command
func NewForwardMessageCommand(sourceChatID, messageID, senderID string, targetChatIDs []string) ForwardMessageCommand {
	return ForwardMessageCommand{
		SourceChatID:  sourceChatID,
		MessageID:     messageID,
		SenderID:      senderID,
		TargetChatIDs: targetChatIDs,
	}
}

func (c ForwardMessageCommand) CommandType() string { return "message.forward" }

// Validate validates the command
func (c ForwardMessageCommand) Validate() error {
	if c.SourceChatID == "" || c.MessageID == "" || c.SenderID == "" {
		return ember_errors.ErrInvalidInput
	}
	if len(c.TargetChatIDs) == 0 {
		return ember_errors.ErrInvalidInput
	}
	return nil
}
