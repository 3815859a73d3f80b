package commands

import (
	"strings"

	ember_errors "ember-chat/pkg/errors"
)

// CreateDirectChatCommand opens (or finds) a one-to-one chat.
type CreateDirectChatCommand struct {
	InitiatorID string
	OtherUserID string
}

// NewCreateDirectChatCommand creates a new create direct chat command
func NewCreateDirectChatCommand(initiatorID, otherUserID string) CreateDirectChatCommand {
	return CreateDirectChatCommand{InitiatorID: initiatorID, OtherUserID: otherUserID}
}

func (c CreateDirectChatCommand) CommandType() string { return "conversation.create_direct" }

// Validate validates the command
func (c CreateDirectChatCommand) Validate() error {
	if c.InitiatorID == "" || c.OtherUserID == "" {
		return ember_errors.ErrInvalidInput
	}
	if c.InitiatorID == c.OtherUserID {
		return ember_errors.ErrInvalidInput
	}
	return nil
}

// CreateGroupChatCommand creates a named group chat. The creator is
// always a participant, whether listed or not.
type CreateGroupChatCommand struct {
	CreatorID      string
	Name           string
	ParticipantIDs []string
}

// NewCreateGroupChatCommand creates a new create group chat command
func NewCreateGroupChatCommand(creatorID, name string, participantIDs []string) CreateGroupChatCommand {
	return CreateGroupChatCommand{CreatorID: creatorID, Name: name, ParticipantIDs: participantIDs}
}

func (c CreateGroupChatCommand) CommandType() string { return "conversation.create_group" }

// Validate validates the command
func (c CreateGroupChatCommand) Validate() error {
	if c.CreatorID == "" {
		return ember_errors.ErrInvalidInput
	}
	if strings.TrimSpace(c.Name) == "" {
		return ember_errors.ErrInvalidInput
	}
	if len(c.ParticipantIDs) == 0 {
		return ember_errors.ErrInvalidInput
	}
	return nil
}
