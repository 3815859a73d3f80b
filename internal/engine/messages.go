package engine

import (
	"go.uber.org/zap"

	"ember-chat/internal/commands"
	"ember-chat/internal/domain"
	ember_errors "ember-chat/pkg/errors"
)

func (e *Engine) senderLocked(userID string) (name, avatar string) {
	if u, ok := e.users[userID]; ok {
		return u.DisplayName, u.AvatarURL
	}
	return userID, ""
}

// newMessageLocked builds a message in SENDING state, appends it to its
// chat and updates the chat's cached last message.
func (e *Engine) newMessageLocked(c *domain.Chat, senderID string, payload domain.Payload) *domain.Message {
	name, avatar := e.senderLocked(senderID)
	msg := &domain.Message{
		ID:              domain.NewMessageID(),
		ChatID:          c.ID,
		SenderID:        senderID,
		SenderName:      name,
		SenderAvatarURL: avatar,
		Type:            payload.MessageType(),
		Payload:         payload,
		Status:          domain.StatusSending,
		CreatedAt:       e.now(),
	}
	e.messages[c.ID] = append(e.messages[c.ID], msg)
	e.refreshLastMessageLocked(c)
	e.recomputeUnreadLocked(c)
	e.sortChatsLocked()
	return msg
}

func (e *Engine) scheduleDelivery(chatID, messageID string) {
	e.sched.ScheduleDelivery(func(status domain.MessageStatus) {
		e.advanceStatus(chatID, messageID, status)
	})
}

// advanceStatus is the scheduler's way back into the engine. The
// monotonic check makes late timers self-voiding: a message already
// read, deleted or failed never regresses.
func (e *Engine) advanceStatus(chatID, messageID string, target domain.MessageStatus) {
	e.mu.Lock()
	defer e.mu.Unlock()
	msg := e.findMessageLocked(chatID, messageID)
	if msg == nil || msg.IsDeleted {
		return
	}
	if !msg.Status.CanTransition(target) {
		return
	}
	msg.Status = target

	chatChanged := false
	if c := e.findChatLocked(chatID); c != nil && c.LastMessage != nil && c.LastMessage.ID == messageID {
		lm := msg.Clone()
		c.LastMessage = &lm
		chatChanged = true
	}
	e.persistLocked()
	e.publishMessagesLocked(chatID)
	if chatChanged {
		e.publishChatsLocked()
	}
}

// SendMessage appends a new message to the chat and starts its delivery
// lifecycle. The returned copy is still SENDING; callers that need the
// final status subscribe via OnMessagesChanged.
func (e *Engine) SendMessage(chatID string, payload domain.Payload) (domain.Message, error) {
	cmd := commands.NewSendMessageCommand(chatID, e.identity.CurrentUserID(), payload)
	if err := cmd.Validate(); err != nil {
		return domain.Message{}, err
	}

	e.mu.Lock()
	c := e.findChatLocked(chatID)
	if c == nil {
		e.mu.Unlock()
		return domain.Message{}, ember_errors.ErrNotFound
	}
	msg := e.newMessageLocked(c, cmd.SenderID, cmd.Payload)
	out := msg.Clone()
	e.persistLocked()
	e.publishMessagesLocked(chatID)
	e.publishChatsLocked()
	e.mu.Unlock()

	e.scheduleDelivery(chatID, msg.ID)
	return out, nil
}

// ReceiveMessage injects a message from another participant, the way a
// transport would on receipt. It lands DELIVERED on this device and
// bumps the chat's unread count until the chat is fetched for display.
func (e *Engine) ReceiveMessage(chatID, senderID string, payload domain.Payload) (domain.Message, error) {
	cmd := commands.NewSendMessageCommand(chatID, senderID, payload)
	if err := cmd.Validate(); err != nil {
		return domain.Message{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	c := e.findChatLocked(chatID)
	if c == nil {
		return domain.Message{}, ember_errors.ErrNotFound
	}
	msg := e.newMessageLocked(c, cmd.SenderID, cmd.Payload)
	msg.Status = domain.StatusDelivered
	lm := msg.Clone()
	c.LastMessage = &lm
	e.recomputeUnreadLocked(c)
	out := msg.Clone()
	e.persistLocked()
	e.publishMessagesLocked(chatID)
	e.publishChatsLocked()
	return out, nil
}

// SendReply sends a message quoting replyToID. The quote is a snapshot
// taken now; editing or deleting the target later leaves it intact.
func (e *Engine) SendReply(chatID string, payload domain.Payload, replyToID string) (domain.Message, error) {
	cmd := commands.NewSendReplyCommand(chatID, e.identity.CurrentUserID(), payload, replyToID)
	if err := cmd.Validate(); err != nil {
		return domain.Message{}, err
	}

	e.mu.Lock()
	c := e.findChatLocked(chatID)
	if c == nil {
		e.mu.Unlock()
		return domain.Message{}, ember_errors.ErrNotFound
	}
	target := e.findMessageLocked(chatID, replyToID)
	if target == nil {
		e.mu.Unlock()
		return domain.Message{}, ember_errors.ErrNotFound
	}
	snapshot := &domain.ReplySnapshot{
		MessageID:  target.ID,
		SenderName: target.SenderName,
		Preview:    target.Preview(),
	}
	msg := e.newMessageLocked(c, cmd.SenderID, cmd.Payload)
	msg.ReplyTo = snapshot
	if c.LastMessage != nil && c.LastMessage.ID == msg.ID {
		lm := msg.Clone()
		c.LastMessage = &lm
	}
	out := msg.Clone()
	e.persistLocked()
	e.publishMessagesLocked(chatID)
	e.publishChatsLocked()
	e.mu.Unlock()

	e.scheduleDelivery(chatID, msg.ID)
	return out, nil
}

// ForwardMessage re-sends a message into each target chat as a fresh
// message with its own id, timestamp and delivery lifecycle. Unknown
// targets are skipped; the original is never touched.
func (e *Engine) ForwardMessage(sourceChatID, messageID string, targetChatIDs []string) ([]domain.Message, error) {
	cmd := commands.NewForwardMessageCommand(sourceChatID, messageID, e.identity.CurrentUserID(), targetChatIDs)
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	e.mu.Lock()
	original := e.findMessageLocked(sourceChatID, messageID)
	if original == nil {
		e.mu.Unlock()
		return nil, ember_errors.ErrNotFound
	}
	forwardedFrom := original.SenderName
	payload := original.Payload

	var created []domain.Message
	for _, targetID := range cmd.TargetChatIDs {
		c := e.findChatLocked(targetID)
		if c == nil {
			e.log.Debug("forward_target_skipped", zap.String("chat_id", targetID))
			continue
		}
		msg := e.newMessageLocked(c, cmd.SenderID, payload)
		msg.IsForwarded = true
		msg.ForwardedFrom = forwardedFrom
		if c.LastMessage != nil && c.LastMessage.ID == msg.ID {
			lm := msg.Clone()
			c.LastMessage = &lm
		}
		created = append(created, msg.Clone())
	}
	if len(created) > 0 {
		e.persistLocked()
		for _, m := range created {
			e.publishMessagesLocked(m.ChatID)
		}
		e.publishChatsLocked()
	}
	e.mu.Unlock()

	for _, m := range created {
		e.scheduleDelivery(m.ChatID, m.ID)
	}
	return created, nil
}

// EditMessage replaces the text of the caller's own message. Status and
// creation time are untouched. Editing someone else's message changes
// nothing and returns ErrPermissionDenied.
func (e *Engine) EditMessage(chatID, messageID, newText string) error {
	cmd := commands.NewEditMessageCommand(chatID, messageID, e.identity.CurrentUserID(), newText)
	if err := cmd.Validate(); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	c := e.findChatLocked(chatID)
	if c == nil {
		return ember_errors.ErrNotFound
	}
	msg := e.findMessageLocked(chatID, messageID)
	if msg == nil || msg.IsDeleted {
		return ember_errors.ErrNotFound
	}
	if msg.SenderID != cmd.EditorID {
		return ember_errors.ErrPermissionDenied
	}
	msg.Payload.Body = cmd.NewText
	msg.IsEdited = true
	msg.EditedAt = ember_errors.NowPtr()

	if c.LastMessage != nil && c.LastMessage.ID == messageID {
		lm := msg.Clone()
		c.LastMessage = &lm
	}
	e.persistLocked()
	e.publishMessagesLocked(chatID)
	e.publishChatsLocked()
	return nil
}

// DeleteMessage soft-deletes the caller's own message: the entry stays
// in history as a tombstone with its content masked. The chat's last
// message is recomputed when the deleted one was the most recent.
func (e *Engine) DeleteMessage(chatID, messageID string) error {
	cmd := commands.NewDeleteMessageCommand(chatID, messageID, e.identity.CurrentUserID())
	if err := cmd.Validate(); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	c := e.findChatLocked(chatID)
	if c == nil {
		return ember_errors.ErrNotFound
	}
	msg := e.findMessageLocked(chatID, messageID)
	if msg == nil {
		return ember_errors.ErrNotFound
	}
	if msg.SenderID != cmd.RequesterID {
		return ember_errors.ErrPermissionDenied
	}
	if msg.IsDeleted {
		return nil
	}
	msg.IsDeleted = true
	msg.DeletedAt = ember_errors.NowPtr()
	msg.Payload = domain.TextPayload(domain.TombstoneText)
	msg.Type = domain.MessageTypeText
	msg.Reactions = nil

	e.refreshLastMessageLocked(c)
	e.recomputeUnreadLocked(c)
	e.sortChatsLocked()
	e.persistLocked()
	e.publishMessagesLocked(chatID)
	e.publishChatsLocked()
	return nil
}

// MarkMessagesAsRead flips every other sender's message in the chat to
// READ and zeroes the unread count, atomically for the chat. Calling it
// again is a no-op.
func (e *Engine) MarkMessagesAsRead(chatID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	c := e.findChatLocked(chatID)
	if c == nil {
		return ember_errors.ErrNotFound
	}
	if e.markReadLocked(c) {
		e.persistLocked()
		e.publishMessagesLocked(chatID)
		e.publishChatsLocked()
	}
	return nil
}

func (e *Engine) markReadLocked(c *domain.Chat) bool {
	self := e.identity.CurrentUserID()
	changed := false
	for _, m := range e.messages[c.ID] {
		if m.SenderID == self {
			continue
		}
		if m.Status.CanTransition(domain.StatusRead) {
			m.Status = domain.StatusRead
			changed = true
		}
	}
	if c.UnreadCount != 0 {
		changed = true
	}
	e.recomputeUnreadLocked(c)
	if c.LastMessage != nil {
		if m := e.findMessageLocked(c.ID, c.LastMessage.ID); m != nil {
			lm := m.Clone()
			c.LastMessage = &lm
		}
	}
	return changed
}

// GetMessages returns the chat's history in ascending creation order
// and, as a side effect of fetching it for display, marks the other
// participants' messages as read.
func (e *Engine) GetMessages(chatID string) ([]domain.Message, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	c := e.findChatLocked(chatID)
	if c == nil {
		return nil, ember_errors.ErrNotFound
	}
	if e.markReadLocked(c) {
		e.persistLocked()
		e.publishMessagesLocked(chatID)
		e.publishChatsLocked()
	}
	return e.messageListLocked(chatID), nil
}

// CopyMessageText is the pure projection used by "copy": the payload's
// human-readable text with all structural encoding stripped.
func (e *Engine) CopyMessageText(msg domain.Message) string {
	return msg.Payload.Plain()
}

// OnMessagesChanged subscribes to one chat's message list. Handlers run
// synchronously inside the mutation and must not call back into the
// engine.
func (e *Engine) OnMessagesChanged(chatID string, fn func([]domain.Message)) func() {
	return e.bus.OnMessagesChanged(chatID, fn)
}
