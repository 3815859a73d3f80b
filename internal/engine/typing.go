package engine

import (
	"ember-chat/internal/commands"
	"ember-chat/internal/domain"
	ember_errors "ember-chat/pkg/errors"
)

// SetTypingIndicator upserts the (chat, user) typing indicator and
// (re)starts its expiry countdown. Refreshing resets the timer instead
// of stacking a second one.
func (e *Engine) SetTypingIndicator(chatID, userID, userName string) error {
	cmd := commands.NewSetTypingCommand(chatID, userID, userName)
	if err := cmd.Validate(); err != nil {
		return err
	}

	e.mu.Lock()
	if e.findChatLocked(chatID) == nil {
		e.mu.Unlock()
		return ember_errors.ErrNotFound
	}
	if cmd.UserName == "" {
		cmd.UserName, _ = e.senderLocked(userID)
	}
	indicator := domain.TypingIndicator{
		ChatID:    chatID,
		UserID:    userID,
		UserName:  cmd.UserName,
		StartedAt: e.now(),
	}
	replaced := false
	list := e.typing[chatID]
	for i := range list {
		if list[i].UserID == userID {
			list[i] = indicator
			replaced = true
			break
		}
	}
	if !replaced {
		e.typing[chatID] = append(list, indicator)
	}
	e.publishTypingLocked(chatID)
	e.mu.Unlock()

	e.sched.ResetTypingExpiry(chatID, userID, func() {
		e.removeTyping(chatID, userID)
	})
	return nil
}

// ClearTypingIndicator removes the indicator immediately and cancels
// its expiry timer. Idempotent: clearing an absent indicator neither
// errors nor notifies.
func (e *Engine) ClearTypingIndicator(chatID, userID string) {
	e.sched.CancelTypingExpiry(chatID, userID)
	e.removeTyping(chatID, userID)
}

func (e *Engine) removeTyping(chatID, userID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	list := e.typing[chatID]
	for i := range list {
		if list[i].UserID == userID {
			e.typing[chatID] = append(list[:i], list[i+1:]...)
			e.publishTypingLocked(chatID)
			return
		}
	}
}

// TypingIndicators returns who is currently composing in the chat.
func (e *Engine) TypingIndicators(chatID string) []domain.TypingIndicator {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.typingListLocked(chatID)
}

// OnTypingChanged subscribes to one chat's typing indicators. Handlers
// run synchronously and must not call back into the engine.
func (e *Engine) OnTypingChanged(chatID string, fn func([]domain.TypingIndicator)) func() {
	return e.bus.OnTypingChanged(chatID, fn)
}
