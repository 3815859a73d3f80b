package engine

import (
	"sort"

	"ember-chat/internal/domain"
	ember_errors "ember-chat/pkg/errors"
)

// UpsertUser adds or replaces a directory entry and refreshes the
// participant snapshots of every chat the user belongs to.
func (e *Engine) UpsertUser(u domain.User) error {
	if u.ID == "" || u.DisplayName == "" {
		return ember_errors.ErrInvalidInput
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	stored := u
	e.users[u.ID] = &stored
	changed := false
	for _, c := range e.chats {
		if !c.HasParticipant(u.ID) {
			continue
		}
		c.Participants = e.participantsLocked(c.ParticipantIDs)
		changed = true
	}
	e.persistLocked()
	if changed {
		e.publishChatsLocked()
	}
	return nil
}

// SetUserOnline flips the presence flag; going offline stamps LastSeenAt.
func (e *Engine) SetUserOnline(userID string, online bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	u, ok := e.users[userID]
	if !ok {
		return ember_errors.ErrNotFound
	}
	u.IsOnline = online
	if !online {
		u.LastSeenAt = ember_errors.NowPtr()
	}
	changed := false
	for _, c := range e.chats {
		if !c.HasParticipant(userID) {
			continue
		}
		c.Participants = e.participantsLocked(c.ParticipantIDs)
		changed = true
	}
	e.persistLocked()
	if changed {
		e.publishChatsLocked()
	}
	return nil
}

// FindUser returns the directory entry for userID.
func (e *Engine) FindUser(userID string) (domain.User, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	u, ok := e.users[userID]
	if !ok {
		return domain.User{}, ember_errors.ErrNotFound
	}
	return *u, nil
}

// Users returns the directory sorted by display name.
func (e *Engine) Users() []domain.User {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]domain.User, 0, len(e.users))
	for _, u := range e.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DisplayName == out[j].DisplayName {
			return out[i].ID < out[j].ID
		}
		return out[i].DisplayName < out[j].DisplayName
	})
	return out
}
