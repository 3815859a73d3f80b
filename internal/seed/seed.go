// Package seed builds a sample snapshot for first launches and for
// tests that want a populated store.
package seed

import (
	"time"

	"ember-chat/internal/domain"
	"ember-chat/internal/storage"
)

// CurrentUserID is the identity the sample data is written for.
const CurrentUserID = "me"

// Snapshot returns a small dating-app flavored data set: the current
// user, a few matches, one direct chat with history and one group chat.
func Snapshot() storage.Snapshot {
	now := time.Now()

	me := domain.User{ID: CurrentUserID, DisplayName: "You", IsOnline: true}
	maya := domain.User{ID: "u-maya", DisplayName: "Maya", AvatarURL: "https://cdn.example.com/a/maya.jpg", IsOnline: true}
	liam := domain.User{ID: "u-liam", DisplayName: "Liam", AvatarURL: "https://cdn.example.com/a/liam.jpg"}
	ava := domain.User{ID: "u-ava", DisplayName: "Ava", AvatarURL: "https://cdn.example.com/a/ava.jpg", IsOnline: true}

	direct := domain.Chat{
		ID:             "chat-maya",
		Kind:           domain.ChatKindDirect,
		ParticipantIDs: []string{me.ID, maya.ID},
		Participants:   []domain.User{me, maya},
		LastActivity:   now.Add(-2 * time.Minute),
	}
	group := domain.Chat{
		ID:             "chat-weekend",
		Kind:           domain.ChatKindGroup,
		Name:           "Weekend plans",
		ParticipantIDs: []string{me.ID, maya.ID, liam.ID, ava.ID},
		Participants:   []domain.User{me, maya, liam, ava},
		LastActivity:   now.Add(-40 * time.Minute),
	}

	directMessages := []domain.Message{
		{
			ID:         "00000000000000000001-seed",
			ChatID:     direct.ID,
			SenderID:   maya.ID,
			SenderName: maya.DisplayName,
			Type:       domain.MessageTypeText,
			Payload:    domain.TextPayload("Hey! Loved your hiking photos 🏔️"),
			Status:     domain.StatusDelivered,
			CreatedAt:  now.Add(-10 * time.Minute),
		},
		{
			ID:         "00000000000000000002-seed",
			ChatID:     direct.ID,
			SenderID:   me.ID,
			SenderName: me.DisplayName,
			Type:       domain.MessageTypeText,
			Payload:    domain.TextPayload("Thanks! That was Mount Rainier last month"),
			Status:     domain.StatusRead,
			CreatedAt:  now.Add(-8 * time.Minute),
		},
		{
			ID:         "00000000000000000003-seed",
			ChatID:     direct.ID,
			SenderID:   maya.ID,
			SenderName: maya.DisplayName,
			Type:       domain.MessageTypeLocation,
			Payload:    domain.LocationPayload(47.6205, -122.3493, "Space Needle"),
			Status:     domain.StatusDelivered,
			CreatedAt:  now.Add(-2 * time.Minute),
		},
	}
	groupMessages := []domain.Message{
		{
			ID:         "00000000000000000004-seed",
			ChatID:     group.ID,
			SenderID:   ava.ID,
			SenderName: ava.DisplayName,
			Type:       domain.MessageTypeText,
			Payload:    domain.TextPayload("Picnic on Saturday if the weather holds?"),
			Status:     domain.StatusDelivered,
			CreatedAt:  now.Add(-40 * time.Minute),
		},
	}

	lm1 := directMessages[len(directMessages)-1]
	direct.LastMessage = &lm1
	direct.LastActivity = lm1.CreatedAt
	direct.UnreadCount = 2
	lm2 := groupMessages[len(groupMessages)-1]
	group.LastMessage = &lm2
	group.LastActivity = lm2.CreatedAt
	group.UnreadCount = 1

	return storage.Snapshot{
		Chats: []domain.Chat{direct, group},
		Messages: map[string][]domain.Message{
			direct.ID: directMessages,
			group.ID:  groupMessages,
		},
		Users: []domain.User{me, maya, liam, ava},
	}
}
