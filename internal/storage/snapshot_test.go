package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ember-chat/internal/domain"
	"ember-chat/pkg/logger"
)

func sampleSnapshot(t *testing.T) Snapshot {
	t.Helper()
	now := time.Now()
	edited := now.Add(2 * time.Second)
	msg := domain.Message{
		ID:         "m1",
		ChatID:     "c1",
		SenderID:   "u2",
		SenderName: "Bob",
		Type:       domain.MessageTypeText,
		Payload:    domain.TextPayload("hello"),
		Status:     domain.StatusDelivered,
		CreatedAt:  now,
		IsEdited:   true,
		EditedAt:   &edited,
		Reactions:  []domain.Reaction{{Emoji: "❤️", ReactorID: "u1", ReactedAt: now}},
	}
	return Snapshot{
		Chats: []domain.Chat{{
			ID:             "c1",
			Kind:           domain.ChatKindDirect,
			ParticipantIDs: []string{"u1", "u2"},
			LastMessage:    &msg,
			LastActivity:   now,
			UnreadCount:    1,
		}},
		Messages: map[string][]domain.Message{"c1": {msg}},
		Users:    []domain.User{{ID: "u1", DisplayName: "Alice"}, {ID: "u2", DisplayName: "Bob"}},
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	adapter := NewAdapter(NewMemoryStore(), logger.Nop())
	in := sampleSnapshot(t)
	require.NoError(t, adapter.Save(context.Background(), in))

	out := adapter.Load(context.Background())
	require.Len(t, out.Chats, 1)
	require.Len(t, out.Messages["c1"], 1)

	gotMsg, wantMsg := out.Messages["c1"][0], in.Messages["c1"][0]
	assert.Equal(t, wantMsg.ID, gotMsg.ID)
	assert.Equal(t, wantMsg.Payload, gotMsg.Payload)
	assert.Equal(t, wantMsg.Status, gotMsg.Status)
	assert.Equal(t, wantMsg.Reactions, gotMsg.Reactions)

	// Timestamps must survive within a millisecond; RFC3339 nanos make
	// them exact.
	assert.True(t, wantMsg.CreatedAt.Equal(gotMsg.CreatedAt))
	require.NotNil(t, gotMsg.EditedAt)
	assert.True(t, wantMsg.EditedAt.Equal(*gotMsg.EditedAt))
	assert.True(t, in.Chats[0].LastActivity.Equal(out.Chats[0].LastActivity))
	assert.Equal(t, in.Chats[0].UnreadCount, out.Chats[0].UnreadCount)
	assert.Equal(t, in.Users, out.Users)
}

func TestLoadMissingYieldsEmpty(t *testing.T) {
	adapter := NewAdapter(NewMemoryStore(), logger.Nop())
	out := adapter.Load(context.Background())
	assert.True(t, out.Empty())
}

func TestLoadGarbageYieldsEmpty(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Set(context.Background(), snapshotKey, "{not json"))
	adapter := NewAdapter(store, logger.Nop())
	out := adapter.Load(context.Background())
	assert.True(t, out.Empty())
}

func TestSaveFailureIsReturned(t *testing.T) {
	store := NewMemoryStore()
	store.FailWrites = errors.New("disk full")
	adapter := NewAdapter(store, logger.Nop())
	err := adapter.Save(context.Background(), sampleSnapshot(t))
	assert.Error(t, err)
}
