package storage

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"ember-chat/internal/domain"
	"ember-chat/pkg/logger"
)

// snapshotKey is the single blob under which the whole store lives.
const snapshotKey = "emberchat:snapshot:v1"

// Snapshot is the persisted image of the engine state. Timestamps are
// serialized as RFC3339 with nanoseconds, so round-trips are exact.
type Snapshot struct {
	Chats    []domain.Chat               `json:"chats"`
	Messages map[string][]domain.Message `json:"messages"`
	Users    []domain.User               `json:"users"`
	SavedAt  time.Time                   `json:"saved_at"`
}

// Empty reports whether the snapshot carries no state.
func (s Snapshot) Empty() bool {
	return len(s.Chats) == 0 && len(s.Messages) == 0 && len(s.Users) == 0
}

// Adapter marshals snapshots in and out of a BlobStore.
type Adapter struct {
	store BlobStore
	log   *logger.Logger
}

func NewAdapter(store BlobStore, log *logger.Logger) *Adapter {
	return &Adapter{store: store, log: log}
}

// Save writes the snapshot. A failure is logged and returned, but the
// caller keeps its in-memory state either way; the next successful save
// reconciles.
func (a *Adapter) Save(ctx context.Context, snap Snapshot) error {
	snap.SavedAt = time.Now()
	data, err := json.Marshal(snap)
	if err != nil {
		a.log.Error("snapshot_marshal_failed", zap.Error(err))
		return err
	}
	if err := a.store.Set(ctx, snapshotKey, string(data)); err != nil {
		a.log.Error("snapshot_save_failed", zap.Error(err))
		return err
	}
	a.log.Debug("snapshot_saved",
		zap.Int("chats", len(snap.Chats)),
		zap.Int("bytes", len(data)))
	return nil
}

// Load reads the last snapshot. A missing key or an undecodable blob
// yields an empty snapshot, never an error: startup always succeeds.
func (a *Adapter) Load(ctx context.Context) Snapshot {
	data, ok, err := a.store.Get(ctx, snapshotKey)
	if err != nil {
		a.log.Error("snapshot_load_failed", zap.Error(err))
		return Snapshot{}
	}
	if !ok {
		return Snapshot{}
	}
	var snap Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		a.log.Error("snapshot_decode_failed", zap.Error(err))
		return Snapshot{}
	}
	return snap
}
