// Package storage persists the engine's full chat and message set as a
// single blob in a string key/value store. The in-memory state remains
// the source of truth; persistence is fire-and-forget.
package storage

import "context"

// BlobStore is the minimal contract the engine needs from durable
// storage: get/set a string value by key.
type BlobStore interface {
	// Get returns the value for key and whether the key existed.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set writes the value for key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	Close() error
}
