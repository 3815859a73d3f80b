package storage

import (
	"context"
	"errors"

	"github.com/cockroachdb/pebble"
)

// PebbleStore is the default BlobStore backend: an embedded Pebble
// database, suitable for a single-process on-device store.
type PebbleStore struct {
	db *pebble.DB
}

// OpenPebble opens (or creates) a Pebble database at path.
func OpenPebble(path string) (*PebbleStore, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, err
	}
	return &PebbleStore{db: db}, nil
}

func (s *PebbleStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, closer, err := s.db.Get([]byte(key))
	if errors.Is(err, pebble.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	out := string(value)
	if cerr := closer.Close(); cerr != nil {
		return "", false, cerr
	}
	return out, true, nil
}

func (s *PebbleStore) Set(ctx context.Context, key, value string) error {
	return s.db.Set([]byte(key), []byte(value), pebble.Sync)
}

func (s *PebbleStore) Close() error {
	return s.db.Close()
}
