package storage

import (
	"context"

	goredis "github.com/redis/go-redis/v9"
)

// RedisStore is a BlobStore backend on a Redis server, for deployments
// where the snapshot should survive the device.
type RedisStore struct {
	client *goredis.Client
}

// NewRedisStore connects a BlobStore to the given Redis instance.
func NewRedisStore(addr, password string, db int) *RedisStore {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, key).Result()
	if err == goredis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, key, value, 0).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
