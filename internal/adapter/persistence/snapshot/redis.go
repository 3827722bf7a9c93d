package snapshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"credito_tributario/internal/usecase/interfaces"

	"github.com/redis/go-redis/v9"
)

// RedisStorage keeps snapshots as plain Redis strings. A zero ttl keeps
// entries forever.
type RedisStorage struct {
	client *redis.Client
	ttl    time.Duration
}

var _ interfaces.ISnapshotStorage = (*RedisStorage)(nil)

func NewRedisStorage(addr, password string, db int, ttl time.Duration) *RedisStorage {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisStorage{client: rdb, ttl: ttl}
}

func (s *RedisStorage) Load(ctx context.Context, key string) ([]byte, error) {
	payload, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return payload, nil
}

func (s *RedisStorage) Save(ctx context.Context, key string, payload []byte) error {
	if err := s.client.Set(ctx, key, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Ping checks the connection at startup.
func (s *RedisStorage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStorage) Close() error { return s.client.Close() }
