package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/your-org/storefront/internal/infrastructure/storage"
)

const keyPrefix = "storefront:"

// Storage implements storage.Adapter on top of Redis strings
type Storage struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewStorage creates a Redis-backed adapter. A zero ttl keeps keys forever.
func NewStorage(rdb *redis.Client, ttl time.Duration) *Storage {
	return &Storage{rdb: rdb, ttl: ttl}
}

// Get retrieves a value by key
func (s *Storage) Get(ctx context.Context, key string) (string, error) {
	val, err := s.rdb.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", storage.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// Set stores a value, refreshing the expiration when one is configured
func (s *Storage) Set(ctx context.Context, key, value string) error {
	return s.rdb.Set(ctx, keyPrefix+key, value, s.ttl).Err()
}
