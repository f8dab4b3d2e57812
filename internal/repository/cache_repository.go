package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned by Get when the key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

// CacheRepository stores JSON values in Redis with a TTL.
type CacheRepository struct {
	redisClient *redis.Client
	prefix      string
}

func NewCacheRepository(redisClient *redis.Client, prefix string) *CacheRepository {
	return &CacheRepository{
		redisClient: redisClient,
		prefix:      prefix,
	}
}

func (r *CacheRepository) key(key string) string {
	return r.prefix + ":" + key
}

func (r *CacheRepository) Get(ctx context.Context, key string, dest any) error {
	data, err := r.redisClient.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return fmt.Errorf("failed to read cache key %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to decode cache key %s: %w", key, err)
	}
	return nil
}

func (r *CacheRepository) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache value: %w", err)
	}
	return r.redisClient.Set(ctx, r.key(key), data, expiration).Err()
}
