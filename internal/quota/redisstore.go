package quota

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists quota records as JSON strings in Redis.
type RedisStore struct {
	rdb redis.Cmdable
}

// NewRedisStore creates a Redis-backed quota Store.
func NewRedisStore(rdb redis.Cmdable) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Get(ctx context.Context, key string) (*DailyQuota, error) {
	val, err := s.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading quota %s: %w", key, err)
	}

	var q DailyQuota
	if err := json.Unmarshal([]byte(val), &q); err != nil {
		// A corrupt record resets the counter instead of blocking the user.
		slog.Warn("quota: discarding unparseable record", "key", key, "error", err)
		return nil, nil
	}
	return &q, nil
}

func (s *RedisStore) Put(ctx context.Context, key string, q *DailyQuota, ttl time.Duration) error {
	data, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("marshaling quota: %w", err)
	}
	if err := s.rdb.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("writing quota %s: %w", key, err)
	}
	return nil
}
