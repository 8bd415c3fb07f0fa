package worker

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// LiveStore is the live side of the event sink: a pub/sub channel for
// dashboards and per-kind counters.
type LiveStore interface {
	Publish(ctx context.Context, channel string, message interface{}) error
	Incr(ctx context.Context, key string) (int64, error)
}

// RedisLiveStore implements LiveStore using Redis
type RedisLiveStore struct {
	client *redis.Client
}

// NewRedisLiveStore wraps a Redis client.
func NewRedisLiveStore(client *redis.Client) *RedisLiveStore {
	return &RedisLiveStore{client: client}
}

func (s *RedisLiveStore) Publish(ctx context.Context, channel string, message interface{}) error {
	return s.client.Publish(ctx, channel, message).Err()
}

func (s *RedisLiveStore) Incr(ctx context.Context, key string) (int64, error) {
	return s.client.Incr(ctx, key).Result()
}
