package redis

import (
	"context"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/taskforge/backend/repository"
)

type cacheRepository struct {
	client *redislib.Client
	ttl    time.Duration
}

// NewCacheRepository creates a Redis-backed invalidation-on-write cache.
// The ttl is the fallback expiry used when callers pass a non-positive one.
func NewCacheRepository(client *redislib.Client, ttl time.Duration) repository.Cache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &cacheRepository{client: client, ttl: ttl}
}

func (r *cacheRepository) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redislib.Nil {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

func (r *cacheRepository) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = r.ttl
	}
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *cacheRepository) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}
