package session

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9" // Redis client
)

// keyPrefix scopes the session region inside the shared Redis database.
const keyPrefix = "session:"

// RedisKV is the production session storage: a small key-value region in
// Redis that survives process restarts.
type RedisKV struct {
	rdb *redis.Client
}

// NewRedisKV creates session storage over an existing Redis client.
func NewRedisKV(rdb *redis.Client) *RedisKV {
	return &RedisKV{rdb: rdb}
}

func (r *RedisKV) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.rdb.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil // Key does not exist
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (r *RedisKV) Set(ctx context.Context, key, value string) error {
	return r.rdb.Set(ctx, keyPrefix+key, value, 0).Err()
}

func (r *RedisKV) Del(ctx context.Context, keys ...string) error {
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = keyPrefix + k
	}
	return r.rdb.Del(ctx, prefixed...).Err()
}
