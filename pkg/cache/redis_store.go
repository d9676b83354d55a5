package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore adapts a Redis client to the Store contract. Redis provides
// atomic per-key GET/SET/DEL, which satisfies the concurrency assumptions
// of Service without extra locking.
type RedisStore struct {
	client redis.UniversalClient
}

// NewRedisStore wraps an existing Redis client. The store does not own the
// client lifecycle; closing it is the caller's responsibility.
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

// Get reads the raw bytes for key. A missing key is a miss, not an error.
func (r *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

// Set stores value under key with the given TTL hint. A non-positive hint
// stores the value without Redis-side expiry.
func (r *RedisStore) Set(ctx context.Context, key string, value []byte, ttlHint time.Duration) error {
	if ttlHint < 0 {
		ttlHint = 0
	}
	return r.client.Set(ctx, key, value, ttlHint).Err()
}

// Delete removes key. Redis DEL on an absent key succeeds, preserving the
// idempotent-clear contract.
func (r *RedisStore) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}
