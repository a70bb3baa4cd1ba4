package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "admin:session:"

// RedisStore is the Redis-backed session store. Keys carry the session
// TTL so abandoned sessions disappear on their own; the auth layer
// still checks login time explicitly on every read.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore creates a RedisStore with the given fixed session TTL.
func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func sessionKey(id string) string {
	return keyPrefix + id
}

// Create stores the session under a fresh identifier.
func (r *RedisStore) Create(ctx context.Context, s AdminSession) (string, error) {
	id := uuid.New().String()

	payload, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("marshal session: %w", err)
	}

	if err := r.rdb.Set(ctx, sessionKey(id), payload, r.ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}

	return id, nil
}

// Get loads the session for id, or ErrNotFound when absent.
func (r *RedisStore) Get(ctx context.Context, id string) (*AdminSession, error) {
	payload, err := r.rdb.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	var s AdminSession
	if err := json.Unmarshal(payload, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &s, nil
}

// Destroy removes the session. Deleting a missing key is a no-op.
func (r *RedisStore) Destroy(ctx context.Context, id string) error {
	if err := r.rdb.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}
