package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultIdempotencyTTL = 24 * time.Hour

	// reservationTTL bounds how long a crashed create can hold its key.
	reservationTTL = time.Minute
	pendingMarker  = "pending"
)

// IdempotencyStore maps create-request idempotency keys to the ID of the
// record they produced. A key holds pendingMarker while its create is running.
// Key format: idempotency:<scope>:<key>
type IdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewIdempotencyStore wraps the given Redis client. A non-positive ttl falls back to 24h.
func NewIdempotencyStore(client *redis.Client, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = defaultIdempotencyTTL
	}
	return &IdempotencyStore{client: client, ttl: ttl}
}

// Reserve claims key with SETNX. Only the first caller gets true.
func (s *IdempotencyStore) Reserve(ctx context.Context, scope, key string) (bool, error) {
	ok, err := s.client.SetNX(ctx, s.key(scope, key), pendingMarker, reservationTTL).Result()
	if err != nil {
		return false, fmt.Errorf("idempotency reserve: %w", err)
	}
	return ok, nil
}

// Lookup returns the record ID stored under key. A pending reservation is reported as not found.
func (s *IdempotencyStore) Lookup(ctx context.Context, scope, key string) (string, bool, error) {
	id, err := s.client.Get(ctx, s.key(scope, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("idempotency lookup: %w", err)
	}
	if id == pendingMarker {
		return "", false, nil
	}
	return id, true, nil
}

// Remember binds key to the created record for the full TTL.
func (s *IdempotencyStore) Remember(ctx context.Context, scope, key, id string) error {
	if err := s.client.Set(ctx, s.key(scope, key), id, s.ttl).Err(); err != nil {
		return fmt.Errorf("idempotency remember: %w", err)
	}
	return nil
}

// Release drops key so a failed create can be retried with it.
func (s *IdempotencyStore) Release(ctx context.Context, scope, key string) error {
	if err := s.client.Del(ctx, s.key(scope, key)).Err(); err != nil {
		return fmt.Errorf("idempotency release: %w", err)
	}
	return nil
}

func (s *IdempotencyStore) key(scope, key string) string {
	return fmt.Sprintf("idempotency:%s:%s", scope, key)
}
