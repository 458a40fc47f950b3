package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LockStore handles distributed locking in Redis.
type LockStore struct {
	client *redis.Client
}

// NewLockStore creates a new LockStore.
func NewLockStore(client *redis.Client) *LockStore {
	return &LockStore{client: client}
}

// AcquireConfirmLock attempts to acquire the payment-confirmation lock for a
// checkout session. Returns true if the lock was acquired, false if another
// confirmation is already in flight for the same session.
func (s *LockStore) AcquireConfirmLock(ctx context.Context, sessionID string, ttl time.Duration) (bool, error) {
	key := fmt.Sprintf("lock:confirm:%s", sessionID)

	ok, err := s.client.SetNX(ctx, key, "1", ttl).Result()
	if err != nil {
		return false, err
	}

	return ok, nil
}

// ReleaseConfirmLock releases the confirmation lock for a session.
func (s *LockStore) ReleaseConfirmLock(ctx context.Context, sessionID string) error {
	key := fmt.Sprintf("lock:confirm:%s", sessionID)

	return s.client.Del(ctx, key).Err()
}
