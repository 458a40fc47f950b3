package redis

import (
	"context"
	"time"

	"checkout/internal/domain"
)

// SessionStoreInterface defines the interface for checkout session storage.
type SessionStoreInterface interface {
	Get(ctx context.Context, id string) (*domain.CheckoutSession, error)
	Save(ctx context.Context, session *domain.CheckoutSession) error
	Delete(ctx context.Context, id string) error
}

// LockStoreInterface defines the interface for distributed locking.
type LockStoreInterface interface {
	AcquireConfirmLock(ctx context.Context, sessionID string, ttl time.Duration) (bool, error)
	ReleaseConfirmLock(ctx context.Context, sessionID string) error
}

// ConfigCacheInterface defines the interface for config value caching.
type ConfigCacheInterface interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	GetMany(ctx context.Context, keys []string) (map[string]string, []string, error)
	SetMany(ctx context.Context, values map[string]string) error
}

// Ensure concrete types implement interfaces.
var (
	_ SessionStoreInterface = (*SessionStore)(nil)
	_ LockStoreInterface    = (*LockStore)(nil)
	_ ConfigCacheInterface  = (*ConfigCacheStore)(nil)
)
