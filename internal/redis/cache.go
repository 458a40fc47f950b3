package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConfigCacheStore caches system_config values in Redis so price lookups do
// not hit PostgreSQL on every checkout.
type ConfigCacheStore struct {
	client *redis.Client
}

// NewConfigCacheStore creates a new ConfigCacheStore.
func NewConfigCacheStore(client *redis.Client) *ConfigCacheStore {
	return &ConfigCacheStore{client: client}
}

// ConfigCacheTTL bounds staleness of config-driven prices.
const ConfigCacheTTL = 5 * time.Minute

const configCachePrefix = "cache:config:"

// Get retrieves a cached config value. The second return value reports a hit.
func (s *ConfigCacheStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, configCachePrefix+key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", false, nil // Cache miss
		}
		return "", false, err
	}
	return value, true, nil
}

// Set stores a config value in cache.
func (s *ConfigCacheStore) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, configCachePrefix+key, value, ConfigCacheTTL).Err()
}

// GetMany retrieves multiple config values from cache using a pipeline.
// Returns the hits and the list of missing keys.
func (s *ConfigCacheStore) GetMany(ctx context.Context, keys []string) (map[string]string, []string, error) {
	if len(keys) == 0 {
		return make(map[string]string), nil, nil
	}

	pipe := s.client.Pipeline()
	cmds := make(map[string]*redis.StringCmd, len(keys))
	for _, key := range keys {
		cmds[key] = pipe.Get(ctx, configCachePrefix+key)
	}

	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, keys, err
	}

	result := make(map[string]string)
	var missing []string
	for key, cmd := range cmds {
		value, err := cmd.Result()
		if err != nil {
			missing = append(missing, key)
			continue
		}
		result[key] = value
	}

	return result, missing, nil
}

// SetMany stores multiple config values in cache using a pipeline.
func (s *ConfigCacheStore) SetMany(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}

	pipe := s.client.Pipeline()
	for key, value := range values {
		pipe.Set(ctx, configCachePrefix+key, value, ConfigCacheTTL)
	}

	_, err := pipe.Exec(ctx)
	return err
}

// Invalidate removes a config value from cache.
func (s *ConfigCacheStore) Invalidate(ctx context.Context, key string) error {
	return s.client.Del(ctx, configCachePrefix+key).Err()
}
