package repository

import "context"

// ConfigRepository defines read access to the system_config key-value store.
type ConfigRepository interface {
	// GetValue retrieves the value for a single config key.
	GetValue(ctx context.Context, key string) (string, error)

	// GetValues retrieves the values for the given keys. Missing keys are
	// simply absent from the result map, not an error.
	GetValues(ctx context.Context, keys []string) (map[string]string, error)
}
