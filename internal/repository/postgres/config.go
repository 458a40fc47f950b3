package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"checkout/internal/repository"
)

// ConfigRepository is a PostgreSQL implementation of repository.ConfigRepository
// over the system_config key-value table.
type ConfigRepository struct {
	q Querier
}

// NewConfigRepository creates a new PostgreSQL config repository.
func NewConfigRepository(db *sql.DB) *ConfigRepository {
	return &ConfigRepository{q: db}
}

// GetValue retrieves the value for a single config key.
func (r *ConfigRepository) GetValue(ctx context.Context, key string) (string, error) {
	query := `SELECT value FROM system_config WHERE key = $1`

	var value string
	err := r.q.QueryRowContext(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", repository.ErrNotFound
		}
		return "", err
	}

	return value, nil
}

// GetValues retrieves the values for the given keys in one round trip.
// Missing keys are absent from the result map.
func (r *ConfigRepository) GetValues(ctx context.Context, keys []string) (map[string]string, error) {
	query := `SELECT key, value FROM system_config WHERE key = ANY($1)`

	rows, err := r.q.QueryContext(ctx, query, pq.Array(keys))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := make(map[string]string, len(keys))
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		values[key] = value
	}

	return values, rows.Err()
}
