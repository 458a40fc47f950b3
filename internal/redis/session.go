package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"checkout/internal/domain"
)

// SessionStore holds in-progress checkout sessions in Redis. Sessions are
// ephemeral: the TTL discards abandoned flows without any cleanup job.
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a new SessionStore.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// SessionTTL is how long an abandoned checkout session survives.
const SessionTTL = 30 * time.Minute

const sessionPrefix = "checkout:session:"

// Get retrieves a checkout session. Returns nil when the session does not
// exist or has expired.
func (s *SessionStore) Get(ctx context.Context, id string) (*domain.CheckoutSession, error) {
	data, err := s.client.Get(ctx, sessionPrefix+id).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var session domain.CheckoutSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Save stores a checkout session, refreshing its TTL.
func (s *SessionStore) Save(ctx context.Context, session *domain.CheckoutSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionPrefix+session.ID, data, SessionTTL).Err()
}

// Delete removes a checkout session.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, sessionPrefix+id).Err()
}
