package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/studentms/portal-gateway/internal/core/domain"
	"github.com/studentms/portal-gateway/internal/core/ports"
)

// SessionStores hands out per-client session stores. Each store is bound to
// exactly one Redis key derived from the client's session ID.
type SessionStores struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewSessionStores(client *redis.Client, prefix string, ttl time.Duration) *SessionStores {
	if prefix == "" {
		prefix = "portal"
	}
	return &SessionStores{client: client, prefix: prefix, ttl: ttl}
}

// ForID returns the store for one session-ID cookie value.
func (s *SessionStores) ForID(id string) ports.SessionStore {
	return &sessionStore{
		client: s.client,
		key:    fmt.Sprintf("%s:session:%s", s.prefix, id),
		ttl:    s.ttl,
	}
}

type sessionStore struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// Load reads and decodes the persisted record. A corrupted record is
// deleted and reported as absent: storage corruption means logged out, not
// an error the caller has to handle. Decoding re-normalizes the roles and
// the normalized record is persisted back, so later reads see the canonical
// shape.
func (s *sessionStore) Load(ctx context.Context) (*domain.Session, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session load: %w", err)
	}

	sess, err := domain.DecodeSession(data)
	if err != nil {
		_ = s.client.Del(ctx, s.key).Err()
		return nil, nil
	}

	if normalized, err := sess.Encode(); err == nil {
		_ = s.client.Set(ctx, s.key, normalized, redis.KeepTTL).Err()
	}
	return sess, nil
}

func (s *sessionStore) Save(ctx context.Context, session *domain.Session) error {
	data, err := session.Encode()
	if err != nil {
		return fmt.Errorf("session encode: %w", err)
	}
	if err := s.client.Set(ctx, s.key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("session save: %w", err)
	}
	return nil
}

func (s *sessionStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("session clear: %w", err)
	}
	return nil
}
