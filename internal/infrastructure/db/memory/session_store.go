// Package memory provides process-local implementations of the session and
// read-mark stores. They back tests and single-node development runs where
// no Redis is available; records do not survive a restart.
package memory

import (
	"context"
	"sync"

	"github.com/studentms/portal-gateway/internal/core/domain"
	"github.com/studentms/portal-gateway/internal/core/ports"
)

// SessionStores holds raw encoded records keyed by session ID. Keeping the
// bytes (rather than decoded structs) preserves the store contract exactly:
// corruption is possible and handled the same way the Redis store handles it.
type SessionStores struct {
	mu      sync.Mutex
	records map[string][]byte
	marks   map[string][]int64
}

func NewSessionStores() *SessionStores {
	return &SessionStores{
		records: make(map[string][]byte),
		marks:   make(map[string][]int64),
	}
}

// ForID returns the store bound to one session ID.
func (m *SessionStores) ForID(id string) ports.SessionStore {
	return &sessionStore{parent: m, key: id}
}

// SetRaw seeds a raw record. Test seam for exercising corrupted storage.
func (m *SessionStores) SetRaw(id string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[id] = data
}

// HasRecord reports whether any record (valid or not) exists for the ID.
func (m *SessionStores) HasRecord(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.records[id]
	return ok
}

type sessionStore struct {
	parent *SessionStores
	key    string
}

func (s *sessionStore) Load(_ context.Context) (*domain.Session, error) {
	s.parent.mu.Lock()
	defer s.parent.mu.Unlock()

	data, ok := s.parent.records[s.key]
	if !ok {
		return nil, nil
	}

	sess, err := domain.DecodeSession(data)
	if err != nil {
		delete(s.parent.records, s.key)
		return nil, nil
	}

	if normalized, err := sess.Encode(); err == nil {
		s.parent.records[s.key] = normalized
	}
	return sess, nil
}

func (s *sessionStore) Save(_ context.Context, session *domain.Session) error {
	data, err := session.Encode()
	if err != nil {
		return err
	}
	s.parent.mu.Lock()
	defer s.parent.mu.Unlock()
	s.parent.records[s.key] = data
	return nil
}

func (s *sessionStore) Clear(_ context.Context) error {
	s.parent.mu.Lock()
	defer s.parent.mu.Unlock()
	delete(s.parent.records, s.key)
	return nil
}

// ReadIDs implements ports.ReadMarkStore.
func (m *SessionStores) ReadIDs(_ context.Context, sessionID string) ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := m.marks[sessionID]
	out := make([]int64, len(ids))
	copy(out, ids)
	return out, nil
}

// MarkRead implements ports.ReadMarkStore.
func (m *SessionStores) MarkRead(_ context.Context, sessionID string, ids ...int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing := m.marks[sessionID]
	seen := make(map[int64]struct{}, len(existing))
	for _, id := range existing {
		seen[id] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			existing = append(existing, id)
		}
	}
	m.marks[sessionID] = existing
	return nil
}
