package ports

import (
	"context"

	"github.com/studentms/portal-gateway/internal/core/domain"
)

// SessionStore persists exactly one session record under a fixed storage
// key. Load returns (nil, nil) when no record exists; a corrupted record is
// cleared and likewise reported as absent rather than as an error.
type SessionStore interface {
	Load(ctx context.Context) (*domain.Session, error)
	Save(ctx context.Context, session *domain.Session) error
	Clear(ctx context.Context) error
}

// SessionStores resolves the store bound to one client context, identified
// by the opaque session-ID cookie.
type SessionStores interface {
	ForID(id string) SessionStore
}

// ReadMarkStore persists the set of announcement IDs a user has already
// read. It shares the storage mechanism of the session record but lives
// under a secondary key.
type ReadMarkStore interface {
	ReadIDs(ctx context.Context, sessionID string) ([]int64, error)
	MarkRead(ctx context.Context, sessionID string, ids ...int64) error
}
