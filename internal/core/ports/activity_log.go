package ports

import (
	"context"

	"github.com/studentms/portal-gateway/internal/core/domain"
)

// ActivityLog records and reads back the authentication audit trail.
type ActivityLog interface {
	Record(ctx context.Context, entry domain.ActivityEntry) error
	Recent(ctx context.Context, limit int64) ([]domain.ActivityEntry, error)
}
