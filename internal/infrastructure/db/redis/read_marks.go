package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ReadMarks stores the announcement IDs a user has read as a JSON list
// under a secondary key, mirroring the layout of the session record.
type ReadMarks struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewReadMarks(client *redis.Client, prefix string, ttl time.Duration) *ReadMarks {
	if prefix == "" {
		prefix = "portal"
	}
	return &ReadMarks{client: client, prefix: prefix, ttl: ttl}
}

func (r *ReadMarks) key(sessionID string) string {
	return fmt.Sprintf("%s:read_announcements:%s", r.prefix, sessionID)
}

// ReadIDs returns the recorded IDs. A missing or corrupted record yields an
// empty list.
func (r *ReadMarks) ReadIDs(ctx context.Context, sessionID string) ([]int64, error) {
	data, err := r.client.Get(ctx, r.key(sessionID)).Bytes()
	if err == redis.Nil {
		return []int64{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read marks load: %w", err)
	}

	var ids []int64
	if err := json.Unmarshal(data, &ids); err != nil {
		_ = r.client.Del(ctx, r.key(sessionID)).Err()
		return []int64{}, nil
	}
	return ids, nil
}

// MarkRead merges the given IDs into the stored list, dropping duplicates.
func (r *ReadMarks) MarkRead(ctx context.Context, sessionID string, ids ...int64) error {
	existing, err := r.ReadIDs(ctx, sessionID)
	if err != nil {
		return err
	}

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

	data, err := json.Marshal(existing)
	if err != nil {
		return fmt.Errorf("read marks encode: %w", err)
	}
	if err := r.client.Set(ctx, r.key(sessionID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("read marks save: %w", err)
	}
	return nil
}
