package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/studentms/portal-gateway/internal/core/domain"
)

const activityCollection = "activity_logs"

// ActivityRepository persists the authentication audit trail.
type ActivityRepository struct {
	coll *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{coll: db.Collection(activityCollection)}
}

type mongoActivity struct {
	ID       string `bson:"_id"`
	Username string `bson:"username"`
	Action   string `bson:"action"`
	Detail   string `bson:"detail,omitempty"`
	At       int64  `bson:"at"`
}

func (r *ActivityRepository) Record(ctx context.Context, entry domain.ActivityEntry) error {
	doc := mongoActivity{
		ID:       entry.ID,
		Username: entry.Username,
		Action:   entry.Action,
		Detail:   entry.Detail,
		At:       entry.At.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

// Recent returns the newest entries, most recent first.
func (r *ActivityRepository) Recent(ctx context.Context, limit int64) ([]domain.ActivityEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	opts := options.Find().SetSort(bson.D{{Key: "at", Value: -1}}).SetLimit(limit)
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find activity: %w", err)
	}
	defer cur.Close(ctx)

	var entries []domain.ActivityEntry
	for cur.Next(ctx) {
		var doc mongoActivity
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode activity: %w", err)
		}
		entries = append(entries, domain.ActivityEntry{
			ID:       doc.ID,
			Username: doc.Username,
			Action:   doc.Action,
			Detail:   doc.Detail,
			At:       time.Unix(doc.At, 0).UTC(),
		})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate activity: %w", err)
	}
	return entries, nil
}
