package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/workfusion/workforce-system/internal/core/domain"
)

const collectionOutbox = "notification_outbox"

// OutboxRepository persists notification intents. The entry id is assigned
// by the dispatcher before the append, so a retried append is an upsert of
// the same document rather than a duplicate.
type OutboxRepository struct {
	col *mongo.Collection
}

func NewOutboxRepository(db *mongo.Database) *OutboxRepository {
	return &OutboxRepository{col: db.Collection(collectionOutbox)}
}

// Append records a pending notification intent.
func (r *OutboxRepository) Append(ctx context.Context, e *domain.OutboxEntry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.ReplaceOne(ctx,
		bson.M{"_id": e.ID},
		e,
		options.Replace().SetUpsert(true),
	)
	return err
}

// MarkDispatched flags the entry as delivered.
func (r *OutboxRepository) MarkDispatched(ctx context.Context, id string, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"status":        domain.OutboxDispatched,
			"dispatched_at": at,
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}

// ListPending returns up to limit undelivered entries, oldest first. The
// sweeper feeds these back into the dispatcher after a crash or a delivery
// failure.
func (r *OutboxRepository) ListPending(ctx context.Context, limit int) ([]*domain.OutboxEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	if limit > 0 {
		opts = opts.SetLimit(int64(limit))
	}

	cur, err := r.col.Find(ctx, bson.M{"status": domain.OutboxPending}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*domain.OutboxEntry
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// EnsureIndexes creates the sweeper scan index.
func (r *OutboxRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: 1}},
	})
	return err
}
