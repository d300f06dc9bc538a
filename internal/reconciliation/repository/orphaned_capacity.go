package repository

import (
	"bookit/pkg/config"
	"bookit/pkg/model"
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Orphaned_capacity"
)

type OrphanedCapacityRepository interface {
	Upsert(ctx context.Context, orphan *model.OrphanedCapacity) (bool, error)
	FindUnresolved(ctx context.Context, limit int64) ([]*model.OrphanedCapacity, error)
}

type mongoOrphanedCapacityRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoOrphanedCapacityRepository(cfg *config.Config) OrphanedCapacityRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoOrphanedCapacityRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < timeout {
		return context.WithDeadline(ctx, deadline)
	}
	return context.WithTimeout(ctx, timeout)
}

// Upsert stores orphan once per order id. A redelivered event leaves the
// first record untouched. It reports whether a new record was created.
func (r *mongoOrphanedCapacityRepository) Upsert(ctx context.Context, orphan *model.OrphanedCapacity) (bool, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	opts := options.Update().SetUpsert(true)
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"order_id": orphan.OrderID},
		UpsertUpdate(orphan),
		opts,
	)
	if err != nil {
		return false, fmt.Errorf("failed to upsert orphaned capacity: %w", err)
	}
	return result.UpsertedCount > 0, nil
}

// UpsertUpdate only writes on insert.
func UpsertUpdate(orphan *model.OrphanedCapacity) bson.M {
	return bson.M{
		"$setOnInsert": bson.M{
			"experience_id": orphan.ExperienceID,
			"slot":          orphan.Slot,
			"quantity":      orphan.Quantity,
			"reason":        orphan.Reason,
			"detected_at":   orphan.DetectedAt.UTC().Truncate(time.Millisecond),
			"resolved":      false,
		},
	}
}

func (r *mongoOrphanedCapacityRepository) FindUnresolved(ctx context.Context, limit int64) ([]*model.OrphanedCapacity, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "detected_at", Value: -1}}).
		SetLimit(limit)
	cursor, err := r.collection.Find(ctx, bson.M{"resolved": false}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find orphaned capacity: %w", err)
	}
	defer cursor.Close(ctx)

	var orphans []*model.OrphanedCapacity
	if err = cursor.All(ctx, &orphans); err != nil {
		return nil, fmt.Errorf("failed to decode orphaned capacity: %w", err)
	}
	return orphans, nil
}
