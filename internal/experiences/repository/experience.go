package repository

import (
	experienceserrors "bookit/internal/experiences/errors"
	"bookit/pkg/config"
	"bookit/pkg/model"
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Experiences"
)

type ExperienceRepository interface {
	FindAll(ctx context.Context) ([]*model.Experience, error)
	FindByID(ctx context.Context, id string) (*model.Experience, error)
	ReserveSeats(ctx context.Context, id string, slot model.Slot, quantity int) (*model.Experience, error)
	InsertMany(ctx context.Context, experiences []*model.Experience) ([]string, error)
	Count(ctx context.Context) (int64, error)
}

type mongoExperienceRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoExperienceRepository(cfg *config.Config) ExperienceRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoExperienceRepository{
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

func (r *mongoExperienceRepository) FindAll(ctx context.Context) ([]*model.Experience, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find experiences: %w", err)
	}
	defer cursor.Close(ctx)

	var experiences []*model.Experience
	if err = cursor.All(ctx, &experiences); err != nil {
		return nil, fmt.Errorf("failed to decode experiences: %w", err)
	}

	return experiences, nil
}

func (r *mongoExperienceRepository) FindByID(ctx context.Context, id string) (*model.Experience, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", experienceserrors.ErrInvalidID, id)
	}

	var experience model.Experience
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&experience)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, experienceserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find experience: %w", err)
	}

	return &experience, nil
}

// ReserveSeats increments the booked counter of one slot by quantity in a
// single conditional update. The filter pins the slot's capacity as read, and
// requires booked <= capacity - quantity, so concurrent callers can never push
// booked past capacity. It returns the experience after the update, or
// ErrConditionFailed when no slot satisfied the condition.
func (r *mongoExperienceRepository) ReserveSeats(ctx context.Context, id string, slot model.Slot, quantity int) (*model.Experience, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", experienceserrors.ErrInvalidID, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated model.Experience
	err = r.collection.FindOneAndUpdate(ctx,
		ReserveFilter(objectID, slot, quantity),
		ReserveUpdate(quantity),
		opts,
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, experienceserrors.ErrConditionFailed
		}
		return nil, fmt.Errorf("failed to reserve seats: %w", err)
	}

	return &updated, nil
}

// ReserveFilter matches the experience only while the slot still has room
// for quantity more seats.
func ReserveFilter(id primitive.ObjectID, slot model.Slot, quantity int) bson.M {
	return bson.M{
		"_id": id,
		"slots": bson.M{
			"$elemMatch": bson.M{
				"date":     slot.Date,
				"time":     slot.Time,
				"capacity": slot.Capacity,
				"booked":   bson.M{"$lte": slot.Capacity - quantity},
			},
		},
	}
}

// ReserveUpdate targets the array element matched by ReserveFilter.
func ReserveUpdate(quantity int) bson.M {
	return bson.M{"$inc": bson.M{"slots.$.booked": quantity}}
}

func (r *mongoExperienceRepository) InsertMany(ctx context.Context, experiences []*model.Experience) ([]string, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	docs := make([]any, 0, len(experiences))
	for _, e := range experiences {
		docs = append(docs, e)
	}

	result, err := r.collection.InsertMany(ctx, docs)
	if err != nil {
		return nil, fmt.Errorf("failed to insert experiences: %w", err)
	}

	ids := make([]string, 0, len(result.InsertedIDs))
	for i, id := range result.InsertedIDs {
		if oid, ok := id.(primitive.ObjectID); ok {
			experiences[i].ID = oid.Hex()
			ids = append(ids, oid.Hex())
		}
	}
	return ids, nil
}

func (r *mongoExperienceRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count experiences: %w", err)
	}
	return count, nil
}
