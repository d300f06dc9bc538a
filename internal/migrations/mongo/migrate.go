package mongo

import (
	bookingsrepo "bookit/internal/bookings/repository"
	experiencesrepo "bookit/internal/experiences/repository"
	"bookit/internal/migrations/mongo/validators"
	reconciliationrepo "bookit/internal/reconciliation/repository"
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ExperiencesIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "location", Value: 1}}},
	}

	BookingsIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "order_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("order_id_unique"),
		},
		{Keys: bson.D{
			{Key: "experience_id", Value: 1},
			{Key: "slot.date", Value: 1},
			{Key: "slot.time", Value: 1},
		}},
	}

	OrphanedCapacityIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "order_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("order_id_unique"),
		},
		{Keys: bson.D{
			{Key: "resolved", Value: 1},
			{Key: "detected_at", Value: -1},
		}},
	}
)

type collectionDef struct {
	Indexes   []mongo.IndexModel
	Validator bson.M
}

func collections() map[string]collectionDef {
	return map[string]collectionDef{
		experiencesrepo.CollectionName: {
			Indexes:   ExperiencesIndexes,
			Validator: validators.ExperienceValidator,
		},
		bookingsrepo.CollectionName: {
			Indexes:   BookingsIndexes,
			Validator: validators.BookingValidator,
		},
		reconciliationrepo.CollectionName: {
			Indexes:   OrphanedCapacityIndexes,
			Validator: validators.OrphanedCapacityValidator,
		},
	}
}

func RunMigration(ctx context.Context, db *mongo.Database) error {
	fmt.Printf("🚀 Running BookIt Mongo migrations on database: %s\n", db.Name())

	for name, def := range collections() {
		if err := ensureCollection(ctx, db, name, def.Validator); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", name, err)
		}
		if err := ensureIndexes(ctx, db, name, def.Indexes); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", name, err)
		}
	}

	fmt.Println("✅ All migrations applied successfully.")
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		fmt.Printf("🆕 Creating collection: %s\n", name)
		opts := options.CreateCollection().SetValidator(validator)
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
	} else {
		fmt.Printf("ℹ️ Collection %s already exists, updating validator if needed\n", name)
		command := bson.D{
			{Key: "collMod", Value: name},
			{Key: "validator", Value: validator},
		}
		if err := db.RunCommand(ctx, command).Err(); err != nil {
			fmt.Printf("⚠️ Warning: failed updating validator for %s: %v\n", name, err)
		}
	}

	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel) error {
	coll := db.Collection(name)
	_, err := coll.Indexes().CreateMany(ctx, models)
	if err != nil {
		return err
	}
	fmt.Printf("📚 Ensured indexes for %s\n", name)
	return nil
}
