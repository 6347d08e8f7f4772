package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the collections' indexes if they don't exist.
func EnsureIndexes(ctx context.Context, db *mongo.Database, names *CollectionNames) error {
	specs := map[string][]mongo.IndexModel{
		names.Users: {
			{Keys: bson.D{{Key: "externalId", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		names.Projects: {
			{Keys: bson.D{{Key: "user", Value: 1}, {Key: "createdAt", Value: 1}}},
			{Keys: bson.D{{Key: "user", Value: 1}, {Key: "tags", Value: 1}}},
		},
		names.Tasks: {
			{Keys: bson.D{{Key: "projectId", Value: 1}, {Key: "createdAt", Value: 1}}},
			{Keys: bson.D{{Key: "userId", Value: 1}}},
		},
	}

	for collection, models := range specs {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", collection, err)
		}
	}
	return nil
}

// DropCollections drops every collection.
func DropCollections(ctx context.Context, db *mongo.Database, names *CollectionNames) error {
	for _, collection := range []string{names.Tasks, names.Projects, names.Users} {
		if err := db.Collection(collection).Drop(ctx); err != nil {
			return fmt.Errorf("drop %s: %w", collection, err)
		}
	}
	return nil
}

// ClearData deletes all documents but keeps collections and indexes.
func ClearData(ctx context.Context, db *mongo.Database, names *CollectionNames) error {
	for _, collection := range []string{names.Tasks, names.Projects, names.Users} {
		if _, err := db.Collection(collection).DeleteMany(ctx, bson.M{}); err != nil {
			return fmt.Errorf("clear %s: %w", collection, err)
		}
	}
	return nil
}
