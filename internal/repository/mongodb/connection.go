package mongodb

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// RepositoryConfig holds configuration for repository implementations
type RepositoryConfig struct {
	DB          *mongo.Database
	Collections *CollectionNames
	Logger      *slog.Logger
}

// CollectionNames holds prefixed collection names, mirroring the SQL table prefix
type CollectionNames struct {
	Users    string
	Projects string
	Tasks    string
}

// NewCollectionNames creates collection names with the given prefix
func NewCollectionNames(prefix string) *CollectionNames {
	return &CollectionNames{
		Users:    prefix + "users",
		Projects: prefix + "projects",
		Tasks:    prefix + "tasks",
	}
}

// Connect opens a client and verifies the primary is reachable.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(25).
		SetMinPoolSize(5).
		SetServerSelectionTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return client, nil
}
