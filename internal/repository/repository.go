// Package repository opens the configured storage backend and exposes its
// repositories behind the domain interfaces.
package repository

import (
	"context"
	"fmt"
	"log/slog"

	"taskdeck/internal/config"
	"taskdeck/internal/domain/repositories"
	"taskdeck/internal/repository/mongodb"
	"taskdeck/internal/repository/postgres"
)

// Store bundles the repositories of one backend.
type Store struct {
	Driver   string
	Projects repositories.ProjectRepository
	Tasks    repositories.TaskRepository
	Users    repositories.UserRepository
	Tx       repositories.TransactionManager

	ensureSchema func(ctx context.Context) error
	drop         func(ctx context.Context) error
	clear        func(ctx context.Context) error
	close        func(ctx context.Context) error
}

// Open connects to the backend selected by cfg.StorageDriver.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Store, error) {
	switch cfg.StorageDriver {
	case config.DriverPostgres:
		return openPostgres(ctx, cfg, logger)
	case config.DriverMongo:
		return openMongo(ctx, cfg, logger)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

func openPostgres(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Store, error) {
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	tables := postgres.NewTableNames(cfg.TablePrefix)
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}

	return &Store{
		Driver:   config.DriverPostgres,
		Projects: postgres.NewProjectRepository(repoConfig),
		Tasks:    postgres.NewTaskRepository(repoConfig),
		Users:    postgres.NewUserRepository(repoConfig),
		Tx:       postgres.NewTransactionManager(pool, logger),

		ensureSchema: func(ctx context.Context) error { return postgres.EnsureSchema(ctx, pool, tables) },
		drop:         func(ctx context.Context) error { return postgres.DropSchema(ctx, pool, tables) },
		clear:        func(ctx context.Context) error { return postgres.ClearData(ctx, pool, tables) },
		close: func(context.Context) error {
			pool.Close()
			return nil
		},
	}, nil
}

func openMongo(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Store, error) {
	client, err := mongodb.Connect(ctx, cfg.MongoURL)
	if err != nil {
		return nil, err
	}

	db := client.Database(cfg.MongoDatabase)
	names := mongodb.NewCollectionNames(cfg.TablePrefix)
	repoConfig := &mongodb.RepositoryConfig{
		DB:          db,
		Collections: names,
		Logger:      logger,
	}

	return &Store{
		Driver:   config.DriverMongo,
		Projects: mongodb.NewProjectRepository(repoConfig),
		Tasks:    mongodb.NewTaskRepository(repoConfig),
		Users:    mongodb.NewUserRepository(repoConfig),
		Tx:       mongodb.NewTransactionManager(client, cfg.MongoTransactions, logger),

		ensureSchema: func(ctx context.Context) error { return mongodb.EnsureIndexes(ctx, db, names) },
		drop:         func(ctx context.Context) error { return mongodb.DropCollections(ctx, db, names) },
		clear:        func(ctx context.Context) error { return mongodb.ClearData(ctx, db, names) },
		close:        client.Disconnect,
	}, nil
}

// EnsureSchema creates tables (postgres) or indexes (mongo) if missing.
func (s *Store) EnsureSchema(ctx context.Context) error { return s.ensureSchema(ctx) }

// Drop removes all tables or collections.
func (s *Store) Drop(ctx context.Context) error { return s.drop(ctx) }

// Clear deletes all data and keeps the schema.
func (s *Store) Clear(ctx context.Context) error { return s.clear(ctx) }

// Close releases the backend connections.
func (s *Store) Close(ctx context.Context) error { return s.close(ctx) }
