package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the tables and indexes if they don't exist.
// IDs are UUID strings generated by gen_random_uuid() (PostgreSQL 13+).
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	statements := []string{
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
				external_id TEXT NOT NULL UNIQUE,
				username TEXT NOT NULL DEFAULT '',
				display_name TEXT NOT NULL DEFAULT '',
				profile_url TEXT NOT NULL DEFAULT '',
				profile_pic TEXT NOT NULL DEFAULT '',
				project_ids TEXT[] NOT NULL DEFAULT '{}',
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`, tables.Users),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
				user_id TEXT NOT NULL REFERENCES %s(id),
				name VARCHAR(255) NOT NULL,
				tags TEXT[] NOT NULL DEFAULT '{}',
				task_ids TEXT[] NOT NULL DEFAULT '{}',
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`, tables.Projects, tables.Users),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
				project_id TEXT NOT NULL REFERENCES %s(id),
				user_id TEXT NOT NULL REFERENCES %s(id),
				content TEXT NOT NULL,
				resolved BOOLEAN NOT NULL DEFAULT FALSE,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`, tables.Tasks, tables.Projects, tables.Users),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %[1]s_user_created_idx ON %[1]s (user_id, created_at)`, tables.Projects),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %[1]s_tags_idx ON %[1]s USING GIN (tags)`, tables.Projects),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %[1]s_project_idx ON %[1]s (project_id, created_at)`, tables.Tasks),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %[1]s_user_idx ON %[1]s (user_id)`, tables.Tasks),
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

// DropSchema drops all tables, children first.
func DropSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	for _, table := range []string{tables.Tasks, tables.Projects, tables.Users} {
		if _, err := pool.Exec(ctx, fmt.Sprintf(`DROP TABLE IF EXISTS %s CASCADE`, table)); err != nil {
			return fmt.Errorf("drop %s: %w", table, err)
		}
	}
	return nil
}

// ClearData deletes all rows but keeps the schema.
func ClearData(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	query := fmt.Sprintf(`TRUNCATE %s, %s, %s`, tables.Tasks, tables.Projects, tables.Users)
	if _, err := pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("clear data: %w", err)
	}
	return nil
}
