package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBTX is implemented by both *pgxpool.Pool and pgx.Tx so repositories can
// run the same statements inside or outside a transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, arguments ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, arguments ...interface{}) pgx.Row
}

type txContextKey struct{}

// withTx stores a transaction in the context
func withTx(ctx context.Context, tx pgx.Tx) context.Context {
	return context.WithValue(ctx, txContextKey{}, tx)
}

// txFrom retrieves the transaction stored in ctx, or nil
func txFrom(ctx context.Context) pgx.Tx {
	tx, _ := ctx.Value(txContextKey{}).(pgx.Tx)
	return tx
}

// GetExecutor returns the transaction carried by ctx, or the pool when there is none.
func GetExecutor(ctx context.Context, pool *pgxpool.Pool) DBTX {
	if tx := txFrom(ctx); tx != nil {
		return tx
	}
	return pool
}

// scanner is satisfied by pgx.Row and pgx.Rows
type scanner interface {
	Scan(dest ...any) error
}
