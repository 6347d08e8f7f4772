package mongodb

import (
	"context"
	"fmt"
	"log/slog"

	"taskdeck/internal/domain/repositories"

	"go.mongodb.org/mongo-driver/mongo"
)

// TransactionManager runs units of work inside a MongoDB session transaction.
// Transactions need a replica set; with enabled=false the work runs unwrapped.
type TransactionManager struct {
	client  *mongo.Client
	enabled bool
	logger  *slog.Logger
}

// NewTransactionManager creates a new transaction manager
func NewTransactionManager(client *mongo.Client, enabled bool, logger *slog.Logger) repositories.TransactionManager {
	if !enabled {
		logger.Warn("mongo transactions disabled, multi-step writes are not atomic")
	}
	return &TransactionManager{client: client, enabled: enabled, logger: logger}
}

// ExecTx executes fn within a transaction. The session context handed to fn
// makes every collection call made with it part of the transaction.
func (tm *TransactionManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	if !tm.enabled || mongo.SessionFromContext(ctx) != nil {
		return fn(ctx)
	}

	session, err := tm.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
