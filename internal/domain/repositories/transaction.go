package repositories

import "context"

// TxFn is a unit of work run inside a transaction. Repositories called with
// the ctx it receives join that transaction.
type TxFn func(ctx context.Context) error

// TransactionManager runs multi-step writes atomically. Every backend
// (SQL transaction or document-store session) implements it.
type TransactionManager interface {
	// ExecTx executes fn within a transaction, rolling back if fn returns an error
	ExecTx(ctx context.Context, fn TxFn) error
}
