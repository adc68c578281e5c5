package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request or job run.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// Client code must explicitly manage the transaction lifecycle.
//
// Commit also writes the invalidation notices for every aggregate the
// repositories tracked, inside the same transaction.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit writes pending invalidation notices and commits the transaction.
	Commit(ctx context.Context) error

	// Rollback discards the transaction and everything tracked in it.
	Rollback(ctx context.Context) error

	// OrderRepository returns a repository bound to the current transaction, or to
	// the plain connection when none is active.
	OrderRepository() OrderRepository

	// OutboxRepository returns an outbox bound to the current transaction.
	OutboxRepository() OutboxRepository
}
