// Package postgres provides the GORM implementation of the unit of work and the
// repositories bound to it.
//
// Repositories obtained from a unit of work report every aggregate they write.
// On Commit the unit of work turns the events those aggregates recorded into
// invalidation notices and stores them in the outbox inside the same
// transaction, so an order change and its invalidation are written together or
// not at all.
//
// Usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.OrderRepository().Update(ctx, o); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Each UnitOfWork instance holds one transaction; goroutines must not share one.
package postgres

import (
	"context"
	"fmt"

	"storefront/internal/adapters/out/postgres/orderrepo"
	"storefront/internal/adapters/out/postgres/outboxrepo"
	"storefront/internal/core/domain/model/invalidation"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"

	"gorm.io/gorm"
)

var _ ports.UnitOfWork = (*GormUnitOfWork)(nil)

// trackedAggregate represents an aggregate written during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// eventSource is implemented by aggregates that record order events.
type eventSource interface {
	Events() []order.Event
	ClearEvents()
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork with its own transaction state and tracking.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// OrderReader returns a read-only view of the order store outside any
// transaction, for queries.
func (f *GormUnitOfWorkFactory) OrderReader() ports.OrderReader {
	return orderrepo.NewGormOrderRepository(f.db, discardTracker{})
}

// GormUnitOfWork coordinates one database transaction and the aggregates
// written in it.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin initiates a new database transaction. Calling Begin on an active unit of
// work is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	uow.trackedAggregates = uow.trackedAggregates[:0]
	return nil
}

// Commit stores the invalidation notices of tracked aggregates and commits.
// Events are cleared from the aggregates only once the commit succeeded.
//
// Returns gorm.ErrInvalidTransaction if no transaction is active.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	sources, notices := uow.pendingNotices()
	if err := outboxrepo.NewGormOutboxRepository(uow.tx).Add(ctx, notices...); err != nil {
		return fmt.Errorf("store invalidation notices: %w", err)
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	if err != nil {
		return err
	}

	for _, source := range sources {
		source.ClearEvents()
	}
	return nil
}

// Rollback discards the transaction and forgets tracked aggregates.
//
// Returns gorm.ErrInvalidTransaction if no transaction is active.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

// OrderRepository returns a repository bound to the active transaction, or to
// the plain connection when none is active.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// OutboxRepository returns the outbox bound to the active transaction, or to the
// plain connection when none is active.
func (uow *GormUnitOfWork) OutboxRepository() ports.OutboxRepository {
	return outboxrepo.NewGormOutboxRepository(uow.conn())
}

// TrackAggregate registers an aggregate written within this unit of work.
// Repositories call it after every successful Add or Update. Aggregates written
// outside a transaction are not tracked.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	if uow.tx == nil {
		return
	}
	for _, tracked := range uow.trackedAggregates {
		if tracked.Aggregate == aggregate {
			return
		}
	}
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) pendingNotices() ([]eventSource, []invalidation.Notice) {
	sources := make([]eventSource, 0, len(uow.trackedAggregates))
	notices := make([]invalidation.Notice, 0, len(uow.trackedAggregates))
	for _, tracked := range uow.trackedAggregates {
		source, ok := tracked.Aggregate.(eventSource)
		if !ok {
			continue
		}
		sources = append(sources, source)
		for _, event := range source.Events() {
			notices = append(notices, invalidation.NoticeFor(event))
		}
	}
	return sources, notices
}

type discardTracker struct{}

func (discardTracker) TrackAggregate(kernel.UUID, any) {}
