package commands

import (
	"context"
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
)

// maxStatusChangeAttempts bounds how often a status change is re-evaluated after
// losing an optimistic concurrency race.
const maxStatusChangeAttempts = 3

type statusChange func(o *order.Order) (changed bool, err error)

// applyStatusChange loads the order, applies change and writes it back with a
// version check. When another writer got there first the request is evaluated
// again against the fresh state, which then yields a no-op, a success or a
// transition error.
func applyStatusChange(
	ctx context.Context,
	uowFactory OrderUoWFactory,
	orderID kernel.UUID,
	change statusChange,
) (*order.Order, error) {
	var err error
	for range maxStatusChangeAttempts {
		var updated *order.Order
		updated, err = applyStatusChangeOnce(ctx, uowFactory, orderID, change)
		if !errors.Is(err, errs.ErrVersionIsInvalid) {
			return updated, err
		}
	}
	return nil, err
}

func applyStatusChangeOnce(
	ctx context.Context,
	uowFactory OrderUoWFactory,
	orderID kernel.UUID,
	change statusChange,
) (*order.Order, error) {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	current, err := repo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	changed, err := change(current)
	if err != nil {
		return nil, err
	}
	if !changed {
		return current, nil
	}

	if err = repo.Update(ctx, current); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return current, nil
}
