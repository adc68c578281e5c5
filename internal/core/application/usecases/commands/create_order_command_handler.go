package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
)

// CreateOrderCommandHandler handles checkout. Unit prices are read from the
// product catalog, the total is fixed, and the order is stored with both status
// axes pending.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, catalog)
//	created, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	catalog    ports.ProductCatalog
}

func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, catalog ports.ProductCatalog) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
	}
}

// Handle prices the requested lines and persists the new order.
// Unknown products are reported as a validation error and nothing is stored.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	items, err := h.priceLines(ctx, cmd)
	if err != nil {
		return nil, err
	}

	created, err := order.NewOrder(cmd.OrderID(), cmd.Actor().ID(), items, cmd.PaymentMethod(), time.Now())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, created); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}

func (h *CreateOrderCommandHandler) priceLines(ctx context.Context, cmd CreateOrderCommand) ([]order.Item, error) {
	prices, err := h.catalog.Prices(ctx, cmd.ProductRefs())
	if err != nil {
		return nil, err
	}

	var itemErrs []error
	items := make([]order.Item, 0, len(cmd.Lines()))
	for i, line := range cmd.Lines() {
		price, ok := prices[line.ProductRef]
		if !ok {
			itemErrs = append(itemErrs, errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("item %d product", i),
				fmt.Errorf("unknown product %q", line.ProductRef),
			))
			continue
		}

		item, itemErr := order.NewItem(line.ProductRef, line.Quantity, price)
		if itemErr != nil {
			itemErrs = append(itemErrs, itemErr)
			continue
		}
		items = append(items, item)
	}

	if err = errors.Join(itemErrs...); err != nil {
		return nil, err
	}
	return items, nil
}
