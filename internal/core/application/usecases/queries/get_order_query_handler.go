package queries

import (
	"context"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"
)

type GetOrderQueryHandler struct {
	reader ports.OrderReader
	access services.OrderAccessPolicy
}

func NewGetOrderQueryHandler(reader ports.OrderReader) GetOrderQueryHandler {
	return GetOrderQueryHandler{
		reader: reader,
		access: services.NewOrderAccessPolicy(),
	}
}

// Handle returns *errs.ObjectNotFoundError for unknown ids and
// *errs.ForbiddenError when the actor neither owns the order nor is an admin.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	found, err := h.reader.Get(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}

	if err = h.access.CanRead(query.Actor(), found); err != nil {
		return nil, err
	}

	return found, nil
}
