package queries

import (
	"context"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
)

// ListMyOrdersQueryHandler lists orders owned by the actor. Admins get their own
// orders here too; the full list is ListAllOrdersQueryHandler.
type ListMyOrdersQueryHandler struct {
	reader ports.OrderReader
}

func NewListMyOrdersQueryHandler(reader ports.OrderReader) ListMyOrdersQueryHandler {
	return ListMyOrdersQueryHandler{reader: reader}
}

func (h ListMyOrdersQueryHandler) Handle(ctx context.Context, query ListMyOrdersQuery) ([]*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return h.reader.List(ctx, ports.OwnedBy(query.Actor().ID()))
}
