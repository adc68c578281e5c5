package ports

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
)

// ProductCatalog resolves current unit prices at checkout.
type ProductCatalog interface {
	// Prices returns the unit price of every known product in refs. Unknown refs
	// are absent from the result.
	Prices(ctx context.Context, refs []order.ProductRef) (map[order.ProductRef]kernel.Money, error)
}
