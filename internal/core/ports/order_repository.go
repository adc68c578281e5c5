// Package ports defines the contracts between the order workflow core and its
// infrastructure: persistence, the invalidation outbox, external collaborators
// and identity.
package ports

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
)

// OrderFilter narrows List. A nil OwnerID lists every order.
type OrderFilter struct {
	OwnerID *kernel.UUID
}

// OwnedBy returns a filter for the orders of a single owner.
func OwnedBy(ownerID kernel.UUID) OrderFilter {
	return OrderFilter{OwnerID: &ownerID}
}

// OrderReader is the read side of the order store used by queries.
type OrderReader interface {
	// Get retrieves an order with its items.
	// Returns *errs.ObjectNotFoundError when no order has the id.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// List returns the orders matching filter, newest first. Orders created at the
	// same instant are ordered by id, descending.
	List(ctx context.Context, filter OrderFilter) ([]*order.Order, error)
}

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	OrderReader

	// Add persists a new order and its items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the status fields of an existing order. It never writes
	// items, total, owner or creation time.
	//
	// The write is conditional on the version the aggregate was loaded with:
	//   - *errs.ObjectNotFoundError when the order no longer exists
	//   - *errs.VersionIsInvalidError when another writer updated it first
	Update(ctx context.Context, aggregate *order.Order) error
}
