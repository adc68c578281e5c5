package order

import (
	"time"

	"storefront/internal/core/domain/model/kernel"
)

// EventName identifies what happened to an order.
type EventName string

const (
	EventCreated               EventName = "order.created"
	EventPaymentStatusChanged  EventName = "order.payment_status_changed"
	EventDeliveryStatusChanged EventName = "order.delivery_status_changed"
)

// Event is recorded by the aggregate whenever its persisted state changes.
// The persistence layer drains events when it commits the change.
type Event struct {
	ID         kernel.UUID
	Name       EventName
	OrderID    kernel.UUID
	OwnerID    kernel.UUID
	OccurredAt time.Time
}
