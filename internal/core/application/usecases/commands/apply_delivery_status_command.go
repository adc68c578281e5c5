package commands

import (
	"errors"

	"storefront/internal/core/domain/model/actor"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/guard"
)

var (
	ErrApplyDeliveryStatusCommandIsNotConstructed = errors.New(
		"ApplyDeliveryStatusCommand must be created via NewApplyDeliveryStatusCommand constructor",
	)
)

// ApplyDeliveryStatusCommand asks to move an order's delivery axis.
type ApplyDeliveryStatusCommand struct {
	actor   actor.Actor
	orderID kernel.UUID
	status  order.DeliveryStatus

	guard guard.ConstructorGuard
}

func NewApplyDeliveryStatusCommand(
	a actor.Actor,
	orderID kernel.UUID,
	status order.DeliveryStatus,
) (ApplyDeliveryStatusCommand, error) {
	if err := errors.Join(
		a.Validate(),
		orderID.Validate(),
		status.Validate(),
	); err != nil {
		return ApplyDeliveryStatusCommand{}, err
	}

	return ApplyDeliveryStatusCommand{
		actor:   a,
		orderID: orderID,
		status:  status,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ApplyDeliveryStatusCommand) Validate() error {
	return c.guard.Validate(ErrApplyDeliveryStatusCommandIsNotConstructed)
}

func (c ApplyDeliveryStatusCommand) Actor() actor.Actor {
	return c.actor
}

func (c ApplyDeliveryStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ApplyDeliveryStatusCommand) Status() order.DeliveryStatus {
	return c.status
}
