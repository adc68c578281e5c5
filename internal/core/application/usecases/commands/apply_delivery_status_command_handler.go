package commands

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"
)

// ApplyDeliveryStatusCommandHandler runs the delivery side of the status
// transition engine, including the payment precondition, and persists the result.
type ApplyDeliveryStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	engine     services.StatusTransitioner
}

func NewApplyDeliveryStatusCommandHandler(
	uowFactory OrderUoWFactory,
	engine services.StatusTransitioner,
) ApplyDeliveryStatusCommandHandler {
	return ApplyDeliveryStatusCommandHandler{
		uowFactory: uowFactory,
		engine:     engine,
	}
}

// Handle authorizes the actor, applies the transition and stores it.
func (h *ApplyDeliveryStatusCommandHandler) Handle(
	ctx context.Context,
	cmd ApplyDeliveryStatusCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := h.engine.Authorize(cmd.Actor()); err != nil {
		return nil, err
	}

	return applyStatusChange(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) (bool, error) {
		return h.engine.ApplyDelivery(cmd.Actor(), o, cmd.Status(), time.Now())
	})
}
