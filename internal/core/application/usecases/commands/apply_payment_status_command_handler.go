package commands

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"
)

// ApplyPaymentStatusCommandHandler runs the payment side of the status
// transition engine and persists the result.
//
// Requesting the status the order already has returns the order unchanged and
// writes nothing, so repeating "paid" is safe.
type ApplyPaymentStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	engine     services.StatusTransitioner
}

func NewApplyPaymentStatusCommandHandler(
	uowFactory OrderUoWFactory,
	engine services.StatusTransitioner,
) ApplyPaymentStatusCommandHandler {
	return ApplyPaymentStatusCommandHandler{
		uowFactory: uowFactory,
		engine:     engine,
	}
}

// Handle authorizes the actor, applies the transition and stores it.
func (h *ApplyPaymentStatusCommandHandler) Handle(
	ctx context.Context,
	cmd ApplyPaymentStatusCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := h.engine.Authorize(cmd.Actor()); err != nil {
		return nil, err
	}

	return applyStatusChange(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) (bool, error) {
		return h.engine.ApplyPayment(cmd.Actor(), o, cmd.Status(), cmd.TransactionID(), time.Now())
	})
}
