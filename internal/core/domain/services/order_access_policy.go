package services

import (
	"storefront/internal/core/domain/model/actor"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
)

// OrderAccessPolicy encodes the order workflow's authorization rules:
//   - any authenticated actor may create orders and list their own
//   - only admins list all orders or change payment and delivery status
//   - an order is readable by its owner and by admins
type OrderAccessPolicy struct{}

func NewOrderAccessPolicy() OrderAccessPolicy {
	return OrderAccessPolicy{}
}

// CanChangeStatus fails with *errs.ForbiddenError for non-admin actors.
// It does not look at the order, so the answer is the same for every order state.
func (OrderAccessPolicy) CanChangeStatus(a actor.Actor) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if !a.IsAdmin() {
		return errs.NewForbiddenError("change order status")
	}
	return nil
}

// CanListAll fails with *errs.ForbiddenError for non-admin actors.
func (OrderAccessPolicy) CanListAll(a actor.Actor) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if !a.IsAdmin() {
		return errs.NewForbiddenError("list all orders")
	}
	return nil
}

// CanRead fails with *errs.ForbiddenError unless a owns o or is an admin.
func (OrderAccessPolicy) CanRead(a actor.Actor, o *order.Order) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if err := o.Validate(); err != nil {
		return err
	}
	if a.IsAdmin() || a.Owns(o.OwnerID()) {
		return nil
	}
	return errs.NewForbiddenError("read order " + o.ID().String())
}
