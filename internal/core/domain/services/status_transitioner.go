package services

import (
	"time"

	"storefront/internal/core/domain/model/actor"
	"storefront/internal/core/domain/model/order"
)

// StatusTransitioner is the status transition engine. It authorizes the actor,
// then delegates the state machine to the aggregate.
//
// Failure precedence for a single request:
//  1. *errs.ForbiddenError when the actor is not an admin
//  2. *errs.InvalidTransitionError when the axis cannot reach the target
//  3. *errs.PreconditionFailedError when delivery is blocked by payment
//
// A request for the current status succeeds with changed == false; callers
// must then skip persistence.
//
// Example:
//
//	engine := services.NewStatusTransitioner(order.DefaultDeliveryPolicy())
//	changed, err := engine.ApplyPayment(admin, o, order.PaymentPaid, &txn, time.Now())
//	if err != nil {
//	    return err
//	}
//	if changed {
//	    // persist o
//	}
type StatusTransitioner struct {
	access OrderAccessPolicy
	policy order.DeliveryPolicy
}

func NewStatusTransitioner(policy order.DeliveryPolicy) StatusTransitioner {
	return StatusTransitioner{
		access: NewOrderAccessPolicy(),
		policy: policy,
	}
}

// Policy returns the delivery policy the engine enforces.
func (s StatusTransitioner) Policy() order.DeliveryPolicy {
	return s.policy
}

// Authorize checks the actor alone. Handlers call it before loading the order so
// that a non-admin is refused even for orders that do not exist.
func (s StatusTransitioner) Authorize(a actor.Actor) error {
	return s.access.CanChangeStatus(a)
}

// ApplyPayment authorizes a and moves o's payment axis to target.
func (s StatusTransitioner) ApplyPayment(
	a actor.Actor,
	o *order.Order,
	target order.PaymentStatus,
	transactionID *string,
	now time.Time,
) (bool, error) {
	if err := s.Authorize(a); err != nil {
		return false, err
	}
	if err := o.Validate(); err != nil {
		return false, err
	}
	return o.ApplyPaymentStatus(target, transactionID, now)
}

// ApplyDelivery authorizes a and moves o's delivery axis to target.
func (s StatusTransitioner) ApplyDelivery(
	a actor.Actor,
	o *order.Order,
	target order.DeliveryStatus,
	now time.Time,
) (bool, error) {
	if err := s.Authorize(a); err != nil {
		return false, err
	}
	if err := o.Validate(); err != nil {
		return false, err
	}
	return o.ApplyDeliveryStatus(target, s.policy, now)
}
