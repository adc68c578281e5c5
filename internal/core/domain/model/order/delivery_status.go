package order

import (
	"fmt"

	"storefront/internal/pkg/errs"
)

// DeliveryStatus is the delivery axis of an order. It only moves forward:
//
//	Pending ──> Shipped ──> Done
//	   └────────────────────^
//
// Skipping Shipped is allowed; any backwards move is an invalid transition.
type DeliveryStatus int

const (
	// DeliveryUnknown catches uninitialized values.
	DeliveryUnknown DeliveryStatus = iota

	// DeliveryPending is the initial status of every order.
	DeliveryPending

	// DeliveryShipped means the parcel has left the warehouse.
	DeliveryShipped

	// DeliveryDone means the customer received the order. Final.
	DeliveryDone
)

const deliveryAxis = "delivery"

func getDeliveryStatusStrings() map[DeliveryStatus]string {
	return map[DeliveryStatus]string{
		DeliveryUnknown: "unknown",
		DeliveryPending: "pending",
		DeliveryShipped: "shipped",
		DeliveryDone:    "done",
	}
}

// ParseDeliveryStatus converts the wire name ("pending", "shipped", "done") to a DeliveryStatus.
// Anything else yields an errs.ValueIsInvalidError.
//
// Example:
//
//	target, err := order.ParseDeliveryStatus("shipped")
func ParseDeliveryStatus(s string) (DeliveryStatus, error) {
	for status, name := range getDeliveryStatusStrings() {
		if status != DeliveryUnknown && name == s {
			return status, nil
		}
	}
	return DeliveryUnknown, errs.NewValueIsInvalidErrorWithCause(
		"delivery status",
		fmt.Errorf("%q is not one of pending, shipped, done", s),
	)
}

// Validate rejects DeliveryUnknown and out-of-range values.
//
// Example:
//
//	order.DeliveryDone.Validate()      // nil
//	order.DeliveryStatus(0).Validate() // ValueIsInvalidError
func (s DeliveryStatus) Validate() error {
	if s < DeliveryPending || s > DeliveryDone {
		return errs.NewValueIsInvalidErrorWithCause("delivery status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name, or "unknown" for invalid values.
//
// Example:
//
//	fmt.Println(order.DeliveryShipped) // "shipped"
func (s DeliveryStatus) String() string {
	if str, ok := getDeliveryStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// TransitionTo computes the status after a request to move to target.
// Forward moves succeed, the current status is a no-op, backward moves fail
// with *errs.InvalidTransitionError.
//
// Example:
//
//	next, changed, _ := order.DeliveryPending.TransitionTo(order.DeliveryDone)
//	// next == DeliveryDone, changed == true
//
//	_, _, err := order.DeliveryDone.TransitionTo(order.DeliveryShipped)
//	// errors.Is(err, errs.ErrInvalidTransition) == true
func (s DeliveryStatus) TransitionTo(target DeliveryStatus) (DeliveryStatus, bool, error) {
	if err := target.Validate(); err != nil {
		return s, false, err
	}

	switch {
	case s == target:
		return s, false, nil
	case s.Validate() == nil && target > s:
		return target, true, nil
	default:
		return s, false, errs.NewInvalidTransitionError(deliveryAxis, s.String(), target.String())
	}
}
