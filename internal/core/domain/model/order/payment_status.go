package order

import (
	"fmt"

	"storefront/internal/pkg/errs"
)

// PaymentStatus is the payment axis of an order.
//
//	Pending ──┬──> Paid
//	          └──> Failed
//
// Paid and Failed are terminal. Re-requesting the current status is accepted as a no-op.
type PaymentStatus int

const (
	// PaymentUnknown catches uninitialized values.
	PaymentUnknown PaymentStatus = iota

	// PaymentPending is the initial status of every order.
	PaymentPending

	// PaymentPaid records a settled payment. A transaction id may accompany it.
	PaymentPaid

	// PaymentFailed records a payment that will not be settled.
	PaymentFailed
)

const paymentAxis = "payment"

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentUnknown: "unknown",
		PaymentPending: "pending",
		PaymentPaid:    "paid",
		PaymentFailed:  "failed",
	}
}

// ParsePaymentStatus converts the wire name ("pending", "paid", "failed") to a PaymentStatus.
// Anything else, including "unknown", yields an errs.ValueIsInvalidError.
//
// Example:
//
//	target, err := order.ParsePaymentStatus(body.Status)
//	if err != nil {
//	    return err // 400 validation_error
//	}
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	for status, name := range getPaymentStatusStrings() {
		if status != PaymentUnknown && name == s {
			return status, nil
		}
	}
	return PaymentUnknown, errs.NewValueIsInvalidErrorWithCause(
		"payment status",
		fmt.Errorf("%q is not one of pending, paid, failed", s),
	)
}

// Validate rejects PaymentUnknown and out-of-range values.
//
// Example:
//
//	order.PaymentPaid.Validate()       // nil
//	order.PaymentStatus(9).Validate() // ValueIsInvalidError
func (s PaymentStatus) Validate() error {
	if s < PaymentPending || s > PaymentFailed {
		return errs.NewValueIsInvalidErrorWithCause("payment status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name, or "unknown" for invalid values.
//
// Example:
//
//	fmt.Println(order.PaymentFailed) // "failed"
func (s PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further payment transition is possible.
//
// Example:
//
//	order.PaymentPending.IsTerminal() // false
//	order.PaymentPaid.IsTerminal()    // true
func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentPaid || s == PaymentFailed
}

// TransitionTo computes the status after a request to move to target.
//
// Returns:
//   - (target, true, nil) for Pending -> Paid and Pending -> Failed
//   - (s, false, nil) when target equals the current status
//   - (s, false, *errs.InvalidTransitionError) for any other pair
//
// Example:
//
//	next, changed, err := order.PaymentPending.TransitionTo(order.PaymentPaid)
//	// next == PaymentPaid, changed == true, err == nil
//
//	_, _, err = order.PaymentFailed.TransitionTo(order.PaymentPaid)
//	// errors.Is(err, errs.ErrInvalidTransition) == true
func (s PaymentStatus) TransitionTo(target PaymentStatus) (PaymentStatus, bool, error) {
	if err := target.Validate(); err != nil {
		return s, false, err
	}

	if s == target {
		return s, false, nil
	}

	if s == PaymentPending && (target == PaymentPaid || target == PaymentFailed) {
		return target, true, nil
	}

	return s, false, errs.NewInvalidTransitionError(paymentAxis, s.String(), target.String())
}
