package order

import (
	"fmt"

	"storefront/internal/pkg/errs"
)

// DeliveryPolicy decides whether an order whose payment is not settled may
// leave DeliveryPending.
type DeliveryPolicy struct {
	cashOnDeliveryShipsUnpaid bool
}

// NewDeliveryPolicy builds a policy. When cashOnDeliveryShipsUnpaid is true,
// cash-on-delivery orders may ship before payment is recorded.
//
// Example:
//
//	policy := order.NewDeliveryPolicy(config.CODDeliveryBeforePayment)
func NewDeliveryPolicy(cashOnDeliveryShipsUnpaid bool) DeliveryPolicy {
	return DeliveryPolicy{cashOnDeliveryShipsUnpaid: cashOnDeliveryShipsUnpaid}
}

// DefaultDeliveryPolicy lets cash-on-delivery orders ship unpaid.
func DefaultDeliveryPolicy() DeliveryPolicy {
	return NewDeliveryPolicy(true)
}

// CashOnDeliveryShipsUnpaid reports the setting the policy was built with.
func (p DeliveryPolicy) CashOnDeliveryShipsUnpaid() bool {
	return p.cashOnDeliveryShipsUnpaid
}

// CheckAdvance returns *errs.PreconditionFailedError when delivery may not
// leave Pending given the order's payment method and status.
//
// Example:
//
//	strict := order.NewDeliveryPolicy(false)
//	err := strict.CheckAdvance(order.PaymentMethodCashOnDelivery, order.PaymentPending)
//	// errors.Is(err, errs.ErrPreconditionFailed) == true
func (p DeliveryPolicy) CheckAdvance(method PaymentMethod, payment PaymentStatus) error {
	if payment == PaymentPaid {
		return nil
	}
	if method.IsCashOnDelivery() && p.cashOnDeliveryShipsUnpaid && payment == PaymentPending {
		return nil
	}
	return errs.NewPreconditionFailedError(
		fmt.Sprintf("delivery cannot advance while payment is %s (method %s)", payment, method),
	)
}
