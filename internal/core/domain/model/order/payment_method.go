package order

import (
	"fmt"

	"storefront/internal/pkg/errs"
)

// PaymentMethod is chosen at checkout and never changes.
type PaymentMethod int

const (
	// PaymentMethodUnknown catches uninitialized values.
	PaymentMethodUnknown PaymentMethod = iota
	PaymentMethodCard
	PaymentMethodPayPal
	// PaymentMethodCashOnDelivery is paid at the door; see DeliveryPolicy.
	PaymentMethodCashOnDelivery
)

func getPaymentMethodStrings() map[PaymentMethod]string {
	return map[PaymentMethod]string{
		PaymentMethodUnknown:        "unknown",
		PaymentMethodCard:           "card",
		PaymentMethodPayPal:         "paypal",
		PaymentMethodCashOnDelivery: "cash_on_delivery",
	}
}

// ParsePaymentMethod converts the wire name ("card", "paypal",
// "cash_on_delivery") to a PaymentMethod.
//
// Example:
//
//	method, err := order.ParsePaymentMethod(body.PaymentMethod)
//	if err != nil {
//	    return err // 400 validation_error
//	}
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	for method, name := range getPaymentMethodStrings() {
		if method != PaymentMethodUnknown && name == s {
			return method, nil
		}
	}
	return PaymentMethodUnknown, errs.NewValueIsInvalidErrorWithCause(
		"payment method",
		fmt.Errorf("%q is not one of card, paypal, cash_on_delivery", s),
	)
}

// Validate rejects PaymentMethodUnknown and out-of-range values.
func (m PaymentMethod) Validate() error {
	if m < PaymentMethodCard || m > PaymentMethodCashOnDelivery {
		return errs.NewValueIsInvalidErrorWithCause("payment method", fmt.Errorf("%d is not a valid method", m))
	}
	return nil
}

// String returns the wire name, or "unknown" for invalid values.
//
// Example:
//
//	fmt.Println(order.PaymentMethodCashOnDelivery) // "cash_on_delivery"
func (m PaymentMethod) String() string {
	if str, ok := getPaymentMethodStrings()[m]; ok {
		return str
	}
	return "unknown"
}

// IsCashOnDelivery reports whether payment is collected at the door.
func (m PaymentMethod) IsCashOnDelivery() bool {
	return m == PaymentMethodCashOnDelivery
}
