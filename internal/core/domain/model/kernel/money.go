package kernel

import (
	"errors"
	"fmt"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of fractional digits a Money amount may carry.
const MoneyScale = 2

// ErrMoneyIsNotConstructed is returned by Validate for a zero-value Money.
var ErrMoneyIsNotConstructed = errors.New("Money must be created via NewMoney, MoneyFromString or ZeroMoney")

// Money is a non-negative amount with at most MoneyScale fractional digits.
// Arithmetic stays in decimal; floats never touch a stored amount.
//
// Item unit prices, line subtotals and order totals are all Money. The zero
// value is invalid; use ZeroMoney for an explicit zero.
//
// Example:
//
//	price, err := kernel.MoneyFromString("19.99")
//	if err != nil {
//	    return err
//	}
//	total := price.Times(3) // 59.97
type Money struct {
	amount decimal.Decimal
	guard  guard.ConstructorGuard
}

// NewMoney validates amount and wraps it. A negative amount yields an
// errs.ValueIsOutOfRangeError; more than MoneyScale fractional digits yields an
// errs.ValueIsInvalidError. Trailing zeros are accepted, so 20.000 is valid.
//
// Example:
//
//	m, err := kernel.NewMoney(decimal.RequireFromString("12.50"))
//	_, err = kernel.NewMoney(decimal.RequireFromString("0.125")) // ValueIsInvalid
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", amount.String(), 0, "unbounded")
	}
	if !amount.Equal(amount.Round(MoneyScale)) {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount",
			fmt.Errorf("%s has more than %d fractional digits", amount.String(), MoneyScale),
		)
	}
	return Money{amount: amount, guard: guard.NewConstructorGuard()}, nil
}

// MoneyFromString parses a decimal literal such as "10" or "19.99" and applies
// the NewMoney rules. Unparseable input yields an errs.ValueIsInvalidError.
//
// Example:
//
//	m, err := kernel.MoneyFromString("10")
//	fmt.Println(m) // "10.00"
func MoneyFromString(s string) (Money, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewMoney(amount)
}

// ZeroMoney returns a valid zero amount, the starting point for sums.
//
// Example:
//
//	total := kernel.ZeroMoney()
//	for _, it := range items {
//	    total = total.Add(it.Subtotal())
//	}
func ZeroMoney() Money {
	return Money{amount: decimal.Zero, guard: guard.NewConstructorGuard()}
}

// Validate returns ErrMoneyIsNotConstructed unless m came from a constructor
// or from arithmetic on constructed values.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// Decimal exposes the amount for persistence adapters and JSON encoding.
//
// Example:
//
//	dto.TotalPrice = o.TotalPrice().Decimal()
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// Add returns m + other. The sum of two valid amounts is always valid.
//
// Example:
//
//	a, _ := kernel.MoneyFromString("1.10")
//	b, _ := kernel.MoneyFromString("2.20")
//	fmt.Println(a.Add(b)) // "3.30"
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount), guard: guard.NewConstructorGuard()}
}

// Times returns m multiplied by a non-negative quantity. Items use it for
// their subtotal.
//
// Example:
//
//	unit, _ := kernel.MoneyFromString("10.00")
//	fmt.Println(unit.Times(2)) // "20.00"
func (m Money) Times(quantity int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(quantity))), guard: guard.NewConstructorGuard()}
}

// IsEqual compares amounts numerically, so 20 and 20.00 are equal.
//
// Example:
//
//	if !sum.IsEqual(storedTotal) {
//	    // the stored total no longer matches the items
//	}
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String renders the amount with exactly MoneyScale fractional digits, the
// form used on the wire.
//
// Example:
//
//	m, _ := kernel.MoneyFromString("7.5")
//	fmt.Println(m.String()) // "7.50"
func (m Money) String() string {
	return m.amount.StringFixed(MoneyScale)
}
