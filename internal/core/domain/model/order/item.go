package order

import (
	"errors"
	"fmt"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

const maxProductRefLength = 128

// ErrItemIsNotConstructed is returned by Item.Validate for a zero-value Item.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// ProductRef identifies a catalog product. It is opaque to the order domain.
type ProductRef string

// NewProductRef trims s and rejects empty or overlong references.
// The limit is 128 bytes, the width of the catalog's ref column.
//
// Example:
//
//	ref, err := order.NewProductRef("  SKU-42 ")
//	// ref == "SKU-42"
func NewProductRef(s string) (ProductRef, error) {
	ref := strings.TrimSpace(s)
	if ref == "" {
		return "", errs.NewValueIsRequiredError("productRef")
	}
	if len(ref) > maxProductRefLength {
		return "", errs.NewValueIsOutOfRangeError("productRef length", len(ref), 1, maxProductRefLength)
	}
	return ProductRef(ref), nil
}

// String returns the reference as stored in the catalog.
func (r ProductRef) String() string {
	return string(r)
}

// Item is one order line with the unit price captured at checkout. Later
// catalog price changes do not affect existing orders.
//
// Example:
//
//	price, _ := kernel.MoneyFromString("4.50")
//	item, err := order.NewItem("SKU-42", 3, price)
//	fmt.Println(item.Subtotal()) // "13.50"
type Item struct {
	productRef ProductRef
	quantity   int
	unitPrice  kernel.Money
	guard      guard.ConstructorGuard
}

// NewItem validates an order line: non-empty ref, quantity >= 1, valid non-negative price.
// All violations are reported together through errors.Join.
//
// Example:
//
//	_, err := order.NewItem("", 0, kernel.Money{})
//	// err carries the ref, quantity and price failures
func NewItem(productRef ProductRef, quantity int, unitPrice kernel.Money) (Item, error) {
	var refErr error
	if productRef == "" {
		refErr = errs.NewValueIsRequiredError("productRef")
	}

	var quantityErr error
	if quantity < 1 {
		quantityErr = errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is less than 1", quantity))
	}

	if err := errors.Join(refErr, quantityErr, unitPrice.Validate()); err != nil {
		return Item{}, err
	}

	return Item{
		productRef: productRef,
		quantity:   quantity,
		unitPrice:  unitPrice,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate returns ErrItemIsNotConstructed unless the item came from NewItem.
//
// Example:
//
//	var it order.Item
//	err := it.Validate() // ErrItemIsNotConstructed
func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// ProductRef returns the catalog product this line refers to.
//
// Example:
//
//	prices, err := catalog.Prices(ctx, []order.ProductRef{item.ProductRef()})
func (i Item) ProductRef() ProductRef {
	return i.productRef
}

// Quantity returns the number of units ordered, at least 1.
func (i Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the price of one unit as captured at checkout.
//
// Example:
//
//	dto.UnitPrice = item.UnitPrice().Decimal()
func (i Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

// Subtotal is quantity x unit price. The order total is the sum of subtotals.
//
// Example:
//
//	price, _ := kernel.MoneyFromString("2.25")
//	item, _ := order.NewItem("SKU-1", 4, price)
//	fmt.Println(item.Subtotal()) // "9.00"
func (i Item) Subtotal() kernel.Money {
	return i.unitPrice.Times(i.quantity)
}
