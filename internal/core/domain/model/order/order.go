package order

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")
)

const maxTransactionIDLength = 255

// Order is the aggregate root of the storefront checkout. It is created once by
// its owner and afterwards changes only along its payment and delivery axes.
//
// Order follows these invariants:
//   - ID, owner, items, total, payment method and creation time never change
//   - At least one item; the total equals the sum of item subtotals
//   - A transaction id exists only on paid orders
//   - Status changes go through ApplyPaymentStatus and ApplyDeliveryStatus
//
// Every change that must be persisted is recorded as an Event.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// ownerID is the purchasing user
	ownerID kernel.UUID

	// items are the order lines in checkout order
	items []Item

	// totalPrice is fixed at creation
	totalPrice kernel.Money

	paymentMethod  PaymentMethod
	transactionID  *string
	paymentStatus  PaymentStatus
	deliveryStatus DeliveryStatus

	createdAt time.Time
	updatedAt time.Time

	// version is the optimistic concurrency token last read from storage
	version int

	events []Event

	// isConstructed ensures the order was created via NewOrder or RestoreOrder
	isConstructed bool
}

// NewOrder creates an order at checkout.
//
// Parameters:
//   - id: Unique identifier for the order
//   - ownerID: The purchasing user
//   - items: Order lines; at least one is required
//   - method: The payment method chosen at checkout
//   - now: Creation time
//
// The order starts with both axes Pending, version 0, and a recorded EventCreated.
//
// Example:
//
//	price, _ := kernel.MoneyFromString("10.00")
//	item, _ := order.NewItem("P1", 2, price)
//	o, err := order.NewOrder(kernel.NewUUID(), ownerID, []order.Item{item}, order.PaymentMethodCard, time.Now())
//	// o.TotalPrice().String() == "20.00"
func NewOrder(id, ownerID kernel.UUID, items []Item, method PaymentMethod, now time.Time) (*Order, error) {
	createdAt := normalizeTime(now)
	o := &Order{
		paymentMethod:  method,
		paymentStatus:  PaymentPending,
		deliveryStatus: DeliveryPending,
		createdAt:      createdAt,
		updatedAt:      createdAt,
		isConstructed:  true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setOwnerID(ownerID),
		o.setItems(items),
		method.Validate(),
	); err != nil {
		return nil, err
	}

	o.totalPrice = sumItems(o.items)
	o.record(EventCreated, createdAt)
	return o, nil
}

// Snapshot carries the persisted state of an order for RestoreOrder.
type Snapshot struct {
	ID             kernel.UUID
	OwnerID        kernel.UUID
	Items          []Item
	TotalPrice     kernel.Money
	PaymentMethod  PaymentMethod
	TransactionID  *string
	PaymentStatus  PaymentStatus
	DeliveryStatus DeliveryStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Version        int
}

// RestoreOrder rehydrates an order from storage. It re-checks the invariants that
// storage could have broken and records no events.
//
// The checks cover ids, items, payment method, both status axes, a stored total
// equal to the item sum, a transaction id only on a paid order, and a
// non-negative version.
//
// Example:
//
//	o, err := order.RestoreOrder(order.Snapshot{
//	    ID: id, OwnerID: ownerID, Items: items, TotalPrice: total,
//	    PaymentMethod: order.PaymentMethodCard, Version: dto.Version,
//	    CreatedAt: dto.CreatedAt, UpdatedAt: dto.UpdatedAt,
//	})
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		paymentMethod:  s.PaymentMethod,
		paymentStatus:  s.PaymentStatus,
		deliveryStatus: s.DeliveryStatus,
		createdAt:      normalizeTime(s.CreatedAt),
		updatedAt:      normalizeTime(s.UpdatedAt),
		version:        s.Version,
		isConstructed:  true,
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setOwnerID(s.OwnerID),
		o.setItems(s.Items),
		s.PaymentMethod.Validate(),
		s.PaymentStatus.Validate(),
		s.DeliveryStatus.Validate(),
		s.TotalPrice.Validate(),
	); err != nil {
		return nil, err
	}

	if sum := sumItems(o.items); !sum.IsEqual(s.TotalPrice) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"total price",
			fmt.Errorf("stored total %s does not match item sum %s", s.TotalPrice, sum),
		)
	}
	o.totalPrice = s.TotalPrice

	if s.TransactionID != nil {
		if s.PaymentStatus != PaymentPaid {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"transaction id",
				fmt.Errorf("present on a %s order", s.PaymentStatus),
			)
		}
		txn := *s.TransactionID
		o.transactionID = &txn
	}

	if s.Version < 0 {
		return nil, errs.NewValueIsOutOfRangeError("version", s.Version, 0, "unbounded")
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
// It returns ErrOrderIsNotConstructed for nil and for a zero-value Order.
//
// Example:
//
//	var o order.Order
//	err := o.Validate() // ErrOrderIsNotConstructed
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers. Status, items and
// version are ignored, so an order equals its own later revision.
//
// Example:
//
//	reloaded, _ := repo.Get(ctx, o.ID())
//	o.IsEqual(reloaded) // true
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's identifier. It never changes after construction.
//
// Example:
//
//	tag := invalidation.MyOrders(o.OwnerID())
//	logger.Info("order updated", "order_id", o.ID().String(), "tag", tag.String())
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OwnerID returns the id of the user who placed the order. Read access for
// non-admin actors is decided by comparing it to the actor's id.
//
// Example:
//
//	if requester.Owns(o.OwnerID()) {
//	    // the requester may read this order
//	}
func (o *Order) OwnerID() kernel.UUID {
	return o.ownerID
}

// Items returns a copy of the order lines in checkout order. Modifying the
// returned slice does not affect the order.
//
// Example:
//
//	for i, it := range o.Items() {
//	    fmt.Printf("%d: %s x%d\n", i, it.ProductRef(), it.Quantity())
//	}
func (o *Order) Items() []Item {
	return slices.Clone(o.items)
}

// TotalPrice returns the sum of the item subtotals, fixed at checkout.
//
// Example:
//
//	fmt.Println(o.TotalPrice()) // e.g. "20.00"
func (o *Order) TotalPrice() kernel.Money {
	return o.totalPrice
}

// PaymentMethod returns the method chosen at checkout. The delivery policy
// consults it before an unpaid order may ship.
//
// Example:
//
//	if o.PaymentMethod().IsCashOnDelivery() {
//	    // payment is collected on delivery
//	}
func (o *Order) PaymentMethod() PaymentMethod {
	return o.paymentMethod
}

// TransactionID returns a copy of the external payment reference, or nil when
// none was supplied with the Paid transition.
//
// Example:
//
//	if txn := o.TransactionID(); txn != nil {
//	    fmt.Println("paid with", *txn)
//	}
func (o *Order) TransactionID() *string {
	if o.transactionID == nil {
		return nil
	}
	txn := *o.transactionID
	return &txn
}

// PaymentStatus returns the current position on the payment axis.
//
// Example:
//
//	if o.PaymentStatus() == order.PaymentPaid {
//	    // the order may ship
//	}
func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

// DeliveryStatus returns the current position on the delivery axis.
//
// Example:
//
//	fmt.Println(o.DeliveryStatus()) // "pending", "shipped" or "done"
func (o *Order) DeliveryStatus() DeliveryStatus {
	return o.deliveryStatus
}

// CreatedAt returns the checkout time in UTC. Listings sort by it, newest first.
//
// Example:
//
//	age := time.Since(o.CreatedAt())
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the time of the last status change in UTC. It equals
// CreatedAt until the first change.
//
// Example:
//
//	changed := o.UpdatedAt().After(o.CreatedAt())
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Version returns the concurrency token the order was loaded with. The
// repository only updates the row while its version still matches.
//
// Example:
//
//	o, _ := repo.Get(ctx, id)
//	_, _ = o.ApplyPaymentStatus(order.PaymentPaid, nil, time.Now())
//	err := repo.Update(ctx, o) // errs.ErrVersionIsInvalid if another writer won
func (o *Order) Version() int {
	return o.version
}

// Events returns the events recorded since construction or the last ClearEvents.
// The repository turns them into outbox notices in the same transaction.
//
// Example:
//
//	for _, e := range o.Events() {
//	    notices = append(notices, invalidation.NoticeFor(e))
//	}
func (o *Order) Events() []Event {
	return slices.Clone(o.events)
}

// ClearEvents forgets recorded events once they have been persisted.
//
// Example:
//
//	if err := tx.Create(&notices).Error; err == nil {
//	    o.ClearEvents()
//	}
func (o *Order) ClearEvents() {
	o.events = nil
}

// ApplyPaymentStatus moves the payment axis to target.
//
// Business rules:
//   - Pending -> Paid and Pending -> Failed are the only changes
//   - Requesting the current status returns (false, nil) and changes nothing
//   - transactionID is only accepted together with Paid and is stored on the change
//
// Returns:
//   - (true, nil) when the order changed and an EventPaymentStatusChanged was recorded
//   - (false, nil) for a no-op
//   - *errs.InvalidTransitionError or a validation error otherwise
func (o *Order) ApplyPaymentStatus(target PaymentStatus, transactionID *string, now time.Time) (bool, error) {
	if err := validateTransactionID(target, transactionID); err != nil {
		return false, err
	}

	next, changed, err := o.paymentStatus.TransitionTo(target)
	if err != nil || !changed {
		return false, err
	}

	o.paymentStatus = next
	if next == PaymentPaid && transactionID != nil {
		txn := strings.TrimSpace(*transactionID)
		o.transactionID = &txn
	}
	o.touch(EventPaymentStatusChanged, now)
	return true, nil
}

// ApplyDeliveryStatus moves the delivery axis to target.
//
// Business rules:
//   - Delivery only moves forward; backward requests fail with *errs.InvalidTransitionError
//   - Requesting the current status returns (false, nil) and changes nothing
//   - Leaving Pending is subject to policy; a refusal is *errs.PreconditionFailedError
//
// The axis check runs before the policy check, so done -> shipped is always an
// invalid transition regardless of payment.
func (o *Order) ApplyDeliveryStatus(target DeliveryStatus, policy DeliveryPolicy, now time.Time) (bool, error) {
	next, changed, err := o.deliveryStatus.TransitionTo(target)
	if err != nil || !changed {
		return false, err
	}

	if err = policy.CheckAdvance(o.paymentMethod, o.paymentStatus); err != nil {
		return false, err
	}

	o.deliveryStatus = next
	o.touch(EventDeliveryStatusChanged, now)
	return true, nil
}

func (o *Order) touch(name EventName, now time.Time) {
	o.updatedAt = normalizeTime(now)
	o.record(name, o.updatedAt)
}

func (o *Order) record(name EventName, at time.Time) {
	o.events = append(o.events, Event{
		ID:         kernel.NewUUID(),
		Name:       name,
		OrderID:    o.id,
		OwnerID:    o.ownerID,
		OccurredAt: at,
	})
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("owner", err)
	}
	o.ownerID = ownerID
	return nil
}

// setItems requires at least one item and validates each of them.
func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	itemErrs := make([]error, 0, len(items))
	for i, item := range items {
		if err := item.Validate(); err != nil {
			itemErrs = append(itemErrs, fmt.Errorf("item %d: %w", i, err))
		}
	}
	if err := errors.Join(itemErrs...); err != nil {
		return err
	}

	o.items = slices.Clone(items)
	return nil
}

func validateTransactionID(target PaymentStatus, transactionID *string) error {
	if transactionID == nil {
		return nil
	}
	if target != PaymentPaid {
		return errs.NewValueIsInvalidErrorWithCause(
			"transaction id",
			fmt.Errorf("only accepted when payment becomes paid, not %s", target),
		)
	}
	txn := strings.TrimSpace(*transactionID)
	if txn == "" {
		return errs.NewValueIsRequiredError("transaction id")
	}
	if len(txn) > maxTransactionIDLength {
		return errs.NewValueIsOutOfRangeError("transaction id length", len(txn), 1, maxTransactionIDLength)
	}
	return nil
}

func sumItems(items []Item) kernel.Money {
	total := kernel.ZeroMoney()
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// normalizeTime keeps timestamps in UTC at the precision PostgreSQL stores.
func normalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
