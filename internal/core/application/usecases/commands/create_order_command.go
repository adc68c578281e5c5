package commands

import (
	"errors"
	"fmt"

	"storefront/internal/core/domain/model/actor"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// OrderLine is one requested line of a checkout. The unit price is not part of the
// request; it is resolved from the product catalog.
type OrderLine struct {
	ProductRef order.ProductRef
	Quantity   int
}

// CreateOrderCommand represents a checkout by the acting user.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(owner, kernel.NewUUID(), []OrderLine{{ProductRef: "P1", Quantity: 2}}, order.PaymentMethodCard)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, catalog)
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	actor         actor.Actor
	orderID       kernel.UUID
	lines         []OrderLine
	paymentMethod order.PaymentMethod

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the checkout request.
// At least one line is required and every quantity must be positive.
func NewCreateOrderCommand(
	a actor.Actor,
	orderID kernel.UUID,
	lines []OrderLine,
	method order.PaymentMethod,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(a),
		cmd.setOrderID(orderID),
		cmd.setLines(lines),
		cmd.setPaymentMethod(method),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Actor() actor.Actor {
	return c.actor
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Lines returns a copy of the requested lines.
func (c CreateOrderCommand) Lines() []OrderLine {
	return append([]OrderLine(nil), c.lines...)
}

func (c CreateOrderCommand) PaymentMethod() order.PaymentMethod {
	return c.paymentMethod
}

// ProductRefs returns the distinct product references in request order.
func (c CreateOrderCommand) ProductRefs() []order.ProductRef {
	seen := make(map[order.ProductRef]struct{}, len(c.lines))
	refs := make([]order.ProductRef, 0, len(c.lines))
	for _, line := range c.lines {
		if _, ok := seen[line.ProductRef]; ok {
			continue
		}
		seen[line.ProductRef] = struct{}{}
		refs = append(refs, line.ProductRef)
	}
	return refs
}

func (c *CreateOrderCommand) setActor(a actor.Actor) error {
	if err := a.Validate(); err != nil {
		return err
	}

	c.actor = a
	return nil
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setLines(lines []OrderLine) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	lineErrs := make([]error, 0)
	normalized := make([]OrderLine, 0, len(lines))
	for i, line := range lines {
		ref, err := order.NewProductRef(string(line.ProductRef))
		if err != nil {
			lineErrs = append(lineErrs, fmt.Errorf("item %d: %w", i, err))
			continue
		}
		if line.Quantity < 1 {
			lineErrs = append(lineErrs, fmt.Errorf("item %d: %w", i,
				errs.NewValueIsOutOfRangeError("quantity", line.Quantity, 1, "unbounded")))
			continue
		}
		normalized = append(normalized, OrderLine{ProductRef: ref, Quantity: line.Quantity})
	}
	if err := errors.Join(lineErrs...); err != nil {
		return err
	}

	c.lines = normalized
	return nil
}

func (c *CreateOrderCommand) setPaymentMethod(method order.PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}

	c.paymentMethod = method
	return nil
}
