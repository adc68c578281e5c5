package commands

import (
	"errors"
	"fmt"
	"strings"

	"storefront/internal/core/domain/model/actor"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var (
	ErrApplyPaymentStatusCommandIsNotConstructed = errors.New(
		"ApplyPaymentStatusCommand must be created via NewApplyPaymentStatusCommand constructor",
	)
)

// ApplyPaymentStatusCommand asks to move an order's payment axis.
type ApplyPaymentStatusCommand struct { //nolint:recvcheck //using for validation
	actor         actor.Actor
	orderID       kernel.UUID
	status        order.PaymentStatus
	transactionID *string

	guard guard.ConstructorGuard
}

// NewApplyPaymentStatusCommand validates the request shape. A transaction id is
// only accepted together with the paid status.
func NewApplyPaymentStatusCommand(
	a actor.Actor,
	orderID kernel.UUID,
	status order.PaymentStatus,
	transactionID *string,
) (ApplyPaymentStatusCommand, error) {
	cmd := ApplyPaymentStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.Validate(),
		orderID.Validate(),
		status.Validate(),
		cmd.setTransactionID(status, transactionID),
	); err != nil {
		return ApplyPaymentStatusCommand{}, err
	}

	cmd.actor = a
	cmd.orderID = orderID
	cmd.status = status
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ApplyPaymentStatusCommand) Validate() error {
	return c.guard.Validate(ErrApplyPaymentStatusCommandIsNotConstructed)
}

func (c ApplyPaymentStatusCommand) Actor() actor.Actor {
	return c.actor
}

func (c ApplyPaymentStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ApplyPaymentStatusCommand) Status() order.PaymentStatus {
	return c.status
}

// TransactionID returns the external payment reference, or nil.
func (c ApplyPaymentStatusCommand) TransactionID() *string {
	if c.transactionID == nil {
		return nil
	}
	txn := *c.transactionID
	return &txn
}

func (c *ApplyPaymentStatusCommand) setTransactionID(status order.PaymentStatus, transactionID *string) error {
	if transactionID == nil {
		return nil
	}
	if status != order.PaymentPaid {
		return errs.NewValueIsInvalidErrorWithCause(
			"transactionId",
			fmt.Errorf("only accepted with status %s", order.PaymentPaid),
		)
	}

	txn := strings.TrimSpace(*transactionID)
	if txn == "" {
		return errs.NewValueIsRequiredError("transactionId")
	}

	c.transactionID = &txn
	return nil
}
