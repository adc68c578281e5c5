package commands_test

import (
	"testing"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/actor"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand_ValidInput(t *testing.T) {
	owner := newActor(t, false)
	id := kernel.NewUUID()
	lines := []commands.OrderLine{{ProductRef: " P1 ", Quantity: 2}, {ProductRef: "P2", Quantity: 1}}

	cmd, err := commands.NewCreateOrderCommand(owner, id, lines, order.PaymentMethodCard)

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, id, cmd.OrderID())
	assert.True(t, owner.ID().IsEqual(cmd.Actor().ID()))
	assert.Equal(t, order.PaymentMethodCard, cmd.PaymentMethod())
	assert.Equal(t, []commands.OrderLine{{ProductRef: "P1", Quantity: 2}, {ProductRef: "P2", Quantity: 1}}, cmd.Lines())
}

func TestNewCreateOrderCommand_ProductRefsAreDistinct(t *testing.T) {
	lines := []commands.OrderLine{{ProductRef: "P1", Quantity: 1}, {ProductRef: "P2", Quantity: 1}, {ProductRef: "P1", Quantity: 3}}

	cmd, err := commands.NewCreateOrderCommand(newActor(t, false), kernel.NewUUID(), lines, order.PaymentMethodPayPal)

	require.NoError(t, err)
	assert.Equal(t, []order.ProductRef{"P1", "P2"}, cmd.ProductRefs())
	assert.Len(t, cmd.Lines(), 3)
}

func TestNewCreateOrderCommand_InvalidInput(t *testing.T) {
	owner := newActor(t, false)
	valid := []commands.OrderLine{{ProductRef: "P1", Quantity: 1}}

	tests := []struct {
		name   string
		actor  actor.Actor
		id     kernel.UUID
		lines  []commands.OrderLine
		method order.PaymentMethod
		target error
	}{
		{"no items", owner, kernel.NewUUID(), nil, order.PaymentMethodCard, errs.ErrValueIsRequired},
		{"zero quantity", owner, kernel.NewUUID(), []commands.OrderLine{{ProductRef: "P1", Quantity: 0}}, order.PaymentMethodCard, errs.ErrValueIsOutOfRange},
		{"blank product", owner, kernel.NewUUID(), []commands.OrderLine{{ProductRef: "  ", Quantity: 1}}, order.PaymentMethodCard, errs.ErrValueIsRequired},
		{"unknown payment method", owner, kernel.NewUUID(), valid, order.PaymentMethodUnknown, errs.ErrValueIsInvalid},
		{"missing order id", owner, kernel.UUID{}, valid, order.PaymentMethodCard, kernel.ErrUUIDIsNotConstructed},
		{"missing actor", actor.Actor{}, kernel.NewUUID(), valid, order.PaymentMethodCard, actor.ErrActorIsNotConstructed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := commands.NewCreateOrderCommand(tt.actor, tt.id, tt.lines, tt.method)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestCreateOrderCommand_NotConstructedViaConstructor(t *testing.T) {
	cmd := commands.CreateOrderCommand{}
	assert.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
}
