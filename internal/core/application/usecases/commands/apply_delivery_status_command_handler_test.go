package commands_test

import (
	"testing"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func deliveryCommand(t *testing.T, id kernel.UUID, status order.DeliveryStatus) commands.ApplyDeliveryStatusCommand {
	t.Helper()
	cmd, err := commands.NewApplyDeliveryStatusCommand(newActor(t, true), id, status)
	require.NoError(t, err)
	return cmd
}

// singleLoad wires a unit of work that loads stored once and expects no write.
func singleLoad(t *testing.T, stored *order.Order) (*MockOrderUoWFactory, *MockOrderUoW, *MockOrderRepository) {
	t.Helper()
	ctx := t.Context()
	repo := new(MockOrderRepository)
	repo.On("Get", ctx, stored.ID()).Return(stored, nil).Once()
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	return factory, uow, repo
}

func TestApplyDeliveryStatusCommandHandler_Handle(t *testing.T) {
	tests := []struct {
		name     string
		method   order.PaymentMethod
		payment  order.PaymentStatus
		delivery order.DeliveryStatus
		target   order.DeliveryStatus
		codShips bool
		wantErr  error
		wantNoop bool
	}{
		{"paid card ships", order.PaymentMethodCard, order.PaymentPaid, order.DeliveryPending, order.DeliveryShipped, true, nil, false},
		{"shipped becomes done", order.PaymentMethodPayPal, order.PaymentPaid, order.DeliveryShipped, order.DeliveryDone, true, nil, false},
		{"unpaid card cannot ship", order.PaymentMethodCard, order.PaymentPending, order.DeliveryPending, order.DeliveryShipped, true, errs.ErrPreconditionFailed, false},
		{"failed payment cannot ship", order.PaymentMethodPayPal, order.PaymentFailed, order.DeliveryPending, order.DeliveryShipped, true, errs.ErrPreconditionFailed, false},
		{"unpaid cash on delivery ships", order.PaymentMethodCashOnDelivery, order.PaymentPending, order.DeliveryPending, order.DeliveryShipped, true, nil, false},
		{"unpaid cash on delivery waits when disabled", order.PaymentMethodCashOnDelivery, order.PaymentPending, order.DeliveryPending, order.DeliveryShipped, false, errs.ErrPreconditionFailed, false},
		{"done cannot go back to shipped", order.PaymentMethodCard, order.PaymentPaid, order.DeliveryDone, order.DeliveryShipped, true, errs.ErrInvalidTransition, false},
		{"backwards wins over unpaid", order.PaymentMethodCard, order.PaymentPending, order.DeliveryShipped, order.DeliveryPending, true, errs.ErrInvalidTransition, false},
		{"same status is a no-op", order.PaymentMethodCard, order.PaymentPaid, order.DeliveryShipped, order.DeliveryShipped, true, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			stored := storedOrder(t, kernel.NewUUID(), tt.method, tt.payment, tt.delivery)
			factory, uow, repo := singleLoad(t, stored)
			expectWrite := tt.wantErr == nil && !tt.wantNoop
			if expectWrite {
				repo.On("Update", ctx, stored).Return(nil).Once()
				uow.On("Commit", ctx).Return(nil).Once()
			}

			engine := services.NewStatusTransitioner(order.NewDeliveryPolicy(tt.codShips))
			h := commands.NewApplyDeliveryStatusCommandHandler(factory, engine)
			updated, err := h.Handle(ctx, deliveryCommand(t, stored.ID(), tt.target))

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, updated)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.target, updated.DeliveryStatus())
			}
			if !expectWrite {
				repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
				uow.AssertNotCalled(t, "Commit", mock.Anything)
			}
			repo.AssertExpectations(t)
			uow.AssertExpectations(t)
		})
	}
}

func TestApplyDeliveryStatusCommandHandler_Handle_NonAdminIsForbidden(t *testing.T) {
	cmd, err := commands.NewApplyDeliveryStatusCommand(newActor(t, false), kernel.NewUUID(), order.DeliveryShipped)
	require.NoError(t, err)
	factory := new(MockOrderUoWFactory)

	h := commands.NewApplyDeliveryStatusCommandHandler(factory, services.NewStatusTransitioner(order.DefaultDeliveryPolicy()))
	_, err = h.Handle(t.Context(), cmd)

	require.ErrorIs(t, err, errs.ErrForbidden)
	factory.AssertNotCalled(t, "Create")
}

func TestApplyDeliveryStatusCommandHandler_Handle_ValidationError(t *testing.T) {
	h := commands.NewApplyDeliveryStatusCommandHandler(new(MockOrderUoWFactory), services.NewStatusTransitioner(order.DefaultDeliveryPolicy()))
	_, err := h.Handle(t.Context(), commands.ApplyDeliveryStatusCommand{})
	require.ErrorIs(t, err, commands.ErrApplyDeliveryStatusCommandIsNotConstructed)
}
