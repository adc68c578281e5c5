package services_test

import (
	"testing"
	"time"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusTransitioner_Scenario(t *testing.T) {
	engine := services.NewStatusTransitioner(order.DefaultDeliveryPolicy())
	owner := newActor(t, false)
	admin := newActor(t, true)
	o := newOrderOwnedBy(t, owner.ID(), order.PaymentMethodCard)
	now := time.Now()

	assert.Equal(t, "20.00", o.TotalPrice().String())
	assert.Equal(t, order.PaymentPending, o.PaymentStatus())
	assert.Equal(t, order.DeliveryPending, o.DeliveryStatus())

	txn := "T1"
	changed, err := engine.ApplyPayment(admin, o, order.PaymentPaid, &txn, now)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, order.PaymentPaid, o.PaymentStatus())
	assert.Equal(t, "T1", *o.TransactionID())

	changed, err = engine.ApplyDelivery(admin, o, order.DeliveryShipped, now)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, order.DeliveryShipped, o.DeliveryStatus())

	_, err = engine.ApplyPayment(owner, o, order.PaymentPaid, nil, now)
	require.ErrorIs(t, err, errs.ErrForbidden)
}

func TestStatusTransitioner_NonAdminIsAlwaysForbidden(t *testing.T) {
	engine := services.NewStatusTransitioner(order.DefaultDeliveryPolicy())
	admin := newActor(t, true)
	customer := newActor(t, false)
	now := time.Now()

	states := map[string]func(*order.Order){
		"pending": func(*order.Order) {},
		"paid":    func(o *order.Order) { _, _ = engine.ApplyPayment(admin, o, order.PaymentPaid, nil, now) },
		"failed":  func(o *order.Order) { _, _ = engine.ApplyPayment(admin, o, order.PaymentFailed, nil, now) },
		"shipped": func(o *order.Order) { _, _ = engine.ApplyDelivery(admin, o, order.DeliveryShipped, now) },
		"paid+done": func(o *order.Order) {
			_, _ = engine.ApplyPayment(admin, o, order.PaymentPaid, nil, now)
			_, _ = engine.ApplyDelivery(admin, o, order.DeliveryDone, now)
		},
	}

	for name, setup := range states {
		for _, method := range []order.PaymentMethod{order.PaymentMethodCard, order.PaymentMethodCashOnDelivery} {
			t.Run(name+" "+method.String(), func(t *testing.T) {
				o := newOrderOwnedBy(t, customer.ID(), method)
				setup(o)

				for _, target := range []order.PaymentStatus{order.PaymentPending, order.PaymentPaid, order.PaymentFailed} {
					_, err := engine.ApplyPayment(customer, o, target, nil, now)
					require.ErrorIs(t, err, errs.ErrForbidden)
				}
				for _, target := range []order.DeliveryStatus{order.DeliveryPending, order.DeliveryShipped, order.DeliveryDone} {
					_, err := engine.ApplyDelivery(customer, o, target, now)
					require.ErrorIs(t, err, errs.ErrForbidden)
				}
			})
		}
	}
}

func TestStatusTransitioner_DeliveryBeforePayment(t *testing.T) {
	admin := newActor(t, true)
	now := time.Now()

	t.Run("card order pending payment fails precondition", func(t *testing.T) {
		engine := services.NewStatusTransitioner(order.DefaultDeliveryPolicy())
		o := newOrderOwnedBy(t, newActor(t, false).ID(), order.PaymentMethodCard)

		_, err := engine.ApplyDelivery(admin, o, order.DeliveryShipped, now)

		require.ErrorIs(t, err, errs.ErrPreconditionFailed)
	})

	t.Run("cash on delivery ships unpaid when policy allows", func(t *testing.T) {
		engine := services.NewStatusTransitioner(order.NewDeliveryPolicy(true))
		o := newOrderOwnedBy(t, newActor(t, false).ID(), order.PaymentMethodCashOnDelivery)

		changed, err := engine.ApplyDelivery(admin, o, order.DeliveryShipped, now)

		require.NoError(t, err)
		assert.True(t, changed)
		assert.True(t, engine.Policy().CashOnDeliveryShipsUnpaid())
	})

	t.Run("cash on delivery waits for payment when policy forbids", func(t *testing.T) {
		engine := services.NewStatusTransitioner(order.NewDeliveryPolicy(false))
		o := newOrderOwnedBy(t, newActor(t, false).ID(), order.PaymentMethodCashOnDelivery)

		_, err := engine.ApplyDelivery(admin, o, order.DeliveryShipped, now)

		require.ErrorIs(t, err, errs.ErrPreconditionFailed)
	})
}

func TestStatusTransitioner_IdempotentPaid(t *testing.T) {
	engine := services.NewStatusTransitioner(order.DefaultDeliveryPolicy())
	admin := newActor(t, true)
	o := newOrderOwnedBy(t, newActor(t, false).ID(), order.PaymentMethodCard)
	txn := "T1"

	_, err := engine.ApplyPayment(admin, o, order.PaymentPaid, &txn, time.Now())
	require.NoError(t, err)
	first := *o

	changed, err := engine.ApplyPayment(admin, o, order.PaymentPaid, &txn, time.Now().Add(time.Minute))

	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, first.PaymentStatus(), o.PaymentStatus())
	assert.Equal(t, *first.TransactionID(), *o.TransactionID())
	assert.Equal(t, first.UpdatedAt(), o.UpdatedAt())
}
