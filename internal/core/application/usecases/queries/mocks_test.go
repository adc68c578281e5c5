package queries_test

import (
	"context"
	"testing"
	"time"

	"storefront/internal/core/domain/model/actor"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderReader struct{ mock.Mock }

func (m *MockOrderReader) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderReader) List(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockUserDirectory struct{ mock.Mock }

func (m *MockUserDirectory) Profiles(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]ports.UserProfile, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[kernel.UUID]ports.UserProfile), args.Error(1)
}

func newActor(t *testing.T, admin bool) actor.Actor {
	t.Helper()
	a, err := actor.NewActor(kernel.NewUUID(), admin)
	require.NoError(t, err)
	return a
}

func newOrder(t *testing.T, ownerID kernel.UUID) *order.Order {
	t.Helper()
	price, err := kernel.MoneyFromString("10.00")
	require.NoError(t, err)
	item, err := order.NewItem("P1", 2, price)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), ownerID, []order.Item{item}, order.PaymentMethodCard, time.Now())
	require.NoError(t, err)
	return o
}
