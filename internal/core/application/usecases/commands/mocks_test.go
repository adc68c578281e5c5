package commands_test

import (
	"context"
	"testing"
	"time"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/actor"
	"storefront/internal/core/domain/model/invalidation"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) List(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) Add(ctx context.Context, notices ...invalidation.Notice) error {
	args := m.Called(ctx, notices)
	return args.Error(0)
}

func (m *MockOutboxRepository) FetchPending(ctx context.Context, limit int) ([]invalidation.Notice, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]invalidation.Notice), args.Error(1)
}

func (m *MockOutboxRepository) MarkSent(ctx context.Context, ids []kernel.UUID, sentAt time.Time) error {
	args := m.Called(ctx, ids, sentAt)
	return args.Error(0)
}

func (m *MockOutboxRepository) PurgeSent(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

type MockOutboxUoW struct{ mock.Mock }

func (m *MockOutboxUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockOutboxUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockOutboxUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOutboxUoW) OutboxRepository() ports.OutboxRepository {
	args := m.Called()
	return args.Get(0).(ports.OutboxRepository)
}

type MockOutboxUoWFactory struct{ mock.Mock }

func (m *MockOutboxUoWFactory) Create() commands.OutboxUoW {
	args := m.Called()
	return args.Get(0).(commands.OutboxUoW)
}

type MockProductCatalog struct{ mock.Mock }

func (m *MockProductCatalog) Prices(
	ctx context.Context,
	refs []order.ProductRef,
) (map[order.ProductRef]kernel.Money, error) {
	args := m.Called(ctx, refs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[order.ProductRef]kernel.Money), args.Error(1)
}

type MockInvalidationPublisher struct{ mock.Mock }

func (m *MockInvalidationPublisher) Publish(ctx context.Context, notices ...invalidation.Notice) error {
	args := m.Called(ctx, notices)
	return args.Error(0)
}

func newActor(t *testing.T, admin bool) actor.Actor {
	t.Helper()
	a, err := actor.NewActor(kernel.NewUUID(), admin)
	require.NoError(t, err)
	return a
}

func money(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(s)
	require.NoError(t, err)
	return m
}

// storedOrder builds an order as the repository would return it.
func storedOrder(
	t *testing.T,
	ownerID kernel.UUID,
	method order.PaymentMethod,
	payment order.PaymentStatus,
	delivery order.DeliveryStatus,
) *order.Order {
	t.Helper()
	item, err := order.NewItem("P1", 2, money(t, "10.00"))
	require.NoError(t, err)

	var txn *string
	if payment == order.PaymentPaid {
		ref := "T1"
		txn = &ref
	}

	created := time.Now().Add(-time.Hour)
	o, err := order.RestoreOrder(order.Snapshot{
		ID:             kernel.NewUUID(),
		OwnerID:        ownerID,
		Items:          []order.Item{item},
		TotalPrice:     money(t, "20.00"),
		PaymentMethod:  method,
		TransactionID:  txn,
		PaymentStatus:  payment,
		DeliveryStatus: delivery,
		CreatedAt:      created,
		UpdatedAt:      created,
		Version:        1,
	})
	require.NoError(t, err)
	return o
}

// sameOrder matches a stored order by id, whatever its current state.
func sameOrder(id kernel.UUID) any {
	return mock.MatchedBy(func(o *order.Order) bool { return o.ID().IsEqual(id) })
}
