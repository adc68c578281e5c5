package queries_test

import (
	"errors"
	"testing"

	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/actor"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewListMyOrdersQuery(t *testing.T) {
	query, err := queries.NewListMyOrdersQuery(newActor(t, false))
	require.NoError(t, err)
	require.NoError(t, query.Validate())

	_, err = queries.NewListMyOrdersQuery(actor.Actor{})
	require.ErrorIs(t, err, actor.ErrActorIsNotConstructed)

	assert.ErrorIs(t, queries.ListMyOrdersQuery{}.Validate(), queries.ErrListMyOrdersQueryIsNotConstructed)
}

func TestListMyOrdersQueryHandler_Handle_FiltersByOwner(t *testing.T) {
	ctx := t.Context()
	owner := newActor(t, false)
	mine := []*order.Order{newOrder(t, owner.ID()), newOrder(t, owner.ID())}

	reader := new(MockOrderReader)
	reader.On("List", ctx, ports.OwnedBy(owner.ID())).Return(mine, nil).Once()

	query, _ := queries.NewListMyOrdersQuery(owner)
	result, err := queries.NewListMyOrdersQueryHandler(reader).Handle(ctx, query)

	require.NoError(t, err)
	assert.Equal(t, mine, result)
	reader.AssertExpectations(t)
}

func TestListMyOrdersQueryHandler_Handle_AdminSeesOnlyOwnOrders(t *testing.T) {
	ctx := t.Context()
	admin := newActor(t, true)

	reader := new(MockOrderReader)
	reader.On("List", ctx, ports.OwnedBy(admin.ID())).Return([]*order.Order{}, nil).Once()

	query, _ := queries.NewListMyOrdersQuery(admin)
	result, err := queries.NewListMyOrdersQueryHandler(reader).Handle(ctx, query)

	require.NoError(t, err)
	assert.Empty(t, result)
	reader.AssertExpectations(t)
}

func TestListMyOrdersQueryHandler_Handle_ReaderError(t *testing.T) {
	ctx := t.Context()
	owner := newActor(t, false)

	reader := new(MockOrderReader)
	reader.On("List", ctx, ports.OwnedBy(owner.ID())).Return(nil, errors.New("db down")).Once()

	query, _ := queries.NewListMyOrdersQuery(owner)
	_, err := queries.NewListMyOrdersQueryHandler(reader).Handle(ctx, query)

	require.EqualError(t, err, "db down")
}
