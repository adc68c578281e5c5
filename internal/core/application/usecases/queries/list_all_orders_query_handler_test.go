package queries_test

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestListAllOrdersQueryHandler_Handle_NonAdminIsForbidden(t *testing.T) {
	reader := new(MockOrderReader)
	users := new(MockUserDirectory)
	query, err := queries.NewListAllOrdersQuery(newActor(t, false))
	require.NoError(t, err)

	result, err := queries.NewListAllOrdersQueryHandler(reader, users, discardLogger()).Handle(t.Context(), query)

	require.ErrorIs(t, err, errs.ErrForbidden)
	assert.Nil(t, result)
	reader.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestListAllOrdersQueryHandler_Handle_EnrichesOwners(t *testing.T) {
	ctx := t.Context()
	alice, bob := kernel.NewUUID(), kernel.NewUUID()
	orders := []*order.Order{newOrder(t, alice), newOrder(t, bob), newOrder(t, alice)}

	reader := new(MockOrderReader)
	reader.On("List", ctx, ports.OrderFilter{}).Return(orders, nil).Once()
	users := new(MockUserDirectory)
	users.On("Profiles", ctx, []kernel.UUID{alice, bob}).Return(map[kernel.UUID]ports.UserProfile{
		alice: {ID: alice, Name: "Alice", Email: "alice@example.com"},
	}, nil).Once()

	query, _ := queries.NewListAllOrdersQuery(newActor(t, true))
	result, err := queries.NewListAllOrdersQueryHandler(reader, users, discardLogger()).Handle(ctx, query)

	require.NoError(t, err)
	require.Len(t, result, 3)
	assert.Equal(t, orders[0], result[0].Order)
	require.NotNil(t, result[0].Owner)
	assert.Equal(t, "Alice", result[0].Owner.Name)
	assert.Nil(t, result[1].Owner, "missing profiles are omitted")
	require.NotNil(t, result[2].Owner)
	assert.Equal(t, "alice@example.com", result[2].Owner.Email)
	users.AssertExpectations(t)
}

func TestListAllOrdersQueryHandler_Handle_UserServiceDown(t *testing.T) {
	ctx := t.Context()
	orders := []*order.Order{newOrder(t, kernel.NewUUID())}

	reader := new(MockOrderReader)
	reader.On("List", ctx, ports.OrderFilter{}).Return(orders, nil).Once()
	users := new(MockUserDirectory)
	users.On("Profiles", ctx, mock.Anything).Return(nil, errors.New("users down")).Once()

	query, _ := queries.NewListAllOrdersQuery(newActor(t, true))
	result, err := queries.NewListAllOrdersQueryHandler(reader, users, discardLogger()).Handle(ctx, query)

	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Nil(t, result[0].Owner)
}

func TestListAllOrdersQueryHandler_Handle_NoOrdersSkipsUserLookup(t *testing.T) {
	ctx := t.Context()
	reader := new(MockOrderReader)
	reader.On("List", ctx, ports.OrderFilter{}).Return([]*order.Order{}, nil).Once()
	users := new(MockUserDirectory)

	query, _ := queries.NewListAllOrdersQuery(newActor(t, true))
	result, err := queries.NewListAllOrdersQueryHandler(reader, users, discardLogger()).Handle(ctx, query)

	require.NoError(t, err)
	assert.Empty(t, result)
	users.AssertNotCalled(t, "Profiles", mock.Anything, mock.Anything)
}

func TestListAllOrdersQuery_NotConstructedViaConstructor(t *testing.T) {
	assert.ErrorIs(t, queries.ListAllOrdersQuery{}.Validate(), queries.ErrListAllOrdersQueryIsNotConstructed)
}
