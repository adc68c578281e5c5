package queries

import (
	"errors"

	"storefront/internal/core/domain/model/actor"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/guard"
)

var (
	ErrListAllOrdersQueryIsNotConstructed = errors.New(
		"ListAllOrdersQuery must be created via NewListAllOrdersQuery constructor",
	)
)

// ListAllOrdersQuery retrieves every order for the admin dashboard.
type ListAllOrdersQuery struct {
	actor actor.Actor

	guard guard.ConstructorGuard
}

func NewListAllOrdersQuery(a actor.Actor) (ListAllOrdersQuery, error) {
	if err := a.Validate(); err != nil {
		return ListAllOrdersQuery{}, err
	}
	return ListAllOrdersQuery{actor: a, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListAllOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListAllOrdersQueryIsNotConstructed)
}

func (q ListAllOrdersQuery) Actor() actor.Actor {
	return q.actor
}

// ListAllOrdersQueryResponse is one row of the admin list. Owner is nil when the
// user service has no profile for the order's owner.
type ListAllOrdersQueryResponse struct {
	Order *order.Order
	Owner *ports.UserProfile
}
