// Package queries contains the read operations of the order workflow: the
// owner's order list, the admin order list and a single order.
package queries

import (
	"errors"

	"storefront/internal/core/domain/model/actor"
	"storefront/internal/pkg/guard"
)

var (
	ErrListMyOrdersQueryIsNotConstructed = errors.New(
		"ListMyOrdersQuery must be created via NewListMyOrdersQuery constructor",
	)
)

// ListMyOrdersQuery retrieves the acting user's own orders, newest first.
//
// Example:
//
//	query, err := NewListMyOrdersQuery(currentActor)
//	if err != nil {
//	    return err
//	}
//	orders, err := NewListMyOrdersQueryHandler(reader).Handle(ctx, query)
type ListMyOrdersQuery struct {
	actor actor.Actor

	guard guard.ConstructorGuard
}

func NewListMyOrdersQuery(a actor.Actor) (ListMyOrdersQuery, error) {
	if err := a.Validate(); err != nil {
		return ListMyOrdersQuery{}, err
	}
	return ListMyOrdersQuery{actor: a, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListMyOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListMyOrdersQueryIsNotConstructed)
}

func (q ListMyOrdersQuery) Actor() actor.Actor {
	return q.actor
}
