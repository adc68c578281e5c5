// Package actor models the authenticated identity behind a request.
package actor

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")

// Actor is the authenticated user making a request. The admin flag is the only
// capability the order workflow distinguishes.
type Actor struct {
	id      kernel.UUID
	isAdmin bool
	guard   guard.ConstructorGuard
}

// NewActor builds an Actor from a resolved identity.
func NewActor(id kernel.UUID, isAdmin bool) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	return Actor{id: id, isAdmin: isAdmin, guard: guard.NewConstructorGuard()}, nil
}

func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

func (a Actor) ID() kernel.UUID {
	return a.id
}

func (a Actor) IsAdmin() bool {
	return a.isAdmin
}

// Owns reports whether the actor is the user identified by ownerID.
func (a Actor) Owns(ownerID kernel.UUID) bool {
	return a.id.IsEqual(ownerID)
}
