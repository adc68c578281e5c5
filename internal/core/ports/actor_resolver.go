package ports

import (
	"context"
	"errors"

	"storefront/internal/core/domain/model/actor"
)

// ErrUnauthenticated is returned when a request carries no usable credentials.
var ErrUnauthenticated = errors.New("unauthenticated")

// ActorResolver turns request credentials into an Actor.
type ActorResolver interface {
	// Resolve validates token and returns the actor it identifies.
	// Returns an error wrapping ErrUnauthenticated when the token is missing or invalid.
	Resolve(ctx context.Context, token string) (actor.Actor, error)
}
