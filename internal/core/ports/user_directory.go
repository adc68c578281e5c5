package ports

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
)

// UserProfile is the display data the admin order list shows for an owner.
type UserProfile struct {
	ID    kernel.UUID
	Name  string
	Email string
}

// UserDirectory looks up owner profiles in the user service.
type UserDirectory interface {
	// Profiles returns the profiles found for ids. Missing users are absent from
	// the result and are not an error.
	Profiles(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]UserProfile, error)
}
