package commands

import (
	"errors"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var (
	ErrRelayInvalidationsCommandIsNotConstructed = errors.New(
		"RelayInvalidationsCommand must be created via NewRelayInvalidationsCommand constructor",
	)
)

// RelayInvalidationsCommand publishes one batch of pending invalidation notices.
type RelayInvalidationsCommand struct {
	batchSize int

	guard guard.ConstructorGuard
}

func NewRelayInvalidationsCommand(batchSize int) (RelayInvalidationsCommand, error) {
	if batchSize < 1 {
		return RelayInvalidationsCommand{}, errs.NewValueIsOutOfRangeError("batch size", batchSize, 1, "unbounded")
	}

	return RelayInvalidationsCommand{
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RelayInvalidationsCommand) Validate() error {
	return c.guard.Validate(ErrRelayInvalidationsCommandIsNotConstructed)
}

func (c RelayInvalidationsCommand) BatchSize() int {
	return c.batchSize
}
