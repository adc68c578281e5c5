package commands

import (
	"errors"
	"time"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var (
	ErrPurgeSentInvalidationsCommandIsNotConstructed = errors.New(
		"PurgeSentInvalidationsCommand must be created via NewPurgeSentInvalidationsCommand constructor",
	)
)

// PurgeSentInvalidationsCommand removes relayed notices older than the retention window.
type PurgeSentInvalidationsCommand struct {
	retention time.Duration

	guard guard.ConstructorGuard
}

func NewPurgeSentInvalidationsCommand(retention time.Duration) (PurgeSentInvalidationsCommand, error) {
	if retention <= 0 {
		return PurgeSentInvalidationsCommand{}, errs.NewValueIsOutOfRangeError("retention", retention, "1ns", "unbounded")
	}

	return PurgeSentInvalidationsCommand{
		retention: retention,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c PurgeSentInvalidationsCommand) Validate() error {
	return c.guard.Validate(ErrPurgeSentInvalidationsCommandIsNotConstructed)
}

func (c PurgeSentInvalidationsCommand) Retention() time.Duration {
	return c.retention
}
