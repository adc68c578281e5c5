package commands

import (
	"context"
	"time"
)

type PurgeSentInvalidationsCommandHandler struct {
	uowFactory OutboxUoWFactory
}

func NewPurgeSentInvalidationsCommandHandler(uowFactory OutboxUoWFactory) PurgeSentInvalidationsCommandHandler {
	return PurgeSentInvalidationsCommandHandler{uowFactory: uowFactory}
}

// Handle deletes sent notices older than the retention window and returns the count.
func (h *PurgeSentInvalidationsCommandHandler) Handle(ctx context.Context, cmd PurgeSentInvalidationsCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	purged, err := uow.OutboxRepository().PurgeSent(ctx, time.Now().Add(-cmd.Retention()))
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return purged, nil
}
