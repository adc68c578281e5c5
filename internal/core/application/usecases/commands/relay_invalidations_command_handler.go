package commands

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/ports"
)

// RelayInvalidationsCommandHandler moves notices from the outbox to the
// publisher. Rows stay locked while publishing and are marked sent in the same
// transaction; a failure before commit leaves them pending for the next run, so
// a notice can be delivered more than once but is never lost.
type RelayInvalidationsCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.InvalidationPublisher
}

func NewRelayInvalidationsCommandHandler(
	uowFactory OutboxUoWFactory,
	publisher ports.InvalidationPublisher,
) RelayInvalidationsCommandHandler {
	return RelayInvalidationsCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle relays one batch and returns how many notices were published.
func (h *RelayInvalidationsCommandHandler) Handle(ctx context.Context, cmd RelayInvalidationsCommand) (int, error) {
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

	outbox := uow.OutboxRepository()
	notices, err := outbox.FetchPending(ctx, cmd.BatchSize())
	if err != nil {
		return 0, err
	}
	if len(notices) == 0 {
		return 0, nil
	}

	if err = h.publisher.Publish(ctx, notices...); err != nil {
		return 0, err
	}

	ids := make([]kernel.UUID, 0, len(notices))
	for _, n := range notices {
		ids = append(ids, n.ID)
	}
	if err = outbox.MarkSent(ctx, ids, time.Now()); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return len(notices), nil
}
