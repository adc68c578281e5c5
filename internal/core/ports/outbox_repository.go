package ports

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/invalidation"
	"storefront/internal/core/domain/model/kernel"
)

// OutboxRepository stores invalidation notices until they are relayed.
type OutboxRepository interface {
	// Add stores notices as pending.
	Add(ctx context.Context, notices ...invalidation.Notice) error

	// FetchPending locks and returns up to limit pending notices, oldest first.
	// Rows locked by another transaction are skipped.
	FetchPending(ctx context.Context, limit int) ([]invalidation.Notice, error)

	// MarkSent flags the notices as relayed.
	MarkSent(ctx context.Context, ids []kernel.UUID, sentAt time.Time) error

	// PurgeSent deletes notices relayed before the given time and reports how many
	// were removed.
	PurgeSent(ctx context.Context, before time.Time) (int64, error)
}
