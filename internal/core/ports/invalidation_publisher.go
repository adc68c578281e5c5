package ports

import (
	"context"

	"storefront/internal/core/domain/model/invalidation"
)

// InvalidationPublisher delivers invalidation notices to caches and clients.
// Delivery is at-least-once: a notice may be published again after a crash.
type InvalidationPublisher interface {
	Publish(ctx context.Context, notices ...invalidation.Notice) error
}
