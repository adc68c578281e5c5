// Package notify combines invalidation publishers so the outbox relay
// delivers every notice to each configured channel.
package notify

import (
	"context"
	"errors"
	"log/slog"

	"storefront/internal/core/domain/model/invalidation"
	"storefront/internal/core/ports"
)

var _ ports.InvalidationPublisher = (*FanOut)(nil)

// Target is one named channel in a FanOut. Required targets fail the publish
// when they fail; best-effort targets are only logged.
type Target struct {
	Name      string
	Publisher ports.InvalidationPublisher
	Required  bool
}

type FanOut struct {
	targets []Target
	logger  *slog.Logger
}

func NewFanOut(logger *slog.Logger, targets ...Target) *FanOut {
	if logger == nil {
		logger = slog.Default()
	}
	active := make([]Target, 0, len(targets))
	for _, target := range targets {
		if target.Publisher != nil {
			active = append(active, target)
		}
	}
	return &FanOut{
		targets: active,
		logger:  logger.With("component", "invalidation_fanout"),
	}
}

// Publish hands notices to every target and joins the errors of required ones.
func (f *FanOut) Publish(ctx context.Context, notices ...invalidation.Notice) error {
	if len(notices) == 0 {
		return nil
	}

	var requiredErrs []error
	for _, target := range f.targets {
		err := target.Publisher.Publish(ctx, notices...)
		if err == nil {
			continue
		}
		if target.Required {
			requiredErrs = append(requiredErrs, err)
			continue
		}
		f.logger.WarnContext(ctx, "best-effort invalidation target failed",
			"target", target.Name, "count", len(notices), "error", err)
	}
	return errors.Join(requiredErrs...)
}

// LogPublisher writes notices to the log. It stands in for a broker in
// deployments without one.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogPublisher{logger: logger.With("component", "invalidation_log")}
}

func (p *LogPublisher) Publish(ctx context.Context, notices ...invalidation.Notice) error {
	for _, notice := range notices {
		tags := make([]string, 0, len(notice.Tags))
		for _, tag := range notice.Tags {
			tags = append(tags, tag.String())
		}
		p.logger.InfoContext(ctx, "views invalidated",
			"event", string(notice.Event),
			"order_id", notice.OrderID.String(),
			"tags", tags)
	}
	return nil
}
