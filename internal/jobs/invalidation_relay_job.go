package jobs

import (
	"context"
	"log/slog"

	"storefront/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// maxBatchesPerRun bounds how long one tick may drain a backlog.
const maxBatchesPerRun = 10

type relayHandler interface {
	Handle(ctx context.Context, cmd commands.RelayInvalidationsCommand) (int, error)
}

// InvalidationRelayJob publishes pending outbox notices every second.
type InvalidationRelayJob struct {
	handler relayHandler
	cmd     commands.RelayInvalidationsCommand
	cron    *cron.Cron
	logger  *slog.Logger
}

func NewInvalidationRelayJob(
	handler relayHandler,
	cmd commands.RelayInvalidationsCommand,
	logger *slog.Logger,
) *InvalidationRelayJob {
	return &InvalidationRelayJob{
		handler: handler,
		cmd:     cmd,
		cron:    cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:  logger.With("component", "invalidation_relay_job"),
	}
}

// Start schedules the relay to run every second.
func (j *InvalidationRelayJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		j.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Invalidation relay job started (running every second)",
		"batch_size", j.cmd.BatchSize())
	return nil
}

// RunOnce relays batches until the outbox is drained or maxBatchesPerRun is
// reached. It returns the number of notices published.
func (j *InvalidationRelayJob) RunOnce(ctx context.Context) int {
	total := 0
	for range maxBatchesPerRun {
		n, err := j.handler.Handle(ctx, j.cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Invalidation relay failed", "error", err)
			break
		}
		total += n
		if n < j.cmd.BatchSize() {
			break
		}
	}

	if total > 0 {
		j.logger.DebugContext(ctx, "Invalidation notices relayed", "count", total)
	}
	return total
}

func (j *InvalidationRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Invalidation relay job stopped")
}
