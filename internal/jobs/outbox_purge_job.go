package jobs

import (
	"context"
	"log/slog"

	"storefront/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

type purgeHandler interface {
	Handle(ctx context.Context, cmd commands.PurgeSentInvalidationsCommand) (int64, error)
}

// OutboxPurgeJob deletes relayed notices older than the retention once an hour.
type OutboxPurgeJob struct {
	handler purgeHandler
	cmd     commands.PurgeSentInvalidationsCommand
	cron    *cron.Cron
	logger  *slog.Logger
}

func NewOutboxPurgeJob(
	handler purgeHandler,
	cmd commands.PurgeSentInvalidationsCommand,
	logger *slog.Logger,
) *OutboxPurgeJob {
	return &OutboxPurgeJob{
		handler: handler,
		cmd:     cmd,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "outbox_purge_job"),
	}
}

// Start schedules the purge at the top of every hour.
func (j *OutboxPurgeJob) Start() error {
	_, err := j.cron.AddFunc("0 0 * * * *", func() {
		j.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox purge job started (running hourly)",
		"retention", j.cmd.Retention().String())
	return nil
}

func (j *OutboxPurgeJob) RunOnce(ctx context.Context) int64 {
	purged, err := j.handler.Handle(ctx, j.cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Outbox purge failed", "error", err)
		return 0
	}
	if purged > 0 {
		j.logger.InfoContext(ctx, "Sent invalidation notices purged", "count", purged)
	}
	return purged
}

func (j *OutboxPurgeJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Outbox purge job stopped")
}
