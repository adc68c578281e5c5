package jobs

import (
	"fmt"
	"log/slog"

	"storefront/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	relayJob *InvalidationRelayJob
	purgeJob *OutboxPurgeJob
}

func NewJobManager(
	relayHandler relayHandler,
	relayCmd commands.RelayInvalidationsCommand,
	purgeHandler purgeHandler,
	purgeCmd commands.PurgeSentInvalidationsCommand,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		relayJob: NewInvalidationRelayJob(relayHandler, relayCmd, logger),
		purgeJob: NewOutboxPurgeJob(purgeHandler, purgeCmd, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.relayJob.Start(); err != nil {
		return fmt.Errorf("failed to start invalidation relay job: %w", err)
	}

	if err := jm.purgeJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.relayJob.Stop()
		return fmt.Errorf("failed to start outbox purge job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs and waits for running ones to finish.
func (jm *JobManager) StopAll() {
	jm.purgeJob.Stop()
	jm.relayJob.Stop()
}
