// Package jobs provides scheduled background tasks for the order service.
//
// Jobs are cron schedules built on github.com/robfig/cron/v3. They never touch
// order state; they only move invalidation notices out of the outbox table.
//
// # Available Jobs
//
// 1. InvalidationRelayJob - Runs every second and publishes pending notices in batches
// 2. OutboxPurgeJob - Runs hourly and deletes notices relayed longer ago than the retention
//
// # Usage
//
//	jobManager := jobs.NewJobManager(relayHandler, relayCmd, purgeHandler, purgeCmd, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed relay leaves its batch pending, so the next tick retries it. Overlapping
// relay ticks are skipped while one is still running.
package jobs
