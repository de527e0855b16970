// Package jobs provides scheduled background tasks for the order service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// OutboxRelayJob runs every second and drains the transactional outbox:
// lifecycle events are published to the broker, notifications are handed to
// the email provider. Records are marked sent only after a successful
// dispatch, making downstream delivery at-least-once; failed records are
// rescheduled with linear backoff.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(outboxRepo, publisher, notifier, backoffBase, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
package jobs
