// Package jobs provides scheduled background tasks for the storefront.
//
// Jobs are cron-based, using github.com/robfig/cron/v3, and are managed
// through JobManager:
//
//	jobManager := jobs.NewJobManager(registry, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// SubscriptionSweepJob runs every minute and removes fan-out subscriptions
// whose consumers are gone. It exists as a safety net; well-behaved
// connections unsubscribe themselves on teardown.
package jobs
