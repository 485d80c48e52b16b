package jobs

import (
	"fmt"
	"log/slog"

	"storefront/internal/fanout"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	subscriptionSweepJob *SubscriptionSweepJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(registry *fanout.Registry, logger *slog.Logger) *JobManager {
	return &JobManager{
		subscriptionSweepJob: NewSubscriptionSweepJob(registry, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.subscriptionSweepJob.Start(); err != nil {
		return fmt.Errorf("failed to start subscription sweep job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.subscriptionSweepJob.Stop()
}
