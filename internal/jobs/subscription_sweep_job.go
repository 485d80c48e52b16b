package jobs

import (
	"context"
	"log/slog"

	"storefront/internal/fanout"

	"github.com/robfig/cron/v3"
)

// SubscriptionSweepJob periodically removes dead subscriptions from the
// fan-out registry. Normal connection teardown unsubscribes on its own; the
// sweep is the safety net for paths that never got there.
type SubscriptionSweepJob struct {
	registry *fanout.Registry
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewSubscriptionSweepJob creates a sweep job over the given registry.
func NewSubscriptionSweepJob(registry *fanout.Registry, logger *slog.Logger) *SubscriptionSweepJob {
	return &SubscriptionSweepJob{
		registry: registry,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "subscription_sweep_job"),
	}
}

// Start begins the sweep job, running once a minute.
func (j *SubscriptionSweepJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		if removed := j.registry.Sweep(); removed > 0 {
			j.logger.InfoContext(context.Background(), "Swept dead subscriptions", "removed", removed)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Subscription sweep job started (running every minute)")
	return nil
}

// Stop stops the sweep job.
func (j *SubscriptionSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Subscription sweep job stopped")
}
