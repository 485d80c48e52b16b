package ordersync

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DefaultPollInterval is the snapshot cadence when none is configured.
const DefaultPollInterval = 5 * time.Second

// Fetcher retrieves the shopper's current order list from the server.
type Fetcher interface {
	Fetch(ctx context.Context) ([]OrderView, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context) ([]OrderView, error)

// Fetch implements Fetcher.
func (f FetcherFunc) Fetch(ctx context.Context) ([]OrderView, error) {
	return f(ctx)
}

// Poller periodically fetches order snapshots and feeds them to the
// reconciler. It can be paused while the page is hidden; Resume triggers an
// immediate catch-up fetch so the mirror does not wait out a full interval.
type Poller struct {
	fetcher    Fetcher
	reconciler *Reconciler
	interval   time.Duration
	logger     *slog.Logger

	mu     sync.Mutex
	paused bool
	kick   chan struct{}
}

// NewPoller creates a poller. A non-positive interval falls back to
// DefaultPollInterval.
func NewPoller(fetcher Fetcher, reconciler *Reconciler, interval time.Duration, logger *slog.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{
		fetcher:    fetcher,
		reconciler: reconciler,
		interval:   interval,
		logger:     logger.With(slog.String("component", "ordersync")),
		kick:       make(chan struct{}, 1),
	}
}

// Run polls until the context is cancelled. The first fetch happens
// immediately.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll(ctx)
		case <-p.kick:
			p.poll(ctx)
		}
	}
}

// Pause suspends polling. Ticks that fire while paused are skipped.
func (p *Poller) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.paused = true
}

// Resume re-enables polling and requests an immediate fetch.
func (p *Poller) Resume() {
	p.mu.Lock()
	p.paused = false
	p.mu.Unlock()

	select {
	case p.kick <- struct{}{}:
	default:
	}
}

func (p *Poller) poll(ctx context.Context) {
	p.mu.Lock()
	paused := p.paused
	p.mu.Unlock()
	if paused {
		return
	}

	views, err := p.fetcher.Fetch(ctx)
	if err != nil {
		if ctx.Err() == nil {
			p.logger.Warn("order snapshot fetch failed", "error", err)
		}
		return
	}
	p.reconciler.ApplySnapshot(views)
}
