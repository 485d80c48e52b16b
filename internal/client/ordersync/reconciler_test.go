package ordersync_test

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"storefront/internal/client/ordersync"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func view(id kernel.UUID, status order.Status, at time.Time) ordersync.OrderView {
	return ordersync.OrderView{
		ID:              id,
		OrderNumber:     order.NewOrderNumber(id),
		Status:          status,
		StatusUpdatedAt: at,
	}
}

func event(id kernel.UUID, from, to order.Status, at time.Time) order.StatusChangeEvent {
	return order.StatusChangeEvent{
		OrderID:     id,
		OrderNumber: order.NewOrderNumber(id),
		UserID:      kernel.NewUUID(),
		Previous:    from,
		New:         to,
		OccurredAt:  at,
	}
}

func TestReconciler_StrictlyLaterWins(t *testing.T) {
	r := ordersync.NewReconciler()
	id := kernel.NewUUID()
	t0 := time.Now()

	assert.True(t, r.ApplyEvent(event(id, order.Pending, order.Processing, t0)))

	t.Run("older update is ignored", func(t *testing.T) {
		assert.False(t, r.ApplyEvent(event(id, order.Pending, order.Cancelled, t0.Add(-time.Second))))
		got, ok := r.Get(id)
		require.True(t, ok)
		assert.Equal(t, order.Processing, got.Status)
	})

	t.Run("equal timestamp is ignored", func(t *testing.T) {
		assert.False(t, r.ApplyEvent(event(id, order.Processing, order.Delivered, t0)))
		got, _ := r.Get(id)
		assert.Equal(t, order.Processing, got.Status)
	})

	t.Run("later update wins", func(t *testing.T) {
		assert.True(t, r.ApplyEvent(event(id, order.Processing, order.Delivered, t0.Add(time.Second))))
		got, _ := r.Get(id)
		assert.Equal(t, order.Delivered, got.Status)
	})
}

func TestReconciler_PushAndPollConverge(t *testing.T) {
	id := kernel.NewUUID()
	t0 := time.Now()

	push := event(id, order.Pending, order.Processing, t0.Add(2*time.Second))
	snapshot := []ordersync.OrderView{view(id, order.Pending, t0)}

	t.Run("push before poll", func(t *testing.T) {
		r := ordersync.NewReconciler()
		require.True(t, r.ApplyEvent(push))
		assert.Zero(t, r.ApplySnapshot(snapshot), "stale snapshot must not regress the status")
		got, _ := r.Get(id)
		assert.Equal(t, order.Processing, got.Status)
	})

	t.Run("poll before push", func(t *testing.T) {
		r := ordersync.NewReconciler()
		assert.Equal(t, 1, r.ApplySnapshot(snapshot))
		require.True(t, r.ApplyEvent(push))
		got, _ := r.Get(id)
		assert.Equal(t, order.Processing, got.Status)
	})

	t.Run("duplicated push is idempotent", func(t *testing.T) {
		r := ordersync.NewReconciler()
		require.True(t, r.ApplyEvent(push))
		assert.False(t, r.ApplyEvent(push))
		got, _ := r.Get(id)
		assert.Equal(t, order.Processing, got.Status)
	})
}

func TestReconciler_SnapshotAddsUnknownOrders(t *testing.T) {
	r := ordersync.NewReconciler()
	first := kernel.NewUUID()
	second := kernel.NewUUID()
	t0 := time.Now()

	applied := r.ApplySnapshot([]ordersync.OrderView{
		view(first, order.Pending, t0),
		view(second, order.Delivered, t0.Add(time.Minute)),
	})
	assert.Equal(t, 2, applied)

	orders := r.Orders()
	require.Len(t, orders, 2)
	assert.Equal(t, second, orders[0].ID, "newest status change first")

	t.Run("orders missing from a later snapshot are kept", func(t *testing.T) {
		r.ApplySnapshot([]ordersync.OrderView{view(first, order.Processing, t0.Add(time.Hour))})
		assert.Len(t, r.Orders(), 2)
	})
}

func TestReconciler_OnChangeFiresOnlyForAcceptedUpdates(t *testing.T) {
	r := ordersync.NewReconciler()
	id := kernel.NewUUID()
	t0 := time.Now()

	var mu sync.Mutex
	var changes []order.Status
	r.OnChange(func(v ordersync.OrderView) {
		mu.Lock()
		defer mu.Unlock()
		changes = append(changes, v.Status)
	})

	r.ApplyEvent(event(id, order.Pending, order.Processing, t0))
	r.ApplyEvent(event(id, order.Pending, order.Processing, t0))
	r.ApplyEvent(event(id, order.Processing, order.Delivered, t0.Add(time.Second)))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []order.Status{order.Processing, order.Delivered}, changes)
}

func TestPoller_FeedsSnapshotsAndHonorsPause(t *testing.T) {
	r := ordersync.NewReconciler()
	id := kernel.NewUUID()
	t0 := time.Now()

	var mu sync.Mutex
	fetches := 0
	fetcher := ordersync.FetcherFunc(func(context.Context) ([]ordersync.OrderView, error) {
		mu.Lock()
		defer mu.Unlock()
		fetches++
		return []ordersync.OrderView{view(id, order.Pending, t0)}, nil
	})

	poller := ordersync.NewPoller(fetcher, r, 20*time.Millisecond, slog.New(slog.DiscardHandler))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		poller.Run(ctx)
	}()

	require.Eventually(t, func() bool {
		_, ok := r.Get(id)
		return ok
	}, time.Second, 5*time.Millisecond)

	poller.Pause()
	mu.Lock()
	seen := fetches
	mu.Unlock()

	time.Sleep(100 * time.Millisecond)
	mu.Lock()
	pausedFetches := fetches
	mu.Unlock()
	assert.LessOrEqual(t, pausedFetches, seen+1, "ticks while paused must not fetch")

	poller.Resume()
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return fetches > pausedFetches
	}, time.Second, 5*time.Millisecond, "resume triggers a catch-up fetch")

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poller did not stop on context cancellation")
	}
}
