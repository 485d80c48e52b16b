package commands_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}
func (m *MockOrderRepository) GetByUser(_ context.Context, _ kernel.UUID) ([]*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []order.StatusChangeEvent
}

func (p *recordingPublisher) Publish(event order.StatusChangeEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) Events() []order.StatusChangeEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]order.StatusChangeEvent(nil), p.events...)
}

func pendingOrder(t *testing.T) *order.Order {
	t.Helper()
	item, err := order.NewLineItem(kernel.NewUUID(), "Baby blanket", 1, mustMoney(t, "19.90"))
	require.NoError(t, err)
	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), []order.LineItem{item},
		order.CustomerInfo{Name: "Dana", Phone: "+1555123", Address: "12 Elm St"},
		order.DeliveryWindow{Date: "2025-04-01", Time: "10:00-12:00"},
		"cash", time.Now(),
	)
	require.NoError(t, err)
	return o
}

func mustMoney(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoneyFromString(s)
	require.NoError(t, err)
	return m
}

func TestChangeOrderStatusCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	aggregate := pendingOrder(t)
	actor := kernel.NewUUID()
	cmd, err := commands.NewChangeOrderStatusCommand(aggregate.ID(), order.Processing, actor)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		repo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := &recordingPublisher{}
	h := commands.NewChangeOrderStatusCommandHandler(factory, commands.NewOrderLocks(), publisher)
	updated, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Same(t, aggregate, updated)
	assert.Equal(t, order.Processing, aggregate.Status())
	events := publisher.Events()
	require.Len(t, events, 1)
	assert.Equal(t, aggregate.ID(), events[0].OrderID)
	assert.Equal(t, actor, events[0].Actor)
	assert.Equal(t, order.Pending, events[0].Previous)
	assert.Equal(t, order.Processing, events[0].New)
	assert.Equal(t, aggregate.StatusUpdatedAt(), events[0].OccurredAt)

	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestChangeOrderStatusCommandHandler_Handle_InvalidTransition(t *testing.T) {
	ctx := t.Context()
	aggregate := pendingOrder(t)
	cmd, err := commands.NewChangeOrderStatusCommand(aggregate.ID(), order.Delivered, kernel.NewUUID())
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := &recordingPublisher{}
	h := commands.NewChangeOrderStatusCommandHandler(factory, commands.NewOrderLocks(), publisher)
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	assert.Equal(t, order.Pending, aggregate.Status())
	assert.Empty(t, publisher.Events())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestChangeOrderStatusCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	cmd, err := commands.NewChangeOrderStatusCommand(orderID, order.Processing, kernel.NewUUID())
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, orderID).Return(nil, errs.NewObjectNotFoundError("order", orderID)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewChangeOrderStatusCommandHandler(factory, commands.NewOrderLocks(), &recordingPublisher{})
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestChangeOrderStatusCommandHandler_Handle_RetriesTransientFailures(t *testing.T) {
	ctx := t.Context()
	aggregate := pendingOrder(t)
	cmd, err := commands.NewChangeOrderStatusCommand(aggregate.ID(), order.Processing, kernel.NewUUID())
	require.NoError(t, err)

	transient := errs.NewTransientStoreError("get order", errors.New("connection reset"))

	repo := new(MockOrderRepository)
	repo.On("Get", mock.Anything, aggregate.ID()).Return(nil, transient).Once()
	repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	repo.On("Update", mock.Anything, aggregate).Return(nil).Once()

	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Twice()
	uow.On("OrderRepository").Return(repo).Twice()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Twice()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Twice()

	publisher := &recordingPublisher{}
	h := commands.NewChangeOrderStatusCommandHandler(factory, commands.NewOrderLocks(), publisher)
	updated, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Same(t, aggregate, updated)
	assert.Equal(t, order.Processing, aggregate.Status())
	assert.Len(t, publisher.Events(), 1)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestChangeOrderStatusCommandHandler_Handle_GivesUpAfterBoundedRetries(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	cmd, err := commands.NewChangeOrderStatusCommand(orderID, order.Processing, kernel.NewUUID())
	require.NoError(t, err)

	transient := errs.NewTransientStoreError("get order", errors.New("connection reset"))

	repo := new(MockOrderRepository)
	repo.On("Get", mock.Anything, orderID).Return(nil, transient).Times(4)

	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Times(4)
	uow.On("OrderRepository").Return(repo).Times(4)
	uow.On("Rollback", ctx).Return(nil).Times(4)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Times(4)

	h := commands.NewChangeOrderStatusCommandHandler(factory, commands.NewOrderLocks(), &recordingPublisher{})
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrTransientStoreError)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestChangeOrderStatusCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	var cmd commands.ChangeOrderStatusCommand // not constructed properly

	factory := new(MockOrderUoWFactory)
	h := commands.NewChangeOrderStatusCommandHandler(factory, commands.NewOrderLocks(), &recordingPublisher{})
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
}

// fakeOrderStore is a stateful in-memory order repository shared between
// racing handlers, standing in for the database in concurrency tests.
type fakeOrderStore struct {
	mu     sync.Mutex
	orders map[kernel.UUID]*order.Order
}

func newFakeOrderStore(orders ...*order.Order) *fakeOrderStore {
	store := &fakeOrderStore{orders: make(map[kernel.UUID]*order.Order)}
	for _, o := range orders {
		store.orders[o.ID()] = o
	}
	return store
}

func (s *fakeOrderStore) Add(_ context.Context, o *order.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.ID()] = o
	return nil
}

func (s *fakeOrderStore) Update(ctx context.Context, o *order.Order) error {
	return s.Add(ctx, o)
}

func (s *fakeOrderStore) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return o, nil
}

func (s *fakeOrderStore) GetByUser(_ context.Context, _ kernel.UUID) ([]*order.Order, error) {
	return nil, errors.New("not implemented in fake")
}

type fakeOrderUoW struct{ store *fakeOrderStore }

func (u *fakeOrderUoW) Begin(context.Context) error            { return nil }
func (u *fakeOrderUoW) Commit(context.Context) error           { return nil }
func (u *fakeOrderUoW) Rollback(context.Context) error         { return nil }
func (u *fakeOrderUoW) OrderRepository() ports.OrderRepository { return u.store }

type fakeOrderUoWFactory struct{ store *fakeOrderStore }

func (f fakeOrderUoWFactory) Create() commands.OrderUoW { return &fakeOrderUoW{f.store} }

func TestChangeOrderStatusCommandHandler_Handle_ConcurrentCancellation(t *testing.T) {
	ctx := t.Context()
	aggregate := pendingOrder(t)
	store := newFakeOrderStore(aggregate)
	locks := commands.NewOrderLocks()
	publisher := &recordingPublisher{}

	// Two staff members race the same pending->cancelled edge. The per-order
	// lock serializes them: the loser is validated against the committed
	// cancelled status, not the stale pending one.
	results := make(chan error, 2)
	var wg sync.WaitGroup
	for range 2 {
		cmd, err := commands.NewChangeOrderStatusCommand(aggregate.ID(), order.Cancelled, kernel.NewUUID())
		require.NoError(t, err)

		wg.Add(1)
		go func() {
			defer wg.Done()
			h := commands.NewChangeOrderStatusCommandHandler(fakeOrderUoWFactory{store}, locks, publisher)
			_, err := h.Handle(ctx, cmd)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, rejected int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, errs.ErrInvalidTransition):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded, "exactly one transition wins")
	assert.Equal(t, 1, rejected, "the loser observes cancelled and is rejected")

	stored, err := store.Get(ctx, aggregate.ID())
	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, stored.Status())

	events := publisher.Events()
	require.Len(t, events, 1, "only the winning transition publishes")
	assert.Equal(t, order.Pending, events[0].Previous)
	assert.Equal(t, order.Cancelled, events[0].New)
}
