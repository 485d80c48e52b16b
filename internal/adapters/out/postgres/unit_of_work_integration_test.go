package postgres_test

import (
	"context"
	"testing"
	"time"

	"storefront/internal/adapters/out/postgres"
	"storefront/internal/adapters/out/postgres/cartrepo"
	"storefront/internal/adapters/out/postgres/orderrepo"
	"storefront/internal/adapters/out/postgres/productrepo"
	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite verifies that repositories obtained from one
// unit of work share a transaction, using the checkout write pattern.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *pgcontainer.PostgresContainer
	db        *gorm.DB
	factory   *postgres.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := pgcontainer.Run(ctx,
		"postgres:15-alpine",
		pgcontainer.WithDatabase("testdb"),
		pgcontainer.WithUsername("testuser"),
		pgcontainer.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&cartrepo.CartDTO{},
		&cartrepo.CartItemDTO{},
		&productrepo.ProductDTO{},
	))
	suite.factory = postgres.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, carts, cart_items, products").Error)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) placedOrder(userID kernel.UUID, now time.Time) *order.Order {
	price, err := kernel.NewMoneyFromString("19.90")
	suite.Require().NoError(err)
	item, err := order.NewLineItem(kernel.NewUUID(), "Baby blanket", 1, price)
	suite.Require().NoError(err)
	placed, err := order.NewOrder(
		kernel.NewUUID(), userID, []order.LineItem{item},
		order.CustomerInfo{Name: "Dana", Phone: "+1555123", Address: "12 Elm St"},
		order.DeliveryWindow{Date: "2025-04-01", Time: "10:00-12:00"},
		"cash", now,
	)
	suite.Require().NoError(err)
	return placed
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_OrderInsertAndCartClearAreAtomic() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)
	userID := kernel.NewUUID()

	shopperCart, err := cart.NewCart(userID, now)
	suite.Require().NoError(err)
	suite.Require().NoError(shopperCart.AddItem(kernel.NewUUID(), 1, now))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.CartRepository().Save(ctx, shopperCart))

	placed := suite.placedOrder(userID, now)
	suite.Require().NoError(uow.OrderRepository().Add(ctx, placed))
	shopperCart.Clear(now)
	suite.Require().NoError(uow.CartRepository().Save(ctx, shopperCart))
	suite.Require().NoError(uow.Commit(ctx))

	verify := suite.factory.Create()
	loadedOrder, err := verify.OrderRepository().Get(ctx, placed.ID())
	suite.Require().NoError(err)
	suite.True(placed.IsEqual(loadedOrder))

	loadedCart, err := verify.CartRepository().Get(ctx, userID)
	suite.Require().NoError(err)
	suite.True(loadedCart.IsEmpty())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsEverything() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)
	userID := kernel.NewUUID()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	placed := suite.placedOrder(userID, now)
	suite.Require().NoError(uow.OrderRepository().Add(ctx, placed))
	suite.Require().NoError(uow.Rollback(ctx))

	_, err := suite.factory.Create().OrderRepository().Get(ctx, placed.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_WithoutBegin_Fails() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
