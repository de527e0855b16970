package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"orderflow/internal/adapters/out/postgres/orderrepo"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for OrderRepository
// using PostgreSQL containers to verify database persistence behavior.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
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

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.ItemDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder(clientID string) *order.Order {
	item1, err := order.NewItem("product-1", 2, decimal.RequireFromString("10.00"))
	suite.Require().NoError(err)
	item2, err := order.NewItem("product-2", 1, decimal.RequireFromString("5.50"))
	suite.Require().NoError(err)

	o, err := order.NewOrder(kernel.NewUUID(), clientID, "Ada Lovelace", "12 Analytical Ln",
		[]order.Item{item1, item2})
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_PersistsOrderWithItems() {
	ctx := context.Background()
	testOrder := suite.createTestOrder("client-1")

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	var orderCount, itemCount int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&orderCount).Error)
	suite.Require().NoError(suite.db.Model(&orderrepo.ItemDTO{}).Count(&itemCount).Error)
	suite.Equal(int64(1), orderCount)
	suite.Equal(int64(2), itemCount)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_RoundTrip() {
	ctx := context.Background()
	testOrder := suite.createTestOrder("client-1")
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	loaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.True(loaded.IsEqual(testOrder))
	suite.Equal(order.Pending, loaded.Status())
	suite.Equal(testOrder.TrackingNumber(), loaded.TrackingNumber())
	suite.Equal("client-1", loaded.ClientID())
	suite.Len(loaded.Items(), 2)
	suite.True(loaded.TotalAmount().Equal(decimal.RequireFromString("25.50")))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	ctx := context.Background()

	_, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetByTrackingNumber() {
	ctx := context.Background()
	testOrder := suite.createTestOrder("client-1")
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	loaded, err := suite.repository.GetByTrackingNumber(ctx, testOrder.TrackingNumber())
	suite.Require().NoError(err)
	suite.True(loaded.IsEqual(testOrder))

	_, err = suite.repository.GetByTrackingNumber(ctx, "TRK-0000000000")
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StatusAndTracking() {
	ctx := context.Background()
	testOrder := suite.createTestOrder("client-1")
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	suite.Require().NoError(testOrder.ChangeStatus(order.Shipped, "TRK-CALLER0001"))
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	loaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Shipped, loaded.Status())
	suite.Equal("TRK-CALLER0001", loaded.TrackingNumber())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_CancelClearsTracking() {
	ctx := context.Background()
	testOrder := suite.createTestOrder("client-1")
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))
	tracking := testOrder.TrackingNumber()

	suite.Require().NoError(testOrder.Cancel(order.ActorUser, ""))
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	loaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Cancelled, loaded.Status())
	suite.Empty(loaded.TrackingNumber())

	// the token is free again once the order is cancelled
	_, err = suite.repository.GetByTrackingNumber(ctx, tracking)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_MissingOrder() {
	ctx := context.Background()
	testOrder := suite.createTestOrder("client-1")

	err := suite.repository.Update(ctx, testOrder)

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetByClient_NewestFirst() {
	ctx := context.Background()
	first := suite.createTestOrder("client-1")
	suite.Require().NoError(suite.repository.Add(ctx, first))
	second := suite.createTestOrder("client-1")
	suite.Require().NoError(suite.repository.Add(ctx, second))
	other := suite.createTestOrder("client-2")
	suite.Require().NoError(suite.repository.Add(ctx, other))

	orders, err := suite.repository.GetByClient(ctx, "client-1")
	suite.Require().NoError(err)
	suite.Len(orders, 2)

	// empty slice for an unknown client, not an error
	orders, err = suite.repository.GetByClient(ctx, "client-99")
	suite.Require().NoError(err)
	suite.Empty(orders)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestFind_Filters() {
	ctx := context.Background()
	mine := suite.createTestOrder("client-1")
	suite.Require().NoError(suite.repository.Add(ctx, mine))
	other := suite.createTestOrder("client-2")
	suite.Require().NoError(suite.repository.Add(ctx, other))

	all, err := suite.repository.Find(ctx, ports.OrderFilter{})
	suite.Require().NoError(err)
	suite.Len(all, 2)

	id := mine.ID()
	byID, err := suite.repository.Find(ctx, ports.OrderFilter{ID: &id})
	suite.Require().NoError(err)
	suite.Len(byID, 1)
	suite.True(byID[0].IsEqual(mine))

	byClient, err := suite.repository.Find(ctx, ports.OrderFilter{ClientID: "client-2"})
	suite.Require().NoError(err)
	suite.Len(byClient, 1)

	future := time.Now().UTC().Add(24 * time.Hour)
	none, err := suite.repository.Find(ctx, ports.OrderFilter{From: &future})
	suite.Require().NoError(err)
	suite.Empty(none)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
