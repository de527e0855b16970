package queries_test

import (
	"context"
	"testing"
	"time"

	"orderflow/internal/adapters/out/postgres/orderrepo"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type noopTracker struct{}

func (noopTracker) TrackAggregate(_ kernel.UUID, _ any) {}

// QueryHandlersIntegrationTestSuite exercises the read side against a real
// database seeded through the order repository.
type QueryHandlersIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	repo      *orderrepo.GormOrderRepository

	statusHandler  queries.GetOrderStatusQueryHandler
	historyHandler queries.GetOrderHistoryQueryHandler
	listHandler    queries.GetAllOrdersQueryHandler
}

func (suite *QueryHandlersIntegrationTestSuite) SetupSuite() {
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

	suite.repo = orderrepo.NewGormOrderRepository(db, noopTracker{})
	suite.statusHandler = queries.NewGetOrderStatusQueryHandler(db)
	suite.historyHandler = queries.NewGetOrderHistoryQueryHandler(db)
	suite.listHandler = queries.NewGetAllOrdersQueryHandler(db)
}

func (suite *QueryHandlersIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error)
}

func (suite *QueryHandlersIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *QueryHandlersIntegrationTestSuite) seedOrder(clientID string) *order.Order {
	item1, err := order.NewItem("product-1", 2, decimal.RequireFromString("10.00"))
	suite.Require().NoError(err)
	item2, err := order.NewItem("product-2", 1, decimal.RequireFromString("5.50"))
	suite.Require().NoError(err)

	o, err := order.NewOrder(kernel.NewUUID(), clientID, "Ada Lovelace", "12 Analytical Ln",
		[]order.Item{item1, item2})
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.Add(context.Background(), o))
	return o
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetOrderStatus() {
	ctx := context.Background()
	o := suite.seedOrder("client-1")

	query, err := queries.NewGetOrderStatusQuery(o.TrackingNumber())
	suite.Require().NoError(err)

	resp, err := suite.statusHandler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Equal(o.TrackingNumber(), resp.TrackingNumber)
	suite.Equal("pending", resp.Status)
	suite.Equal("Ada Lovelace", resp.ClientName)
	suite.True(resp.TotalAmount.Equal(decimal.RequireFromString("25.50")))
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetOrderStatus_NotFound() {
	ctx := context.Background()

	query, err := queries.NewGetOrderStatusQuery("TRK-0000000000")
	suite.Require().NoError(err)

	_, err = suite.statusHandler.Handle(ctx, query)
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetOrderHistory() {
	ctx := context.Background()
	first := suite.seedOrder("client-1")
	second := suite.seedOrder("client-1")
	suite.seedOrder("client-2")

	query, err := queries.NewGetOrderHistoryQuery("client-1")
	suite.Require().NoError(err)

	views, err := suite.historyHandler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(views, 2)

	// newest first
	ids := []kernel.UUID{views[0].ID, views[1].ID}
	suite.Contains(ids, first.ID())
	suite.Contains(ids, second.ID())

	for _, view := range views {
		suite.Equal("client-1", view.ClientID)
		suite.Len(view.Items, 2)
		suite.True(view.TotalAmount.Equal(decimal.RequireFromString("25.50")))
	}
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetOrderHistory_EmptyIsNotAnError() {
	ctx := context.Background()

	query, err := queries.NewGetOrderHistoryQuery("client-99")
	suite.Require().NoError(err)

	views, err := suite.historyHandler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Empty(views)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetAllOrders_NoFilters() {
	ctx := context.Background()
	suite.seedOrder("client-1")
	suite.seedOrder("client-2")

	query, err := queries.NewGetAllOrdersQuery("", "", "", "")
	suite.Require().NoError(err)

	views, err := suite.listHandler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Len(views, 2)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetAllOrders_FilterByIDAndClient() {
	ctx := context.Background()
	mine := suite.seedOrder("client-1")
	suite.seedOrder("client-2")

	query, err := queries.NewGetAllOrdersQuery(mine.ID().String(), "", "", "")
	suite.Require().NoError(err)

	views, err := suite.listHandler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(views, 1)
	suite.True(views[0].ID.IsEqual(mine.ID()))
	suite.Len(views[0].Items, 2)

	query, err = queries.NewGetAllOrdersQuery("", "client-2", "", "")
	suite.Require().NoError(err)

	views, err = suite.listHandler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(views, 1)
	suite.Equal("client-2", views[0].ClientID)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetAllOrders_DateRange() {
	ctx := context.Background()
	suite.seedOrder("client-1")

	today := time.Now().UTC().Format("2006-01-02")
	query, err := queries.NewGetAllOrdersQuery("", "", today, today)
	suite.Require().NoError(err)

	views, err := suite.listHandler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Len(views, 1)

	query, err = queries.NewGetAllOrdersQuery("", "", "1999-01-01", "1999-12-31")
	suite.Require().NoError(err)

	views, err = suite.listHandler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Empty(views)
}

func TestQueryHandlersIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(QueryHandlersIntegrationTestSuite))
}
