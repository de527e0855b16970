package cmd

import (
	"log/slog"
	"time"

	httpadapter "orderflow/internal/adapters/in/http"
	rpcadapter "orderflow/internal/adapters/in/rpc"
	"orderflow/internal/adapters/out/email"
	"orderflow/internal/adapters/out/postgres"
	"orderflow/internal/adapters/out/postgres/outboxrepo"
	"orderflow/internal/adapters/out/rabbit"
	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	publisher  *rabbit.Publisher
	notifier   *email.Client
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher: rabbit.NewPublisher(rabbit.Config{
			URL:        config.AmqpURL,
			RetryCount: config.BrokerRetryCount,
			RetryDelay: time.Duration(config.BrokerRetryDelaySec) * time.Second,
		}, logger),
		notifier: email.NewClient(email.Config{
			APIURL: config.EmailAPIURL,
			APIKey: config.EmailAPIKey,
			From:   config.EmailFrom,
		}),
		logger: logger,
	}
}

func (c *CompositionRoot) Publisher() *rabbit.Publisher {
	return c.publisher
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateOrderStatusCommandHandler(f)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateGetOrderStatusQueryHandler() queries.GetOrderStatusQueryHandler {
	return queries.NewGetOrderStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderHistoryQueryHandler() queries.GetOrderHistoryQueryHandler {
	return queries.NewGetOrderHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAllOrdersQueryHandler() queries.GetAllOrdersQueryHandler {
	return queries.NewGetAllOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateUpdateOrderStatusCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.CreateGetOrderStatusQueryHandler(),
		c.CreateGetOrderHistoryQueryHandler(),
		c.CreateGetAllOrdersQueryHandler(),
	)
}

func (c *CompositionRoot) CreateRPCServer() *rpcadapter.Server {
	service := rpcadapter.NewOrderService(
		c.CreateCreateOrderCommandHandler(),
		c.CreateUpdateOrderStatusCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.CreateGetOrderStatusQueryHandler(),
		c.CreateGetOrderHistoryQueryHandler(),
		c.CreateGetAllOrdersQueryHandler(),
	)
	return rpcadapter.NewServer("0.0.0.0:"+c.config.RPCPort, service, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		outboxrepo.NewGormOutboxRepository(c.gormDB),
		c.publisher,
		c.notifier,
		time.Duration(c.config.OutboxBackoffBaseSec)*time.Second,
		c.logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
