package cmd

import (
	"log/slog"

	"storefront/internal/adapters/out/jwtauth"
	"storefront/internal/adapters/out/postgres"
	"storefront/internal/adapters/out/postgres/catalogrepo"
	"storefront/internal/adapters/out/postgres/userrepo"
	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) outboxUoWFactory() commands.OutboxUoWFactory {
	return FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateStatusTransitioner() services.StatusTransitioner {
	return services.NewStatusTransitioner(order.NewDeliveryPolicy(c.config.CODDeliveryBeforePayment))
}

func (c *CompositionRoot) CreateProductCatalog() ports.ProductCatalog {
	return catalogrepo.NewGormProductCatalog(c.gormDB)
}

func (c *CompositionRoot) CreateUserDirectory() ports.UserDirectory {
	return userrepo.NewGormUserDirectory(c.gormDB)
}

func (c *CompositionRoot) CreateActorResolver() (*jwtauth.Resolver, error) {
	return jwtauth.NewResolver(c.config.JWTSecret)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() *commands.CreateOrderCommandHandler {
	h := commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.CreateProductCatalog())
	return &h
}

func (c *CompositionRoot) CreateApplyPaymentStatusCommandHandler() *commands.ApplyPaymentStatusCommandHandler {
	h := commands.NewApplyPaymentStatusCommandHandler(c.orderUoWFactory(), c.CreateStatusTransitioner())
	return &h
}

func (c *CompositionRoot) CreateApplyDeliveryStatusCommandHandler() *commands.ApplyDeliveryStatusCommandHandler {
	h := commands.NewApplyDeliveryStatusCommandHandler(c.orderUoWFactory(), c.CreateStatusTransitioner())
	return &h
}

func (c *CompositionRoot) CreateRelayInvalidationsCommandHandler(
	publisher ports.InvalidationPublisher,
) *commands.RelayInvalidationsCommandHandler {
	h := commands.NewRelayInvalidationsCommandHandler(c.outboxUoWFactory(), publisher)
	return &h
}

func (c *CompositionRoot) CreatePurgeSentInvalidationsCommandHandler() *commands.PurgeSentInvalidationsCommandHandler {
	h := commands.NewPurgeSentInvalidationsCommandHandler(c.outboxUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateListMyOrdersQueryHandler() queries.ListMyOrdersQueryHandler {
	return queries.NewListMyOrdersQueryHandler(c.uowFactory.OrderReader())
}

func (c *CompositionRoot) CreateListAllOrdersQueryHandler() queries.ListAllOrdersQueryHandler {
	return queries.NewListAllOrdersQueryHandler(c.uowFactory.OrderReader(), c.CreateUserDirectory(), c.logger)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.uowFactory.OrderReader())
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
