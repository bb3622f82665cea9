package cmd

import (
	"log/slog"
	"os"

	"afalstore/internal/adapters/out/courierapi"
	"afalstore/internal/adapters/out/ledgerapi"
	"afalstore/internal/adapters/out/postgres"
	"afalstore/internal/adapters/out/postgres/citymaprepo"
	"afalstore/internal/adapters/out/postgres/courierlogrepo"
	"afalstore/internal/core/application/usecases/commands"
	"afalstore/internal/core/application/usecases/queries"
	"afalstore/internal/core/domain/model/courier"
	"afalstore/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	logger     *slog.Logger
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     slog.New(slog.NewJSONHandler(os.Stdout, nil)),
	}
}

func (c *CompositionRoot) Logger() *slog.Logger {
	return c.logger
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewChangeOrderStatusCommandHandler(f, ledgerapi.NewClient(c.configs.LedgerServiceURL))
}

func (c *CompositionRoot) CreateSubmitOrderEditCommandHandler() commands.SubmitOrderEditCommandHandler {
	var f commands.EditUoWFactory = FuncEditUoWFactory(func() commands.EditUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSubmitOrderEditCommandHandler(f)
}

func (c *CompositionRoot) CreateBookCourierCommandHandler() commands.BookCourierCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewBookCourierCommandHandler(
		f,
		courierapi.NewClient(
			courier.Type(c.configs.CourierType),
			c.configs.CourierAPIURL,
			c.configs.CourierAPIKey,
		),
		citymaprepo.NewGormCityMappingStore(c.gormDB),
		courierlogrepo.NewGormCourierLogRepository(c.gormDB),
		c.configs.CourierProductType,
		c.logger,
	)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderEditHistoryQueryHandler() queries.GetOrderEditHistoryQueryHandler {
	return queries.NewGetOrderEditHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.gormDB, c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncEditUoWFactory func() commands.EditUoW

func (f FuncEditUoWFactory) Create() commands.EditUoW {
	return f()
}
