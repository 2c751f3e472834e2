package cmd

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"bibdelivery/internal/adapters/in/http"
	"bibdelivery/internal/adapters/out/kafka"
	"bibdelivery/internal/adapters/out/postgres"
	"bibdelivery/internal/core/application/usecases/commands"
	"bibdelivery/internal/core/application/usecases/queries"
	"bibdelivery/internal/core/domain/model/kernel"
	"bibdelivery/internal/core/domain/services"
	"bibdelivery/internal/jobs"
	"bibdelivery/internal/pkg/auth"
	"bibdelivery/internal/pkg/metrics"

	"gorm.io/gorm"
)

const defaultTokenTTLHours = 24

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory GormOrderUoWFactory
	publisher  *kafka.Publisher
	tokens     auth.TokenService
	pricing    services.PricingEstimator
	codes      services.CodeGenerator
	origin     kernel.Address
	counter    *metrics.OrderMetrics
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	origin, err := kernel.NewAddress(config.HubStreet, config.HubCity, config.HubPostalCode, nil)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("invalid hub address: %w", err)
	}

	ttl := time.Duration(defaultTokenTTLHours) * time.Hour
	if config.JWTTTLHours != "" {
		hours, err := strconv.Atoi(config.JWTTTLHours)
		if err != nil || hours <= 0 {
			return CompositionRoot{}, fmt.Errorf("invalid JWT_TTL_HOURS %q", config.JWTTTLHours)
		}
		ttl = time.Duration(hours) * time.Hour
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: GormOrderUoWFactory{inner: postgres.NewGormUnitOfWorkFactory(gormDB)},
		publisher:  kafka.NewPublisher(config.KafkaHost, config.KafkaOrderChangedTopic, logger),
		tokens:     auth.NewTokenService(config.JWTSecret, ttl),
		pricing:    services.NewPricingEstimator(services.PricingConfig{}, nil),
		codes:      services.NewRandomCodeGenerator(),
		origin:     origin,
		counter:    metrics.NewOrderMetrics(),
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.uowFactory, c.pricing, c.codes, c.origin, c.eventPublisher())
}

func (c *CompositionRoot) CreateAssignCourierCommandHandler() commands.AssignCourierCommandHandler {
	return commands.NewAssignCourierCommandHandler(c.uowFactory, c.eventPublisher())
}

func (c *CompositionRoot) CreatePerformOrderActionCommandHandler() commands.PerformOrderActionCommandHandler {
	return commands.NewPerformOrderActionCommandHandler(c.uowFactory, c.eventPublisher())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

// CreateHTTPServer wires all handlers into the HTTP adapter.
func (c *CompositionRoot) CreateHTTPServer() *http.Server {
	return http.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateAssignCourierCommandHandler(),
		c.CreatePerformOrderActionCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateListOrdersQueryHandler(),
		c.tokens,
		c.pricing,
		c.origin,
		c.counter,
	)
}

// CreateJobManager wires the scheduled monitoring jobs.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.gormDB, c.logger)
}

// Close releases adapter resources, currently the Kafka writer.
func (c *CompositionRoot) Close() error {
	return c.publisher.Close()
}

func (c *CompositionRoot) eventPublisher() commands.OrderEventPublisher {
	if !c.publisher.Enabled() {
		return commands.NopOrderEventPublisher{}
	}
	return c.publisher
}

// GormOrderUoWFactory adapts the postgres unit of work factory to the
// commands-side factory port.
type GormOrderUoWFactory struct {
	inner *postgres.GormUnitOfWorkFactory
}

func (f GormOrderUoWFactory) Create() commands.OrderUoW {
	return f.inner.Create()
}
