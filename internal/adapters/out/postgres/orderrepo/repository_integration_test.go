package orderrepo_test

import (
	"context"
	"testing"

	"bibdelivery/internal/adapters/out/postgres/orderrepo"
	"bibdelivery/internal/core/domain/model/kernel"
	"bibdelivery/internal/core/domain/model/order"
	"bibdelivery/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// noopTracker satisfies the repository's tracker dependency in tests that
// exercise the repository outside a unit of work.
type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}

// OrderRepositoryIntegrationTestSuite tests the GORM order repository
// against a real PostgreSQL database.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	repo      *orderrepo.GormOrderRepository
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{}, &orderrepo.StatusHistoryDTO{})
	suite.Require().NoError(err)

	suite.repo = orderrepo.NewGormOrderRepository(db, noopTracker{})
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, order_items, order_status_history").Error
	suite.Require().NoError(err)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrderFor(customerID kernel.UUID, refs ...string) *order.Order {
	coords := &kernel.GeoPoint{Lat: 22.5726, Lng: 88.3639}
	address, err := kernel.NewAddress("22 Finish Line Rd", "Kolkata", "700042", coords)
	suite.Require().NoError(err)

	items := make([]order.Item, 0, len(refs))
	for _, ref := range refs {
		item, itemErr := order.NewItem(ref, "B-"+ref, "City Marathon")
		suite.Require().NoError(itemErr)
		items = append(items, item)
	}

	pickupCode, err := kernel.NewSecurityCode("1111")
	suite.Require().NoError(err)
	deliveryCode, err := kernel.NewSecurityCode("2222")
	suite.Require().NoError(err)

	aggregate, err := order.NewOrder(
		kernel.NewUUID(), customerID, items, address,
		pickupCode, deliveryCode, 5.0, 90, order.PaymentCOD)
	suite.Require().NoError(err)
	return aggregate
}

// TestAddAndGet verifies a full roundtrip through the three tables.
func (suite *OrderRepositoryIntegrationTestSuite) TestAddAndGet() {
	ctx := context.Background()
	customerID := kernel.NewUUID()
	aggregate := suite.newOrderFor(customerID, "reg-1", "reg-2")

	suite.Require().NoError(suite.repo.Add(ctx, aggregate))

	restored, err := suite.repo.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)

	suite.True(restored.IsEqual(aggregate))
	suite.Equal(customerID, restored.CustomerID())
	suite.Equal(order.Created, restored.Status())
	suite.Len(restored.Items(), 2)
	suite.ElementsMatch([]string{"reg-1", "reg-2"}, restored.ParticipantRefs())
	suite.Equal("22 Finish Line Rd", restored.Address().Street())
	suite.Require().NotNil(restored.Address().Coordinates())
	suite.InDelta(22.5726, restored.Address().Coordinates().Lat, 0.0001)
	suite.True(restored.PickupCode().Matches("1111"))
	suite.True(restored.DeliveryCode().Matches("2222"))
	suite.InDelta(5.0, restored.DistanceKm(), 0.001)
	suite.Equal(90, restored.DeliveryFee())
	suite.Equal(1, restored.Version())
	suite.Len(restored.History(), 1)
}

// TestGet_NotFound verifies unknown IDs map to the not-found sentinel.
func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repo.Get(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

// TestUpdate_UnknownOrder verifies updating a missing row surfaces as a
// version conflict rather than a silent no-op.
func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_UnknownOrder() {
	ctx := context.Background()
	aggregate := suite.newOrderFor(kernel.NewUUID(), "reg-1")
	suite.Require().NoError(aggregate.Assign(kernel.NewUUID()))

	err := suite.repo.Update(ctx, aggregate)
	suite.Require().ErrorIs(err, errs.ErrVersionIsInvalid)
}

// TestUpdate_AppendsHistoryOnce verifies a repeated update of the same
// transition does not duplicate history rows.
func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_AppendsHistoryOnce() {
	ctx := context.Background()
	aggregate := suite.newOrderFor(kernel.NewUUID(), "reg-1")
	suite.Require().NoError(suite.repo.Add(ctx, aggregate))

	loaded, err := suite.repo.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(loaded.Assign(kernel.NewUUID()))
	suite.Require().NoError(suite.repo.Update(ctx, loaded))

	restored, err := suite.repo.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Require().Len(restored.History(), 2)
	suite.Equal(order.Assigned, restored.History()[1].Status())

	var count int64
	suite.Require().NoError(suite.db.Table("order_status_history").
		Where("order_id = ?", aggregate.ID().Bytes()).Count(&count).Error)
	suite.EqualValues(2, count)
}

// TestExistsActiveWithParticipants covers the duplicate-order guard.
func (suite *OrderRepositoryIntegrationTestSuite) TestExistsActiveWithParticipants() {
	ctx := context.Background()
	customerID := kernel.NewUUID()
	aggregate := suite.newOrderFor(customerID, "reg-1", "reg-2")
	suite.Require().NoError(suite.repo.Add(ctx, aggregate))

	suite.Run("matching participant blocks", func() {
		exists, err := suite.repo.ExistsActiveWithParticipants(ctx, customerID, []string{"reg-2", "reg-9"})
		suite.Require().NoError(err)
		suite.True(exists)
	})

	suite.Run("unrelated participant passes", func() {
		exists, err := suite.repo.ExistsActiveWithParticipants(ctx, customerID, []string{"reg-9"})
		suite.Require().NoError(err)
		suite.False(exists)
	})

	suite.Run("other customer never conflicts", func() {
		exists, err := suite.repo.ExistsActiveWithParticipants(ctx, kernel.NewUUID(), []string{"reg-1"})
		suite.Require().NoError(err)
		suite.False(exists)
	})

	suite.Run("cancelled order releases its participants", func() {
		loaded, err := suite.repo.Get(ctx, aggregate.ID())
		suite.Require().NoError(err)
		suite.Require().NoError(loaded.Cancel())
		suite.Require().NoError(suite.repo.Update(ctx, loaded))

		exists, err := suite.repo.ExistsActiveWithParticipants(ctx, customerID, []string{"reg-1"})
		suite.Require().NoError(err)
		suite.False(exists)
	})
}

// TestOrderRepositoryIntegrationSuite runs the integration test suite.
// Requires Docker for PostgreSQL container.
func TestOrderRepositoryIntegrationSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
