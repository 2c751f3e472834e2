package commands_test

import (
	"context"
	"testing"

	"bibdelivery/internal/core/application/usecases/commands"
	"bibdelivery/internal/core/domain/model/kernel"
	"bibdelivery/internal/core/domain/model/order"
	"bibdelivery/internal/core/ports"
	"bibdelivery/internal/pkg/auth"

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

func (m *MockOrderRepository) ExistsActiveWithParticipants(
	ctx context.Context,
	customerID kernel.UUID,
	participantRefs []string,
) (bool, error) {
	args := m.Called(ctx, customerID, participantRefs)
	return args.Bool(0), args.Error(1)
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

// fixedDistance is a deterministic DistanceEstimator for handler tests.
type fixedDistance struct{ km float64 }

func (d fixedDistance) EstimateKm(_, _ kernel.Address) float64 { return d.km }

// fixedCodes always generates the same security code.
type fixedCodes struct{ code kernel.SecurityCode }

func (c fixedCodes) Generate() kernel.SecurityCode { return c.code }

func testAddress(t *testing.T, postalCode string) kernel.Address {
	t.Helper()
	address, err := kernel.NewAddress("22 Finish Line Rd", "Kolkata", postalCode, nil)
	require.NoError(t, err)
	return address
}

func testItems(t *testing.T, refs ...string) []order.Item {
	t.Helper()
	items := make([]order.Item, 0, len(refs))
	for _, ref := range refs {
		item, err := order.NewItem(ref, "B-"+ref, "City Marathon")
		require.NoError(t, err)
		items = append(items, item)
	}
	return items
}

func testCode(t *testing.T, value string) kernel.SecurityCode {
	t.Helper()
	code, err := kernel.NewSecurityCode(value)
	require.NoError(t, err)
	return code
}

// newCreatedOrder returns a fresh order in Created status with pickup PIN
// "1111" and delivery OTP "2222".
func newCreatedOrder(t *testing.T) *order.Order {
	t.Helper()
	aggregate, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewUUID(),
		testItems(t, "reg-1"),
		testAddress(t, "700042"),
		testCode(t, "1111"),
		testCode(t, "2222"),
		5.0,
		90,
		order.PaymentCOD,
	)
	require.NoError(t, err)
	return aggregate
}

// newAssignedOrder returns an order in Assigned status bound to courierID.
func newAssignedOrder(t *testing.T, courierID kernel.UUID) *order.Order {
	t.Helper()
	aggregate := newCreatedOrder(t)
	require.NoError(t, aggregate.Assign(courierID))
	return aggregate
}

func adminIdentity() auth.Identity {
	return auth.Identity{ID: kernel.NewUUID(), Role: auth.RoleAdmin}
}

func courierIdentity(id kernel.UUID) auth.Identity {
	return auth.Identity{ID: id, Role: auth.RoleCourier}
}
