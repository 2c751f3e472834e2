package commands_test

import (
	"testing"

	"bibdelivery/internal/core/application/usecases/commands"
	"bibdelivery/internal/core/domain/model/kernel"
	"bibdelivery/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand_ValidInput(t *testing.T) {
	id := kernel.NewUUID()
	customerID := kernel.NewUUID()
	items := testItems(t, "reg-1", "reg-2")
	address := testAddress(t, "700042")

	cmd, err := commands.NewCreateOrderCommand(id, customerID, items, address, order.PaymentCOD)
	require.NoError(t, err)
	assert.Equal(t, id, cmd.OrderID())
	assert.Equal(t, customerID, cmd.CustomerID())
	assert.Len(t, cmd.Items(), 2)
	assert.True(t, address.IsEqual(cmd.Address()))
	assert.Equal(t, order.PaymentCOD, cmd.PaymentMethod())
}

func TestNewCreateOrderCommand_InvalidOrderID(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(
		kernel.UUID{}, kernel.NewUUID(), testItems(t, "reg-1"), testAddress(t, "700042"), order.PaymentCOD)
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewCreateOrderCommand_InvalidCustomerID(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.UUID{}, testItems(t, "reg-1"), testAddress(t, "700042"), order.PaymentCOD)
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewCreateOrderCommand_EmptyItems(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(), nil, testAddress(t, "700042"), order.PaymentCOD)
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrItemsAreRequired)
}

func TestNewCreateOrderCommand_UnconstructedAddress(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(), testItems(t, "reg-1"), kernel.Address{}, order.PaymentCOD)
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrAddressIsNotConstructed)
}

func TestNewCreateOrderCommand_InvalidPaymentMethod(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(), testItems(t, "reg-1"), testAddress(t, "700042"),
		order.PaymentMethodUnknown)
	require.Error(t, err)
}

func TestCreateOrderCommand_Validate_NotConstructed(t *testing.T) {
	cmd := commands.CreateOrderCommand{}
	require.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
}
