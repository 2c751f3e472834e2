package order_test

import (
	"testing"

	"bibdelivery/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_String(t *testing.T) {
	testCases := []struct {
		status   order.Status
		expected string
	}{
		{order.Unknown, "Unknown"},
		{order.Created, "Order Created"},
		{order.Assigned, "Assigned"},
		{order.PickedFromOrganizer, "Picked From Organizer"},
		{order.OutForDelivery, "Out For Delivery"},
		{order.Delivered, "Delivered"},
		{order.Failed, "Delivery Failed"},
		{order.Cancelled, "Cancelled"},
		{order.Status(42), "Unknown"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.status.String())
		})
	}
}

func TestStatus_Validate(t *testing.T) {
	t.Run("valid statuses pass", func(t *testing.T) {
		for _, s := range []order.Status{
			order.Created, order.Assigned, order.PickedFromOrganizer,
			order.OutForDelivery, order.Delivered, order.Failed, order.Cancelled,
		} {
			require.NoError(t, s.Validate())
		}
	})

	t.Run("unknown and out-of-range fail", func(t *testing.T) {
		require.Error(t, order.Unknown.Validate())
		require.Error(t, order.Status(42).Validate())
	})
}

func TestStatus_Assign(t *testing.T) {
	t.Run("created can be assigned", func(t *testing.T) {
		s, err := order.Created.Assign()
		require.NoError(t, err)
		assert.Equal(t, order.Assigned, s)
	})

	t.Run("assigned can be reassigned", func(t *testing.T) {
		s, err := order.Assigned.Assign()
		require.NoError(t, err)
		assert.Equal(t, order.Assigned, s)
	})

	t.Run("in-flight and terminal statuses cannot be assigned", func(t *testing.T) {
		for _, s := range []order.Status{
			order.PickedFromOrganizer, order.OutForDelivery,
			order.Delivered, order.Failed, order.Cancelled, order.Unknown,
		} {
			_, err := s.Assign()
			require.ErrorIs(t, err, order.ErrInvalidTransition, "status %s", s)
		}
	})
}

func TestStatus_Pickup(t *testing.T) {
	t.Run("assigned advances to out for delivery", func(t *testing.T) {
		s, err := order.Assigned.Pickup()
		require.NoError(t, err)
		assert.Equal(t, order.OutForDelivery, s)
	})

	t.Run("every other status is rejected", func(t *testing.T) {
		for _, s := range []order.Status{
			order.Created, order.PickedFromOrganizer, order.OutForDelivery,
			order.Delivered, order.Failed, order.Cancelled, order.Unknown,
		} {
			_, err := s.Pickup()
			require.ErrorIs(t, err, order.ErrInvalidTransition, "status %s", s)
		}
	})
}

func TestStatus_Deliver(t *testing.T) {
	t.Run("out for delivery advances to delivered", func(t *testing.T) {
		s, err := order.OutForDelivery.Deliver()
		require.NoError(t, err)
		assert.Equal(t, order.Delivered, s)
	})

	t.Run("picked from organizer alias is accepted", func(t *testing.T) {
		s, err := order.PickedFromOrganizer.Deliver()
		require.NoError(t, err)
		assert.Equal(t, order.Delivered, s)
	})

	t.Run("deliver before pickup is rejected", func(t *testing.T) {
		_, err := order.Assigned.Deliver()
		require.ErrorIs(t, err, order.ErrInvalidTransition)
	})

	t.Run("terminal statuses are rejected", func(t *testing.T) {
		for _, s := range []order.Status{order.Delivered, order.Failed, order.Cancelled} {
			_, err := s.Deliver()
			require.ErrorIs(t, err, order.ErrInvalidTransition, "status %s", s)
		}
	})
}

func TestStatus_CancelAndFail(t *testing.T) {
	nonTerminal := []order.Status{
		order.Created, order.Assigned, order.PickedFromOrganizer, order.OutForDelivery,
	}
	terminal := []order.Status{order.Delivered, order.Failed, order.Cancelled}

	t.Run("any non-terminal can be cancelled", func(t *testing.T) {
		for _, s := range nonTerminal {
			next, err := s.Cancel()
			require.NoError(t, err, "status %s", s)
			assert.Equal(t, order.Cancelled, next)
		}
	})

	t.Run("any non-terminal can fail", func(t *testing.T) {
		for _, s := range nonTerminal {
			next, err := s.Fail()
			require.NoError(t, err, "status %s", s)
			assert.Equal(t, order.Failed, next)
		}
	})

	t.Run("terminal statuses accept no escape", func(t *testing.T) {
		for _, s := range terminal {
			_, err := s.Cancel()
			require.ErrorIs(t, err, order.ErrInvalidTransition, "cancel from %s", s)
			_, err = s.Fail()
			require.ErrorIs(t, err, order.ErrInvalidTransition, "fail from %s", s)
		}
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, order.Delivered.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())
	assert.True(t, order.Failed.IsTerminal())
	assert.False(t, order.Created.IsTerminal())
	assert.False(t, order.Assigned.IsTerminal())
	assert.False(t, order.OutForDelivery.IsTerminal())
}

func TestStatus_IsActive(t *testing.T) {
	t.Run("cancelled and failed release their items", func(t *testing.T) {
		assert.False(t, order.Cancelled.IsActive())
		assert.False(t, order.Failed.IsActive())
	})

	t.Run("delivered orders still hold their items", func(t *testing.T) {
		assert.True(t, order.Delivered.IsActive())
	})

	t.Run("in-flight statuses hold their items", func(t *testing.T) {
		for _, s := range []order.Status{
			order.Created, order.Assigned, order.PickedFromOrganizer, order.OutForDelivery,
		} {
			assert.True(t, s.IsActive(), "status %s", s)
		}
	})
}

func TestStatus_ValidateCanHaveCourier(t *testing.T) {
	t.Run("created must not have a courier", func(t *testing.T) {
		require.Error(t, order.Created.ValidateCanHaveCourier(true))
		require.NoError(t, order.Created.ValidateCanHaveCourier(false))
	})

	t.Run("assigned and later require a courier", func(t *testing.T) {
		for _, s := range []order.Status{
			order.Assigned, order.PickedFromOrganizer, order.OutForDelivery, order.Delivered,
		} {
			require.NoError(t, s.ValidateCanHaveCourier(true), "status %s", s)
			require.Error(t, s.ValidateCanHaveCourier(false), "status %s", s)
		}
	})

	t.Run("cancelled and failed allow either", func(t *testing.T) {
		for _, s := range []order.Status{order.Cancelled, order.Failed} {
			require.NoError(t, s.ValidateCanHaveCourier(true), "status %s", s)
			require.NoError(t, s.ValidateCanHaveCourier(false), "status %s", s)
		}
	})
}
