package assignment_test

import (
	"testing"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildRoute(t *testing.T, orderIDs []kernel.UUID) []assignment.RoutePoint {
	t.Helper()

	origin, err := kernel.NewGeoPoint(-8.0476, -34.8770)
	require.NoError(t, err)

	originPoint, err := assignment.NewOriginRoutePoint(origin, "Av. Central 1", "Filial Centro")
	require.NoError(t, err)

	points := []assignment.RoutePoint{originPoint}
	for i, id := range orderIDs {
		stop, pErr := kernel.NewGeoPoint(-8.0476+float64(i+1)*0.001, -34.8770)
		require.NoError(t, pErr)

		point, pErr := assignment.NewRoutePoint(id, stop, "Rua A", "Cliente")
		require.NoError(t, pErr)
		points = append(points, point)
	}

	return points
}

func newAssignment(t *testing.T, branchID kernel.UUID, orderCount int) *assignment.DeliveryAssignment {
	t.Helper()

	orderIDs := make([]kernel.UUID, 0, orderCount)
	for range orderCount {
		orderIDs = append(orderIDs, kernel.NewUUID())
	}

	a, err := assignment.NewDeliveryAssignment(
		kernel.NewUUID(), branchID, "", buildRoute(t, orderIDs), 2500, 15, orderIDs)
	require.NoError(t, err)
	return a
}

func TestNewDeliveryAssignment(t *testing.T) {
	t.Run("valid_assignment_starts_pending", func(t *testing.T) {
		a := newAssignment(t, kernel.NewUUID(), 2)

		require.NoError(t, a.Validate())
		assert.Equal(t, assignment.Pending, a.Status())
		assert.Nil(t, a.CourierID())
		assert.Nil(t, a.StartedAt())
		assert.Nil(t, a.CompletedAt())
		assert.Len(t, a.OrderIDs(), 2)
		assert.Len(t, a.RoutePoints(), 3)
		assert.Equal(t, 2500, a.DistanceMeters())
		assert.Equal(t, 15, a.TimeMinutes())
	})

	t.Run("requires_at_least_one_order", func(t *testing.T) {
		origin, _ := kernel.NewGeoPoint(0, 0)
		originPoint, err := assignment.NewOriginRoutePoint(origin, "a", "b")
		require.NoError(t, err)

		_, err = assignment.NewDeliveryAssignment(
			kernel.NewUUID(), kernel.NewUUID(), "",
			[]assignment.RoutePoint{originPoint}, 0, 0, nil)

		require.Error(t, err)
	})

	t.Run("route_point_count_must_match_orders", func(t *testing.T) {
		orderIDs := []kernel.UUID{kernel.NewUUID(), kernel.NewUUID()}
		shortRoute := buildRoute(t, orderIDs[:1])

		_, err := assignment.NewDeliveryAssignment(
			kernel.NewUUID(), kernel.NewUUID(), "", shortRoute, 0, 0, orderIDs)

		require.Error(t, err)
	})

	t.Run("negative_distance_is_rejected", func(t *testing.T) {
		orderIDs := []kernel.UUID{kernel.NewUUID()}

		_, err := assignment.NewDeliveryAssignment(
			kernel.NewUUID(), kernel.NewUUID(), "", buildRoute(t, orderIDs), -1, 0, orderIDs)

		require.Error(t, err)
	})
}

func TestDeliveryAssignment_Start(t *testing.T) {
	t.Run("pending_to_in_progress_sets_started_at", func(t *testing.T) {
		a := newAssignment(t, kernel.NewUUID(), 1)

		require.NoError(t, a.Start())

		assert.Equal(t, assignment.InProgress, a.Status())
		require.NotNil(t, a.StartedAt())
	})

	t.Run("cannot_start_twice", func(t *testing.T) {
		a := newAssignment(t, kernel.NewUUID(), 1)
		require.NoError(t, a.Start())

		require.Error(t, a.Start())
	})
}

func TestDeliveryAssignment_Complete(t *testing.T) {
	t.Run("in_progress_to_completed_sets_completed_at", func(t *testing.T) {
		a := newAssignment(t, kernel.NewUUID(), 1)
		require.NoError(t, a.Start())

		require.NoError(t, a.Complete())

		assert.Equal(t, assignment.Completed, a.Status())
		require.NotNil(t, a.CompletedAt())
	})

	t.Run("pending_cannot_reach_completed_directly", func(t *testing.T) {
		a := newAssignment(t, kernel.NewUUID(), 1)

		require.Error(t, a.Complete())
		assert.Equal(t, assignment.Pending, a.Status())
	})
}

func TestDeliveryAssignment_Cancel(t *testing.T) {
	t.Run("pending_can_cancel", func(t *testing.T) {
		a := newAssignment(t, kernel.NewUUID(), 1)

		require.NoError(t, a.Cancel())

		assert.Equal(t, assignment.Cancelled, a.Status())
	})

	t.Run("completed_cannot_cancel", func(t *testing.T) {
		a := newAssignment(t, kernel.NewUUID(), 1)
		require.NoError(t, a.Start())
		require.NoError(t, a.Complete())

		require.Error(t, a.Cancel())
	})
}

func TestDeliveryAssignment_AssignCourier(t *testing.T) {
	branchID := kernel.NewUUID()

	t.Run("active_same_branch_courier", func(t *testing.T) {
		a := newAssignment(t, branchID, 1)
		c, err := courier.NewCourier(kernel.NewUUID(), branchID, "João", true, true, 0, 0)
		require.NoError(t, err)

		require.NoError(t, a.AssignCourier(c))

		require.NotNil(t, a.CourierID())
		assert.True(t, a.CourierID().IsEqual(c.ID()))
	})

	t.Run("courier_from_other_branch_is_rejected", func(t *testing.T) {
		a := newAssignment(t, branchID, 1)
		c, err := courier.NewCourier(kernel.NewUUID(), kernel.NewUUID(), "João", true, true, 0, 0)
		require.NoError(t, err)

		require.ErrorIs(t, a.AssignCourier(c), assignment.ErrCourierBranchMismatch)
	})

	t.Run("inactive_courier_is_rejected", func(t *testing.T) {
		a := newAssignment(t, branchID, 1)
		c, err := courier.NewCourier(kernel.NewUUID(), branchID, "João", false, true, 0, 0)
		require.NoError(t, err)

		require.ErrorIs(t, a.AssignCourier(c), assignment.ErrCourierIsNotActive)
	})

	t.Run("terminal_assignment_rejects_courier", func(t *testing.T) {
		a := newAssignment(t, branchID, 1)
		require.NoError(t, a.Cancel())
		c, err := courier.NewCourier(kernel.NewUUID(), branchID, "João", true, true, 0, 0)
		require.NoError(t, err)

		require.Error(t, a.AssignCourier(c))
	})

	t.Run("reassignment_replaces_courier", func(t *testing.T) {
		a := newAssignment(t, branchID, 1)
		first, err := courier.NewCourier(kernel.NewUUID(), branchID, "João", true, true, 0, 0)
		require.NoError(t, err)
		second, err := courier.NewCourier(kernel.NewUUID(), branchID, "Ana", true, true, 0, 0)
		require.NoError(t, err)

		require.NoError(t, a.AssignCourier(first))
		require.NoError(t, a.AssignCourier(second))

		assert.True(t, a.CourierID().IsEqual(second.ID()))
	})
}

func TestRestoreDeliveryAssignment(t *testing.T) {
	t.Run("restores_persisted_state", func(t *testing.T) {
		branchID := kernel.NewUUID()
		courierID := kernel.NewUUID()
		orderIDs := []kernel.UUID{kernel.NewUUID()}

		a, err := assignment.RestoreDeliveryAssignment(
			kernel.NewUUID(), branchID, "Rota 7", &courierID, assignment.InProgress,
			buildRoute(t, orderIDs), 1200, 9, nil, nil, orderIDs)

		require.NoError(t, err)
		assert.Equal(t, "Rota 7", a.Name())
		assert.Equal(t, assignment.InProgress, a.Status())
		require.NotNil(t, a.CourierID())
		assert.True(t, a.CourierID().IsEqual(courierID))
	})

	t.Run("invalid_status_is_rejected", func(t *testing.T) {
		orderIDs := []kernel.UUID{kernel.NewUUID()}

		_, err := assignment.RestoreDeliveryAssignment(
			kernel.NewUUID(), kernel.NewUUID(), "", nil, assignment.Unknown,
			buildRoute(t, orderIDs), 0, 0, nil, nil, orderIDs)

		require.Error(t, err)
	})
}
