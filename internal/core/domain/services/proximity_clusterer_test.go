package services_test

import (
	"testing"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderAt(t *testing.T, branchID kernel.UUID, lat, lng float64) *order.DeliverableOrder {
	t.Helper()

	p, err := kernel.NewGeoPoint(lat, lng)
	require.NoError(t, err)

	o, err := order.NewDeliverableOrder(
		kernel.NewUUID(), branchID, "Cliente", "Rua A", "Recife", "PE", 1000, &p, order.Delivery, order.Ready)
	require.NoError(t, err)
	return o
}

func TestProximityClusterer_Cluster(t *testing.T) {
	clusterer := services.NewProximityClusterer()
	branchID := kernel.NewUUID()

	t.Run("near_orders_group_with_seed_far_order_stays_alone", func(t *testing.T) {
		// Seed plus two orders within ~200m and one ~5km away.
		seed := orderAt(t, branchID, -8.0476, -34.8770)
		nearA := orderAt(t, branchID, -8.0484, -34.8772)
		nearB := orderAt(t, branchID, -8.0470, -34.8760)
		far := orderAt(t, branchID, -8.0926, -34.8770)

		groups, err := clusterer.Cluster(
			[]*order.DeliverableOrder{seed, nearA, nearB, far}, 5, 3000)

		require.NoError(t, err)
		require.Len(t, groups, 2)
		assert.Len(t, groups[0], 3)
		assert.Len(t, groups[1], 1)
		assert.True(t, groups[1][0].IsEqual(far))
	})

	t.Run("group_size_is_capped_in_input_order", func(t *testing.T) {
		orders := []*order.DeliverableOrder{
			orderAt(t, branchID, -8.0476, -34.8770),
			orderAt(t, branchID, -8.0477, -34.8771),
			orderAt(t, branchID, -8.0478, -34.8772),
			orderAt(t, branchID, -8.0479, -34.8773),
		}

		groups, err := clusterer.Cluster(orders, 2, 3000)

		require.NoError(t, err)
		require.Len(t, groups, 2)
		// First group takes the first two in input order.
		assert.True(t, groups[0][0].IsEqual(orders[0]))
		assert.True(t, groups[0][1].IsEqual(orders[1]))
		assert.True(t, groups[1][0].IsEqual(orders[2]))
		assert.True(t, groups[1][1].IsEqual(orders[3]))
	})

	t.Run("partition_property", func(t *testing.T) {
		orders := []*order.DeliverableOrder{
			orderAt(t, branchID, -8.04, -34.87),
			orderAt(t, branchID, -8.05, -34.88),
			orderAt(t, branchID, -8.20, -34.95),
			orderAt(t, branchID, -8.041, -34.871),
			orderAt(t, branchID, -8.30, -35.10),
		}

		groups, err := clusterer.Cluster(orders, 3, 2000)

		require.NoError(t, err)
		seen := make(map[string]int)
		for _, g := range groups {
			assert.LessOrEqual(t, len(g), 3)
			for _, o := range g {
				seen[o.ID().String()]++
			}
		}
		require.Len(t, seen, len(orders))
		for _, count := range seen {
			assert.Equal(t, 1, count)
		}
	})

	t.Run("members_are_within_radius_of_their_seed", func(t *testing.T) {
		orders := []*order.DeliverableOrder{
			orderAt(t, branchID, -8.04, -34.87),
			orderAt(t, branchID, -8.042, -34.872),
			orderAt(t, branchID, -8.06, -34.89),
			orderAt(t, branchID, -8.041, -34.869),
		}
		const radius = 1500.0

		groups, err := clusterer.Cluster(orders, 5, radius)

		require.NoError(t, err)
		for _, g := range groups {
			seed := g[0]
			for _, member := range g[1:] {
				d, dErr := seed.Location().DistanceTo(*member.Location())
				require.NoError(t, dErr)
				assert.LessOrEqual(t, d, radius)
			}
		}
	})

	t.Run("empty_input_yields_no_groups", func(t *testing.T) {
		groups, err := clusterer.Cluster(nil, 5, 3000)

		require.NoError(t, err)
		assert.Empty(t, groups)
	})

	t.Run("invalid_capacity_is_rejected", func(t *testing.T) {
		_, err := clusterer.Cluster(nil, 0, 3000)

		require.Error(t, err)
	})

	t.Run("invalid_radius_is_rejected", func(t *testing.T) {
		_, err := clusterer.Cluster(nil, 5, 0)

		require.Error(t, err)
	})

	t.Run("order_without_location_is_rejected", func(t *testing.T) {
		noLocation, err := order.NewDeliverableOrder(
			kernel.NewUUID(), branchID, "Cliente", "Rua A", "Recife", "PE", 1000, nil, order.Delivery, order.Ready)
		require.NoError(t, err)

		_, err = clusterer.Cluster([]*order.DeliverableOrder{noLocation}, 5, 3000)

		require.Error(t, err)
	})
}
