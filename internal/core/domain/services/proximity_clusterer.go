package services

import (
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// ProximityClusterer is a domain service that partitions deliverable orders
// into trip-sized groups under geographic and capacity constraints.
//
// The algorithm is a greedy single pass: the first remaining order seeds a
// group, every remaining order within the radius of the seed is a candidate,
// and candidates are taken in input order until the group is full. Candidates
// are deliberately not ranked by distance; the contract is only the bounds,
// not a particular selection.
//
// Guarantees:
//   - Every input order appears in exactly one output group
//   - No group exceeds maxPerGroup
//   - Every non-seed member is within maxDistanceMeters of its group's seed
type ProximityClusterer struct{}

// NewProximityClusterer creates a new ProximityClusterer instance.
func NewProximityClusterer() ProximityClusterer {
	return ProximityClusterer{}
}

// Cluster partitions the given orders into groups.
// All orders must carry valid coordinates; filter with IsRoutable first.
func (ProximityClusterer) Cluster(
	orders []*order.DeliverableOrder,
	maxPerGroup int,
	maxDistanceMeters float64,
) ([][]*order.DeliverableOrder, error) {
	if maxPerGroup < 1 {
		return nil, errs.NewValueIsInvalidError("maxPerGroup must be at least 1")
	}

	if maxDistanceMeters <= 0 {
		return nil, errs.NewValueIsInvalidError("maxDistanceMeters must be positive")
	}

	for _, o := range orders {
		if err := o.Validate(); err != nil {
			return nil, err
		}
		if !o.HasLocation() {
			return nil, errs.NewValueIsRequiredError("order location")
		}
	}

	remaining := make([]*order.DeliverableOrder, len(orders))
	copy(remaining, orders)

	var groups [][]*order.DeliverableOrder
	for len(remaining) > 0 {
		seed := remaining[0]
		remaining = remaining[1:]

		group := []*order.DeliverableOrder{seed}
		kept := remaining[:0]

		for _, candidate := range remaining {
			if len(group) >= maxPerGroup {
				kept = append(kept, candidate)
				continue
			}

			d, err := seed.Location().DistanceTo(*candidate.Location())
			if err != nil {
				return nil, err
			}

			if d <= maxDistanceMeters {
				group = append(group, candidate)
			} else {
				kept = append(kept, candidate)
			}
		}

		remaining = kept
		groups = append(groups, group)
	}

	return groups, nil
}
