package services

import (
	"math"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/branch"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

const (
	// averageSpeedKmh is the average travel speed assumed by the time estimate.
	averageSpeedKmh = 30.0
	// stopDwellMinutes is the fixed per-stop handover time added to the estimate.
	stopDwellMinutes = 5.0

	// fallbackOriginLat/Lng is the origin used when a branch has no stored
	// coordinates and no geocoded address (São Paulo city center).
	fallbackOriginLat = -23.550520
	fallbackOriginLng = -46.633308
)

// Route is the result of route building: the ordered point list (origin
// first), the summed great-circle distance, and the time estimate.
type Route struct {
	Points         []assignment.RoutePoint
	DistanceMeters int
	TimeMinutes    int
}

// BranchOrigin is the resolved starting point of a route. UsedFallback is set
// when neither the branch coordinates nor the address coordinates were
// available and the fixed default had to be used; callers should log a
// warning in that case.
type BranchOrigin struct {
	Point        kernel.GeoPoint
	UsedFallback bool
}

// ResolveBranchOrigin resolves a branch's route origin through the fallback
// chain: stored branch coordinates, then geocoded address coordinates, then
// the fixed default coordinate.
func ResolveBranchOrigin(b *branch.Branch) (BranchOrigin, error) {
	if err := b.Validate(); err != nil {
		return BranchOrigin{}, err
	}

	if p := b.Location(); p != nil {
		return BranchOrigin{Point: *p}, nil
	}

	if p := b.AddressLocation(); p != nil {
		return BranchOrigin{Point: *p}, nil
	}

	fallback, err := kernel.NewGeoPoint(fallbackOriginLat, fallbackOriginLng)
	if err != nil {
		return BranchOrigin{}, err
	}

	return BranchOrigin{Point: fallback, UsedFallback: true}, nil
}

// RouteBuilder is a domain service that sequences a cluster of orders into an
// assignment route and computes its estimates.
//
// Stops keep the order they were clustered in; there is no re-sequencing or
// road-network routing. The time estimate is an average-speed model
// (30 km/h) plus a fixed five-minute dwell per stop, rounded up.
type RouteBuilder struct{}

// NewRouteBuilder creates a new RouteBuilder instance.
func NewRouteBuilder() RouteBuilder {
	return RouteBuilder{}
}

// Build constructs the route for one cluster: the branch origin first,
// followed by one point per order. All orders must carry valid coordinates.
func (RouteBuilder) Build(origin assignment.RoutePoint, orders []*order.DeliverableOrder) (Route, error) {
	if err := origin.Validate(); err != nil {
		return Route{}, err
	}

	if !origin.IsOrigin() {
		return Route{}, errs.NewValueIsInvalidError("route must start from an origin point")
	}

	if len(orders) == 0 {
		return Route{}, errs.NewValueIsRequiredError("orders")
	}

	points := make([]assignment.RoutePoint, 0, len(orders)+1)
	points = append(points, origin)

	totalMeters := 0.0
	previous := origin.Point()

	for _, o := range orders {
		if err := o.Validate(); err != nil {
			return Route{}, err
		}
		if !o.HasLocation() {
			return Route{}, errs.NewValueIsRequiredError("order location")
		}

		stop := *o.Location()
		point, err := assignment.NewRoutePoint(o.ID(), stop, o.AddressText(), o.CustomerName())
		if err != nil {
			return Route{}, err
		}

		d, err := previous.DistanceTo(stop)
		if err != nil {
			return Route{}, err
		}

		totalMeters += d
		previous = stop
		points = append(points, point)
	}

	return Route{
		Points:         points,
		DistanceMeters: int(math.Round(totalMeters)),
		TimeMinutes:    estimateMinutes(totalMeters, len(orders)),
	}, nil
}

// estimateMinutes converts a route distance into a time estimate:
// travel at average speed plus the per-stop dwell, rounded up.
func estimateMinutes(distanceMeters float64, stops int) int {
	travel := distanceMeters / 1000.0 / averageSpeedKmh * 60.0
	return int(math.Ceil(travel + float64(stops)*stopDwellMinutes))
}
