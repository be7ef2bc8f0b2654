// Package services provides domain services that orchestrate business
// operations across multiple domain entities in the dispatch engine.
//
// The package includes:
//   - ProximityClusterer: partitions deliverable orders into trip-sized groups
//     bounded by capacity and great-circle radius
//   - RouteBuilder: sequences a cluster into an assignment route with
//     distance and time estimates, starting from the branch origin
//
// Both services are pure: they read domain objects and produce values, with
// no persistence concerns.
package services
