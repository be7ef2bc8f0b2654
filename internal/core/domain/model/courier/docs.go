// Package courier provides the dispatch engine's read model of delivery
// couriers. The courier record is owned by the courier service; this package
// models identity, branch scoping, and the workload counters the availability
// filter evaluates against the branch policy's availability rule.
package courier
