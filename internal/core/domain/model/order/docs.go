// Package order provides the dispatch engine's view of restaurant orders.
//
// The package includes:
//   - DeliverableOrder: An immutable read projection used during route planning
//   - Status: The delivery-related order states cascaded by assignment transitions
//
// Key business rules:
//   - Only orders in PREPARING or READY status are eligible for routing
//   - Orders without coordinates or a customer identity are excluded from planning
//   - Assignment transitions cascade orders to DELIVERING and DELIVERED
//   - Detaching an order from an assignment resets it to PREPARING
//
// The authoritative order aggregate lives in the order service; this package
// only models what routing and status cascades need.
package order
