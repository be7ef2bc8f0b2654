// Package assignment provides the DeliveryAssignment aggregate root: a
// delivery trip grouping one or more orders under an optional courier, with
// an ordered route (branch origin plus one stop per order), distance/time
// estimates, and a monotonic status state machine.
//
// Key business rules:
//   - A route always contains the branch origin followed by one point per linked order
//   - Status flows PENDING -> IN_PROGRESS -> COMPLETED, with CANCELLED reachable
//     from any non-terminal state
//   - StartedAt/CompletedAt are recorded once, on their respective transitions
//   - A referenced courier must belong to the same branch and be active
//
// Order-status cascades and courier propagation to linked orders are
// transactional concerns owned by the command handlers, not by the aggregate.
package assignment
