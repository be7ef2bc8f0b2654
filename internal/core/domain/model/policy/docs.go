// Package policy models the per-branch dispatch policy: the configuration
// that bounds route planning (trip capacity, clustering radius), selects the
// courier availability rule, and decides whether new assignments start
// immediately. A branch gets a default policy lazily on first access.
package policy
