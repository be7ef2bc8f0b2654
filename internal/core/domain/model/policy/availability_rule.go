package policy

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// AvailabilityRule determines when a courier is considered free to receive
// new delivery work.
type AvailabilityRule int

const (
	// RuleUnknown represents an invalid or undefined rule.
	RuleUnknown AvailabilityRule = iota

	// AfterAllDelivered makes a courier available once every order of the
	// previous trip has been delivered, even if the trip itself is still open.
	AfterAllDelivered

	// AfterTripCompleted makes a courier available only once they have no
	// pending or in-progress trip at all.
	AfterTripCompleted
)

func getRuleStrings() map[AvailabilityRule]string {
	return map[AvailabilityRule]string{
		RuleUnknown:        "UNKNOWN",
		AfterAllDelivered:  "AFTER_ALL_DELIVERED",
		AfterTripCompleted: "AFTER_TRIP_COMPLETED",
	}
}

func getValidRuleStrings() map[AvailabilityRule]string {
	//nolint:exhaustive // RuleUnknown is intentionally excluded as it's invalid
	return map[AvailabilityRule]string{
		AfterAllDelivered:  "AFTER_ALL_DELIVERED",
		AfterTripCompleted: "AFTER_TRIP_COMPLETED",
	}
}

// Validate checks that the rule is one of the defined values.
func (r AvailabilityRule) Validate() error {
	if _, ok := getValidRuleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("availability rule is invalid",
			fmt.Errorf("%d is not a valid availability rule", r))
	}
	return nil
}

// String implements fmt.Stringer.
func (r AvailabilityRule) String() string {
	if str, ok := getRuleStrings()[r]; ok {
		return str
	}
	return "UNKNOWN"
}

// AvailabilityRuleFromString parses a rule from its wire representation.
func AvailabilityRuleFromString(s string) (AvailabilityRule, error) {
	for rule, str := range getValidRuleStrings() {
		if str == s {
			return rule, nil
		}
	}
	return RuleUnknown, errs.NewValueIsInvalidErrorWithCause("availability rule is invalid",
		fmt.Errorf("%q is not a valid availability rule", s))
}
