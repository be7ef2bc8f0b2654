package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// DeliveryType represents how an order reaches the customer. The orders table
// is shared with the wider restaurant system, so the engine must distinguish
// orders that need a courier from pickup and dine-in orders.
type DeliveryType int

const (
	// DeliveryTypeUnknown represents an invalid or undefined delivery type.
	DeliveryTypeUnknown DeliveryType = iota

	// Delivery means a courier brings the order to the customer.
	Delivery

	// Pickup means the customer collects the order at the branch.
	Pickup

	// DineIn means the order is consumed on premises.
	DineIn
)

func getDeliveryTypeStrings() map[DeliveryType]string {
	return map[DeliveryType]string{
		DeliveryTypeUnknown: "UNKNOWN",
		Delivery:            "DELIVERY",
		Pickup:              "PICKUP",
		DineIn:              "DINE_IN",
	}
}

func getValidDeliveryTypeStrings() map[DeliveryType]string {
	//nolint:exhaustive // DeliveryTypeUnknown is intentionally excluded as it's invalid
	return map[DeliveryType]string{
		Delivery: "DELIVERY",
		Pickup:   "PICKUP",
		DineIn:   "DINE_IN",
	}
}

// Validate checks that the DeliveryType value is one of the defined types.
func (t DeliveryType) Validate() error {
	if _, ok := getValidDeliveryTypeStrings()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("deliveryType is invalid",
			fmt.Errorf("%d is not a valid delivery type", t))
	}
	return nil
}

// String implements fmt.Stringer.
func (t DeliveryType) String() string {
	if str, ok := getDeliveryTypeStrings()[t]; ok {
		return str
	}
	return "UNKNOWN"
}

// DeliveryTypeFromString parses a delivery type from its wire representation.
func DeliveryTypeFromString(s string) (DeliveryType, error) {
	for deliveryType, str := range getValidDeliveryTypeStrings() {
		if str == s {
			return deliveryType, nil
		}
	}
	return DeliveryTypeUnknown, errs.NewValueIsInvalidErrorWithCause("deliveryType is invalid",
		fmt.Errorf("%q is not a valid delivery type", s))
}

// RequiresDispatch reports whether orders of this type need a courier trip.
func (t DeliveryType) RequiresDispatch() bool {
	return t == Delivery
}

// DispatchDeliveryTypeNames lists the wire names of the types that require
// dispatch, for use in persistence filters.
func DispatchDeliveryTypeNames() []string {
	names := make([]string, 0, 1)
	for deliveryType, str := range getValidDeliveryTypeStrings() {
		if deliveryType.RequiresDispatch() {
			names = append(names, str)
		}
	}
	return names
}
