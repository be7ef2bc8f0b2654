package order_test

import (
	"testing"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeliveryType_Validate(t *testing.T) {
	t.Run("valid_types", func(t *testing.T) {
		for _, dt := range []order.DeliveryType{order.Delivery, order.Pickup, order.DineIn} {
			require.NoError(t, dt.Validate())
		}
	})

	t.Run("invalid_types", func(t *testing.T) {
		for _, dt := range []order.DeliveryType{order.DeliveryTypeUnknown, order.DeliveryType(99)} {
			require.ErrorIs(t, dt.Validate(), errs.ErrValueIsInvalid)
		}
	})
}

func TestDeliveryType_String(t *testing.T) {
	assert.Equal(t, "DELIVERY", order.Delivery.String())
	assert.Equal(t, "PICKUP", order.Pickup.String())
	assert.Equal(t, "DINE_IN", order.DineIn.String())
	assert.Equal(t, "UNKNOWN", order.DeliveryTypeUnknown.String())
	assert.Equal(t, "UNKNOWN", order.DeliveryType(42).String())
}

func TestDeliveryTypeFromString(t *testing.T) {
	t.Run("round_trip", func(t *testing.T) {
		for _, dt := range []order.DeliveryType{order.Delivery, order.Pickup, order.DineIn} {
			parsed, err := order.DeliveryTypeFromString(dt.String())

			require.NoError(t, err)
			assert.Equal(t, dt, parsed)
		}
	})

	t.Run("unknown_string", func(t *testing.T) {
		_, err := order.DeliveryTypeFromString("DRIVE_THRU")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestDeliveryType_RequiresDispatch(t *testing.T) {
	assert.True(t, order.Delivery.RequiresDispatch())
	assert.False(t, order.Pickup.RequiresDispatch())
	assert.False(t, order.DineIn.RequiresDispatch())

	assert.Equal(t, []string{"DELIVERY"}, order.DispatchDeliveryTypeNames())
}
