package order_test

import (
	"testing"

	"afalstore/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFromString(t *testing.T) {
	t.Run("should parse all valid wire names", func(t *testing.T) {
		tests := map[string]order.Status{
			"pending":           order.Pending,
			"packed":            order.Packed,
			"shipped":           order.Shipped,
			"delivered":         order.Delivered,
			"return_in_transit": order.ReturnInTransit,
			"cancelled":         order.Cancelled,
			"returned":          order.Returned,
		}

		for name, want := range tests {
			got, err := order.StatusFromString(name)
			require.NoError(t, err, name)
			assert.Equal(t, want, got)
		}
	})

	t.Run("should reject names outside the closed enum", func(t *testing.T) {
		for _, name := range []string{"", "unknown", "PENDING", "shiped", "refunded", "delivered "} {
			got, err := order.StatusFromString(name)

			require.Error(t, err, name)
			assert.Equal(t, order.Unknown, got)
			assert.Contains(t, err.Error(), "status is invalid")
		}
	})
}

func TestStatus_Validate(t *testing.T) {
	t.Run("should accept all seven named statuses", func(t *testing.T) {
		statuses := []order.Status{
			order.Pending, order.Packed, order.Shipped, order.Delivered,
			order.ReturnInTransit, order.Cancelled, order.Returned,
		}

		for _, s := range statuses {
			require.NoError(t, s.Validate(), s.String())
		}
	})

	t.Run("should reject unknown and out-of-range values", func(t *testing.T) {
		for _, s := range []order.Status{order.Unknown, order.Status(-1), order.Status(42)} {
			err := s.Validate()

			require.Error(t, err)
			assert.Contains(t, err.Error(), "status is invalid")
		}
	})
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "pending", order.Pending.String())
	assert.Equal(t, "return_in_transit", order.ReturnInTransit.String())
	assert.Equal(t, "unknown", order.Unknown.String())
	assert.Equal(t, "unknown", order.Status(99).String())
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, order.Returned.IsTerminal())

	for _, s := range []order.Status{
		order.Pending, order.Packed, order.Shipped, order.Delivered,
		order.ReturnInTransit, order.Cancelled,
	} {
		assert.False(t, s.IsTerminal(), s.String())
	}
}

func TestStatus_IsEditable(t *testing.T) {
	assert.True(t, order.Pending.IsEditable())
	assert.True(t, order.Packed.IsEditable())

	for _, s := range []order.Status{
		order.Shipped, order.Delivered, order.ReturnInTransit,
		order.Cancelled, order.Returned,
	} {
		assert.False(t, s.IsEditable(), s.String())
	}
}
