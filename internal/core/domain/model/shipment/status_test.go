package shipment_test

import (
	"fmt"
	"testing"

	"parceltrack/internal/core/domain/model/shipment"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Constants(t *testing.T) {
	assert.Equal(t, 0, int(shipment.Unknown))
	assert.Equal(t, 1, int(shipment.Dispatched))
	assert.Equal(t, 2, int(shipment.InTransit))
	assert.Equal(t, 3, int(shipment.Delivered))
	assert.Equal(t, 4, int(shipment.Returned))
	assert.Equal(t, 5, int(shipment.Cancelled))
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "Dispatched", shipment.Dispatched.String())
	assert.Equal(t, "In Transit", shipment.InTransit.String())
	assert.Equal(t, "Cancelled", shipment.Cancelled.String())
	assert.Equal(t, "Unknown", shipment.Status(42).String())
}

func TestParseStatus(t *testing.T) {
	tests := map[string]shipment.Status{
		"Dispatched": shipment.Dispatched,
		"In Transit": shipment.InTransit,
		"InTransit":  shipment.InTransit,
		"in_transit": shipment.InTransit,
		" delivered": shipment.Delivered,
		"RETURNED":   shipment.Returned,
		"Cancelled":  shipment.Cancelled,
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			got, err := shipment.ParseStatus(in)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}

	t.Run("should reject unknown names", func(t *testing.T) {
		for _, in := range []string{"", "Unknown", "Lost"} {
			_, err := shipment.ParseStatus(in)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid, in)
		}
	})
}

func TestStatus_Validate(t *testing.T) {
	for _, s := range shipment.Statuses() {
		require.NoError(t, s.Validate(), s.String())
	}
	require.ErrorIs(t, shipment.Unknown.Validate(), errs.ErrValueIsInvalid)
	require.ErrorIs(t, shipment.Status(6).Validate(), errs.ErrValueIsInvalid)
	require.ErrorIs(t, shipment.Status(-1).Validate(), errs.ErrValueIsInvalid)
}

func TestStatus_AllowedTargets(t *testing.T) {
	tests := []struct {
		from shipment.Status
		want []shipment.Status
	}{
		{shipment.Dispatched, []shipment.Status{shipment.InTransit, shipment.Delivered, shipment.Returned, shipment.Cancelled}},
		{shipment.InTransit, []shipment.Status{shipment.Delivered, shipment.Returned, shipment.Cancelled}},
		{shipment.Delivered, []shipment.Status{shipment.Returned, shipment.Cancelled}},
		{shipment.Returned, []shipment.Status{shipment.Cancelled}},
		{shipment.Cancelled, []shipment.Status{}},
	}
	for _, tt := range tests {
		t.Run(tt.from.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.AllowedTargets())
		})
	}

	t.Run("should return a copy", func(t *testing.T) {
		targets := shipment.Dispatched.AllowedTargets()
		targets[0] = shipment.Unknown
		assert.Equal(t, shipment.InTransit, shipment.Dispatched.AllowedTargets()[0])
	})

	t.Run("Unknown has no targets", func(t *testing.T) {
		assert.Empty(t, shipment.Unknown.AllowedTargets())
	})
}

// Every pair of statuses: accepted exactly when the target is later in the order.
func TestStatus_ValidateTransition_ForwardOnly(t *testing.T) {
	all := shipment.Statuses()
	for i, from := range all {
		for j, to := range all {
			t.Run(fmt.Sprintf("%s->%s", from, to), func(t *testing.T) {
				err := from.ValidateTransition(to)
				if j > i {
					require.NoError(t, err)
					assert.True(t, from.CanTransitionTo(to))
					return
				}
				require.ErrorIs(t, err, errs.ErrInvalidTransition)
				assert.False(t, from.CanTransitionTo(to))

				var transitionErr *errs.InvalidTransitionError
				require.ErrorAs(t, err, &transitionErr)
				assert.Equal(t, from.String(), transitionErr.From)
				assert.Equal(t, to.String(), transitionErr.To)
			})
		}
	}

	t.Run("should reject Unknown as target", func(t *testing.T) {
		err := shipment.Dispatched.ValidateTransition(shipment.Unknown)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.False(t, shipment.Dispatched.IsTerminal())
	assert.False(t, shipment.InTransit.IsTerminal())
	assert.True(t, shipment.Delivered.IsTerminal())
	assert.False(t, shipment.Returned.IsTerminal())
	assert.True(t, shipment.Cancelled.IsTerminal())
}
