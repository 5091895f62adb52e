package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("names the tracking number that matched nothing", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("trackingNumber", "CSQWERTY1234")

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		assert.Equal(t, "trackingNumber", err.ParamName)
		assert.Equal(t, "object not found: CSQWERTY1234", err.Error())
	})

	t.Run("keeps the lookup failure that caused it", func(t *testing.T) {
		cause := errors.New("relation \"shipments\" does not exist")
		err := errs.NewObjectNotFoundErrorWithCause("shipment", "0197a1c2-4d5e-7f00-8a9b-0c1d2e3f4a5b", cause)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: shipment, ID is: 0197a1c2-4d5e-7f00-8a9b-0c1d2e3f4a5b "+
				"(cause: relation \"shipments\" does not exist)",
			err.Error())
	})

	t.Run("stays matchable through wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("delete entry: %w", errs.NewObjectNotFoundError("addressBookEntry", "e-1"))

		var notFound *errs.ObjectNotFoundError
		require.ErrorAs(t, wrapped, &notFound)
		assert.Equal(t, "addressBookEntry", notFound.ParamName)
		assert.NotErrorIs(t, wrapped, errs.ErrValueIsInvalid)
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("status names outside the lifecycle", func(t *testing.T) {
		err := errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a known status", "Lost"))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, `value is invalid: status (cause: "Lost" is not a known status)`, err.Error())
	})

	t.Run("malformed tracking number", func(t *testing.T) {
		err := errs.NewValueIsInvalidErrorWithCause("trackingNumber", errors.New(`"cs123" does not match ^CS[A-Z0-9]{10}$`))

		assert.Equal(t, "trackingNumber", err.ParamName)
		assert.Contains(t, err.Error(), "value is invalid: trackingNumber")
	})

	t.Run("without cause", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("receiver")

		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: receiver", err.Error())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("rating outside one to five", func(t *testing.T) {
		for _, rating := range []int{0, 6} {
			err := errs.NewValueIsOutOfRangeError("rating", rating, 1, 5)

			require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
			assert.Equal(t,
				fmt.Sprintf("value is invalid: %d is rating, min value is 1, max value is 5", rating),
				err.Error())
		}
	})

	t.Run("raw weight input is flattened to one line", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("weight", "-3\n0", 1, 1_000_000_000)

		assert.Equal(t, "value is invalid: -3 0 is weight, min value is 1, max value is 1000000000", err.Error())
		assert.NotContains(t, err.Error(), "\n")
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("rating column check failed")
		err := errs.NewValueIsOutOfRangeErrorWithCause("rating", 9, 1, 5, cause)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Equal(t, 1, err.Min)
		assert.Equal(t, 5, err.Max)
		assert.Equal(t,
			"value is invalid: 9 is rating, min value is 1, max value is 5 (cause: rating column check failed)",
			err.Error())
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("missing parcel fields", func(t *testing.T) {
		for _, param := range []string{"packageSize", "deliveryAddress", "trackingNumber"} {
			err := errs.NewValueIsRequiredError(param)

			require.ErrorIs(t, err, errs.ErrValueIsRequired)
			assert.Equal(t, "value is required: "+param, err.Error())
		}
	})

	t.Run("with cause", func(t *testing.T) {
		err := errs.NewValueIsRequiredErrorWithCause("documents", errors.New("no files in form"))

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Equal(t, "value is required: documents (cause: no files in form)", err.Error())
	})
}

func TestFieldErrorsSurviveAggregation(t *testing.T) {
	err := errs.NewValidationError(
		errs.NewValueIsRequiredError("packageSize"),
		errs.NewValueIsOutOfRangeError("weight", "0", 1, 1_000_000_000),
		errs.NewValueIsInvalidError("receiver"),
	)

	require.ErrorIs(t, err, errs.ErrValidation)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.NotErrorIs(t, err, errs.ErrObjectNotFound)

	var outOfRange *errs.ValueIsOutOfRangeError
	require.ErrorAs(t, err, &outOfRange)
	assert.Equal(t, "weight", outOfRange.ParamName)
}
