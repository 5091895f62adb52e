package kernel_test

import (
	"testing"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmail(t *testing.T) {
	t.Run("normalizes case and whitespace", func(t *testing.T) {
		email, err := kernel.NewEmail("  Alice@Example.COM ")

		require.NoError(t, err)
		require.NoError(t, email.Validate())
		assert.Equal(t, "alice@example.com", email.String())
	})

	t.Run("requires a value", func(t *testing.T) {
		_, err := kernel.NewEmail("   ")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects implausible addresses", func(t *testing.T) {
		for _, raw := range []string{
			"plainaddress",
			"@example.com",
			"alice@",
			"alice@localhost",
			"Alice <alice@example.com>",
			"alice example@example.com",
		} {
			_, err := kernel.NewEmail(raw)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid, raw)
		}
	})
}

func TestEmail_IsEqual(t *testing.T) {
	a := kernel.MustEmail("bob@example.com")
	b := kernel.MustEmail("BOB@example.com")
	c := kernel.MustEmail("carol@example.com")

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))

	var zero kernel.Email
	assert.False(t, zero.IsEqual(kernel.Email{}))
	assert.Equal(t, kernel.ErrEmailIsNotConstructed, zero.Validate())
}

func TestMustEmail_PanicsOnInvalidInput(t *testing.T) {
	assert.Panics(t, func() { kernel.MustEmail("nope") })
}
