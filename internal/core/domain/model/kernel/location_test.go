package kernel_test

import (
	"strings"
	"testing"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocation(t *testing.T) {
	t.Run("trims description", func(t *testing.T) {
		l, err := kernel.NewLocation("  Hub A\n")

		require.NoError(t, err)
		require.NoError(t, l.Validate())
		assert.Equal(t, "Hub A", l.String())
	})

	t.Run("accepts the maximum length in runes", func(t *testing.T) {
		_, err := kernel.NewLocation(strings.Repeat("ü", kernel.LocationMaxLength))
		require.NoError(t, err)
	})

	t.Run("blank", func(t *testing.T) {
		_, err := kernel.NewLocation(" \t ")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("too long", func(t *testing.T) {
		_, err := kernel.NewLocation(strings.Repeat("a", kernel.LocationMaxLength+1))

		var rangeErr *errs.ValueIsOutOfRangeError
		require.ErrorAs(t, err, &rangeErr)
		assert.Equal(t, kernel.LocationMaxLength+1, rangeErr.Value)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var l kernel.Location
		require.ErrorIs(t, l.Validate(), kernel.ErrLocationIsNotConstructed)
	})
}
