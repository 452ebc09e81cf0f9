package kernel_test

import (
	"testing"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTrackingCode(t *testing.T) {
	testCases := []struct {
		sequence int64
		expected string
	}{
		{1, "T0001"},
		{42, "T0042"},
		{9999, "T9999"},
		{10000, "T10000"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			code, err := kernel.NewTrackingCode(tc.sequence)

			require.NoError(t, err)
			require.NoError(t, code.Validate())
			assert.Equal(t, tc.expected, code.String())
		})
	}

	t.Run("non-positive sequence", func(t *testing.T) {
		_, err := kernel.NewTrackingCode(0)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestParseTrackingCode(t *testing.T) {
	t.Run("round trips generated codes", func(t *testing.T) {
		generated, err := kernel.NewTrackingCode(7)
		require.NoError(t, err)

		parsed, err := kernel.ParseTrackingCode(generated.String())

		require.NoError(t, err)
		assert.True(t, parsed.IsEqual(generated))
	})

	t.Run("normalizes user input", func(t *testing.T) {
		code, err := kernel.ParseTrackingCode("  t0001 ")

		require.NoError(t, err)
		assert.Equal(t, "T0001", code.String())
	})

	t.Run("empty", func(t *testing.T) {
		_, err := kernel.ParseTrackingCode("")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	for _, input := range []string{"UNKNOWN", "T01", "X0001", "T00A1", "T0001 extra"} {
		t.Run("rejects "+input, func(t *testing.T) {
			_, err := kernel.ParseTrackingCode(input)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		})
	}

	t.Run("zero value is not constructed", func(t *testing.T) {
		var code kernel.TrackingCode
		require.ErrorIs(t, code.Validate(), kernel.ErrTrackingCodeIsNotConstructed)
	})
}
