package commands_test

import (
	"testing"

	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/domain/model/parcel"
	"tracking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecordStatusUpdateCommand(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		cmd, err := commands.NewRecordStatusUpdateCommand(" T0001 ", " Sorting Hub ", "in transit", 9)
		require.NoError(t, err)
		require.NoError(t, cmd.Validate())

		assert.Equal(t, "T0001", cmd.TrackingCode())
		assert.Equal(t, "Sorting Hub", cmd.Location().String())
		assert.Equal(t, parcel.InTransit, cmd.Status())
		assert.Equal(t, parcel.StaffID(9), cmd.ActorID())
	})

	t.Run("malformed code is kept for lookup", func(t *testing.T) {
		cmd, err := commands.NewRecordStatusUpdateCommand("UNKNOWN", "Hub", "In Transit", 9)
		require.NoError(t, err)
		assert.Equal(t, "UNKNOWN", cmd.TrackingCode())
	})

	testCases := []struct {
		name     string
		code     string
		location string
		status   string
		actorID  int64
		target   error
	}{
		{"missing actor", "T0001", "Hub", "In Transit", 0, errs.ErrUnauthorized},
		{"blank code", " ", "Hub", "In Transit", 9, errs.ErrValueIsRequired},
		{"blank location", "T0001", "", "In Transit", 9, errs.ErrValueIsRequired},
		{"unknown status", "T0001", "Hub", "Lost", 9, errs.ErrValueIsInvalid},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cmd, err := commands.NewRecordStatusUpdateCommand(tc.code, tc.location, tc.status, tc.actorID)

			require.ErrorIs(t, err, tc.target)
			require.ErrorIs(t, cmd.Validate(), commands.ErrRecordStatusUpdateCommandIsNotConstructed)
		})
	}
}
