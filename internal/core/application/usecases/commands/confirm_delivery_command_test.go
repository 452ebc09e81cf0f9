package commands_test

import (
	"strings"
	"testing"

	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/domain/model/parcel"
	"tracking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfirmDeliveryCommand(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		cmd, err := commands.NewConfirmDeliveryCommand("T0001", " Ada Lovelace ", "+44 20 7946 0000", 3)
		require.NoError(t, err)
		require.NoError(t, cmd.Validate())

		assert.Equal(t, "T0001", cmd.TrackingCode())
		assert.Equal(t, "Ada Lovelace", cmd.Recipient().Name())
		assert.Equal(t, "+44 20 7946 0000", cmd.Recipient().Contact())
		assert.Equal(t, parcel.StaffID(3), cmd.ActorID())
	})

	testCases := []struct {
		name    string
		code    string
		rname   string
		contact string
		actorID int64
		target  error
	}{
		{"missing actor", "T0001", "Ada", "ada@example.com", 0, errs.ErrUnauthorized},
		{"negative actor", "T0001", "Ada", "ada@example.com", -4, errs.ErrUnauthorized},
		{"blank code", "", "Ada", "ada@example.com", 3, errs.ErrValueIsRequired},
		{"blank name", "T0001", "  ", "ada@example.com", 3, errs.ErrValueIsRequired},
		{"blank contact", "T0001", "Ada", "", 3, errs.ErrValueIsRequired},
		{"long name", "T0001", strings.Repeat("a", 101), "ada@example.com", 3, errs.ErrValueIsOutOfRange},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cmd, err := commands.NewConfirmDeliveryCommand(tc.code, tc.rname, tc.contact, tc.actorID)

			require.ErrorIs(t, err, tc.target)
			require.ErrorIs(t, cmd.Validate(), commands.ErrConfirmDeliveryCommandIsNotConstructed)
		})
	}
}
