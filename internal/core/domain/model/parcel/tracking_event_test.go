package parcel_test

import (
	"testing"
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/parcel"
	"tracking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestoreTrackingEvent(t *testing.T) {
	parcelID := kernel.NewUUID()
	actor := parcel.StaffID(9)
	at := time.Date(2024, 3, 2, 8, 0, 0, 0, time.UTC)
	hub := location(t, "Hub A")
	r := recipient(t)

	testCases := []struct {
		name      string
		id        parcel.EventID
		status    parcel.Status
		actor     *parcel.StaffID
		recipient *parcel.Recipient
		wantErr   error
	}{
		{"booking event", 1, parcel.Booked, nil, nil, nil},
		{"status update", 2, parcel.InTransit, &actor, nil, nil},
		{"delivery", 3, parcel.Delivered, &actor, &r, nil},
		{"unassigned id", 0, parcel.InTransit, &actor, nil, errs.ErrValueIsInvalid},
		{"booking event with actor", 1, parcel.Booked, &actor, nil, errs.ErrValueIsInvalid},
		{"update without actor", 2, parcel.InTransit, nil, nil, errs.ErrValueIsRequired},
		{"delivery without recipient", 3, parcel.Delivered, &actor, nil, errs.ErrValueIsRequired},
		{"recipient on update", 2, parcel.InTransit, &actor, &r, errs.ErrValueIsInvalid},
		{"unknown status", 2, parcel.Unknown, &actor, nil, errs.ErrValueIsInvalid},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			event, err := parcel.RestoreTrackingEvent(tc.id, parcelID, tc.status, hub, at, tc.actor, tc.recipient)

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, event)
				return
			}
			require.NoError(t, err)
			require.NoError(t, event.Validate())
			assert.Equal(t, tc.id, event.ID())
			assert.Equal(t, tc.status, event.Status())
			assert.True(t, event.ParcelID().IsEqual(parcelID))
		})
	}
}

func TestTrackingEvent_Validate(t *testing.T) {
	var event *parcel.TrackingEvent
	require.ErrorIs(t, event.Validate(), parcel.ErrTrackingEventIsNotConstructed)
	require.ErrorIs(t, (&parcel.TrackingEvent{}).Validate(), parcel.ErrTrackingEventIsNotConstructed)
}
