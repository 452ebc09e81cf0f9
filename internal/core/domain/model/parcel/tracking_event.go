package parcel

import (
	"errors"
	"fmt"
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/errs"
)

var ErrTrackingEventIsNotConstructed = errors.New(
	"TrackingEvent must be created by a Parcel or via RestoreTrackingEvent")

// TrackingEvent is one immutable entry of a parcel's tracking ledger.
//
// Invariants:
//   - The booking event has no actor; every later event names the staff member who recorded it
//   - Only the Delivered event carries recipient details
//   - The ID is zero until the ledger has appended the event
type TrackingEvent struct {
	id         EventID
	parcelID   kernel.UUID
	status     Status
	location   kernel.Location
	updateTime time.Time
	actorID    *StaffID
	recipient  *Recipient

	isConstructed bool
}

func newTrackingEvent(
	parcelID kernel.UUID,
	status Status,
	location kernel.Location,
	updateTime time.Time,
	actorID *StaffID,
	recipient *Recipient,
) (*TrackingEvent, error) {
	event := &TrackingEvent{
		parcelID:      parcelID,
		status:        status,
		location:      location,
		updateTime:    updateTime.UTC(),
		actorID:       actorID,
		recipient:     recipient,
		isConstructed: true,
	}

	if err := event.validateFields(); err != nil {
		return nil, err
	}
	return event, nil
}

// RestoreTrackingEvent rebuilds a persisted event. The id must already be assigned.
func RestoreTrackingEvent(
	id EventID,
	parcelID kernel.UUID,
	status Status,
	location kernel.Location,
	updateTime time.Time,
	actorID *StaffID,
	recipient *Recipient,
) (*TrackingEvent, error) {
	if id <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("event id", fmt.Errorf("%d is not greater than 0", id))
	}

	event, err := newTrackingEvent(parcelID, status, location, updateTime, actorID, recipient)
	if err != nil {
		return nil, err
	}
	event.id = id
	return event, nil
}

func (e *TrackingEvent) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrTrackingEventIsNotConstructed
	}
	return nil
}

func (e *TrackingEvent) ID() EventID {
	return e.id
}

func (e *TrackingEvent) ParcelID() kernel.UUID {
	return e.parcelID
}

func (e *TrackingEvent) Status() Status {
	return e.status
}

func (e *TrackingEvent) Location() kernel.Location {
	return e.location
}

func (e *TrackingEvent) UpdateTime() time.Time {
	return e.updateTime
}

// ActorID is nil for the system-generated booking event.
func (e *TrackingEvent) ActorID() *StaffID {
	return e.actorID
}

// Recipient is nil for every status except Delivered.
func (e *TrackingEvent) Recipient() *Recipient {
	return e.recipient
}

func (e *TrackingEvent) validateFields() error {
	if err := errors.Join(
		e.parcelID.Validate(),
		e.status.Validate(),
		e.location.Validate(),
	); err != nil {
		return err
	}

	if e.updateTime.IsZero() {
		return errs.NewValueIsRequiredError("update time")
	}

	switch {
	case e.status == Booked && e.actorID != nil:
		return errs.NewValueIsInvalidErrorWithCause("actor id", errors.New("booking event is system generated"))
	case e.status != Booked && e.actorID == nil:
		return errs.NewValueIsRequiredError("actor id")
	case e.actorID != nil && *e.actorID <= 0:
		return errs.NewValueIsInvalidErrorWithCause("actor id", fmt.Errorf("%d is not greater than 0", *e.actorID))
	}

	switch {
	case e.status == Delivered && e.recipient == nil:
		return errs.NewValueIsRequiredError("recipient")
	case e.status != Delivered && e.recipient != nil:
		return errs.NewValueIsInvalidErrorWithCause("recipient", fmt.Errorf("%s events have no recipient", e.status))
	case e.recipient != nil:
		return e.recipient.Validate()
	}

	return nil
}
