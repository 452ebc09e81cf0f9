package commands

import (
	"errors"
	"strings"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/parcel"
	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"
)

var ErrRecordStatusUpdateCommandIsNotConstructed = errors.New(
	"RecordStatusUpdateCommand must be created via NewRecordStatusUpdateCommand constructor",
)

// RecordStatusUpdateCommand appends a staff-reported status to a parcel's ledger.
//
// The tracking code is kept as entered: a malformed code cannot match any parcel,
// so the handler reports it as not found rather than as invalid input.
type RecordStatusUpdateCommand struct { //nolint:recvcheck //using for validation
	trackingCode string
	location     kernel.Location
	status       parcel.Status
	actorID      parcel.StaffID

	guard guard.ConstructorGuard
}

// NewRecordStatusUpdateCommand rejects a missing actor with errs.UnauthorizedError and
// unparseable input with validation errors. Whether the status is reachable from the
// parcel's current one is decided by the handler.
func NewRecordStatusUpdateCommand(
	trackingCode string,
	location string,
	status string,
	actorID int64,
) (RecordStatusUpdateCommand, error) {
	cmd := RecordStatusUpdateCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActorID(actorID),
		cmd.setTrackingCode(trackingCode),
		cmd.setLocation(location),
		cmd.setStatus(status),
	); err != nil {
		return RecordStatusUpdateCommand{}, err
	}

	return cmd, nil
}

func (c RecordStatusUpdateCommand) Validate() error {
	return c.guard.Validate(ErrRecordStatusUpdateCommandIsNotConstructed)
}

func (c RecordStatusUpdateCommand) TrackingCode() string {
	return c.trackingCode
}

func (c RecordStatusUpdateCommand) Location() kernel.Location {
	return c.location
}

func (c RecordStatusUpdateCommand) Status() parcel.Status {
	return c.status
}

func (c RecordStatusUpdateCommand) ActorID() parcel.StaffID {
	return c.actorID
}

func (c *RecordStatusUpdateCommand) setActorID(id int64) error {
	actorID := parcel.StaffID(id)
	if err := actorID.Validate("record status update"); err != nil {
		return err
	}
	c.actorID = actorID
	return nil
}

func (c *RecordStatusUpdateCommand) setTrackingCode(code string) error {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return errs.NewValueIsRequiredError("tracking code")
	}
	c.trackingCode = trimmed
	return nil
}

func (c *RecordStatusUpdateCommand) setLocation(location string) error {
	l, err := kernel.NewLocation(location)
	if err != nil {
		return err
	}
	c.location = l
	return nil
}

func (c *RecordStatusUpdateCommand) setStatus(status string) error {
	s, err := parcel.ParseStatus(status)
	if err != nil {
		return err
	}
	c.status = s
	return nil
}
