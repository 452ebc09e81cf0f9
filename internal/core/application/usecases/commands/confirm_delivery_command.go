package commands

import (
	"errors"
	"strings"

	"tracking/internal/core/domain/model/parcel"
	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"
)

var ErrConfirmDeliveryCommandIsNotConstructed = errors.New(
	"ConfirmDeliveryCommand must be created via NewConfirmDeliveryCommand constructor",
)

// ConfirmDeliveryCommand records the terminal Delivered event with the recipient's details.
type ConfirmDeliveryCommand struct { //nolint:recvcheck //using for validation
	trackingCode string
	recipient    parcel.Recipient
	actorID      parcel.StaffID

	guard guard.ConstructorGuard
}

func NewConfirmDeliveryCommand(
	trackingCode string,
	recipientName string,
	recipientContact string,
	actorID int64,
) (ConfirmDeliveryCommand, error) {
	cmd := ConfirmDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActorID(actorID),
		cmd.setTrackingCode(trackingCode),
		cmd.setRecipient(recipientName, recipientContact),
	); err != nil {
		return ConfirmDeliveryCommand{}, err
	}

	return cmd, nil
}

func (c ConfirmDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrConfirmDeliveryCommandIsNotConstructed)
}

func (c ConfirmDeliveryCommand) TrackingCode() string {
	return c.trackingCode
}

func (c ConfirmDeliveryCommand) Recipient() parcel.Recipient {
	return c.recipient
}

func (c ConfirmDeliveryCommand) ActorID() parcel.StaffID {
	return c.actorID
}

func (c *ConfirmDeliveryCommand) setActorID(id int64) error {
	actorID := parcel.StaffID(id)
	if err := actorID.Validate("confirm delivery"); err != nil {
		return err
	}
	c.actorID = actorID
	return nil
}

func (c *ConfirmDeliveryCommand) setTrackingCode(code string) error {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return errs.NewValueIsRequiredError("tracking code")
	}
	c.trackingCode = trimmed
	return nil
}

func (c *ConfirmDeliveryCommand) setRecipient(name, contact string) error {
	r, err := parcel.NewRecipient(name, contact)
	if err != nil {
		return err
	}
	c.recipient = r
	return nil
}
