package commands

import (
	"context"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/parcel"
	"tracking/internal/pkg/errs"

	log "github.com/sirupsen/logrus"
)

// ConfirmDeliveryCommandHandler closes a parcel's lifecycle. The Delivered event is
// recorded at the parcel's last known location, taken from its newest ledger event.
//
// Of two concurrent confirmations exactly one succeeds: the loser waits on the row
// lock, then observes Delivered and fails with errs.InvalidTransitionError.
type ConfirmDeliveryCommandHandler struct {
	uowFactory ParcelUoWFactory
	settings   HandlerSettings
}

func NewConfirmDeliveryCommandHandler(
	uowFactory ParcelUoWFactory,
	settings HandlerSettings,
) ConfirmDeliveryCommandHandler {
	return ConfirmDeliveryCommandHandler{
		uowFactory: uowFactory,
		settings:   settings.withDefaults("confirm-delivery-handler"),
	}
}

// Handle returns the id of the Delivered event.
func (h ConfirmDeliveryCommandHandler) Handle(ctx context.Context, command ConfirmDeliveryCommand) (parcel.EventID, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	code, err := kernel.ParseTrackingCode(command.TrackingCode())
	if err != nil {
		return 0, errs.NewObjectNotFoundErrorWithCause("parcel", command.TrackingCode(), err)
	}

	var eventID parcel.EventID
	err = h.settings.retrier().run(ctx, "confirm delivery", func(ctx context.Context) error {
		id, err := h.confirm(ctx, code, command)
		if err != nil {
			return err
		}
		eventID = id
		return nil
	})
	if err != nil {
		h.settings.Observer.OperationFailed("confirm delivery", err)
		return 0, err
	}

	h.settings.Observer.StatusRecorded(parcel.Delivered)
	h.settings.Logger.WithFields(log.Fields{
		"tracking_code": code.String(),
		"event_id":      int64(eventID),
	}).Info("Delivery confirmed")
	return eventID, nil
}

func (h ConfirmDeliveryCommandHandler) confirm(
	ctx context.Context,
	code kernel.TrackingCode,
	command ConfirmDeliveryCommand,
) (parcel.EventID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ParcelRepository()
	ledger := uow.TrackingLedger()

	p, err := repo.LockByTrackingCode(ctx, code)
	if err != nil {
		return 0, err
	}

	latest, err := ledger.Latest(ctx, p.ID())
	if err != nil {
		return 0, err
	}

	expected := p.LastEventID()
	event, err := p.ConfirmDelivery(
		command.Recipient(),
		latest.Location(),
		command.ActorID(),
		h.settings.Clock(),
		h.settings.Transition,
	)
	if err != nil {
		return 0, err
	}

	return appendAndCommit(ctx, uow, repo, ledger, p, event, expected)
}
