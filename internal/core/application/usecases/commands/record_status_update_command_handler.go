package commands

import (
	"context"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/parcel"
	"tracking/internal/core/ports"
	"tracking/internal/pkg/errs"

	log "github.com/sirupsen/logrus"
)

// RecordStatusUpdateCommandHandler applies general status updates. The parcel row is
// locked for the whole attempt, so the transition check and the ledger append are
// atomic with respect to other writers on the same parcel.
type RecordStatusUpdateCommandHandler struct {
	uowFactory ParcelUoWFactory
	settings   HandlerSettings
}

func NewRecordStatusUpdateCommandHandler(
	uowFactory ParcelUoWFactory,
	settings HandlerSettings,
) RecordStatusUpdateCommandHandler {
	return RecordStatusUpdateCommandHandler{
		uowFactory: uowFactory,
		settings:   settings.withDefaults("record-status-update-handler"),
	}
}

// Handle returns the id of the appended tracking event.
//
// Errors: errs.ObjectNotFoundError for an unknown code, errs.InvalidTransitionError
// when the parcel is delivered or the status cannot be recorded this way.
func (h RecordStatusUpdateCommandHandler) Handle(
	ctx context.Context,
	command RecordStatusUpdateCommand,
) (parcel.EventID, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	code, err := kernel.ParseTrackingCode(command.TrackingCode())
	if err != nil {
		return 0, errs.NewObjectNotFoundErrorWithCause("parcel", command.TrackingCode(), err)
	}

	var eventID parcel.EventID
	err = h.settings.retrier().run(ctx, "record status update", func(ctx context.Context) error {
		id, err := h.record(ctx, code, command)
		if err != nil {
			return err
		}
		eventID = id
		return nil
	})
	if err != nil {
		h.settings.Observer.OperationFailed("record status update", err)
		return 0, err
	}

	h.settings.Observer.StatusRecorded(command.Status())
	h.settings.Logger.WithFields(log.Fields{
		"tracking_code": code.String(),
		"status":        command.Status().String(),
		"event_id":      int64(eventID),
	}).Info("Status update recorded")
	return eventID, nil
}

func (h RecordStatusUpdateCommandHandler) record(
	ctx context.Context,
	code kernel.TrackingCode,
	command RecordStatusUpdateCommand,
) (parcel.EventID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ParcelRepository()
	p, err := repo.LockByTrackingCode(ctx, code)
	if err != nil {
		return 0, err
	}

	expected := p.LastEventID()
	event, err := p.RecordStatus(command.Status(), command.Location(), command.ActorID(), h.settings.Clock())
	if err != nil {
		return 0, err
	}

	return appendAndCommit(ctx, uow, repo, uow.TrackingLedger(), p, event, expected)
}

// appendAndCommit appends event, moves the cached stage from expected to the new
// event id and commits. Shared by all transitions on an existing parcel.
func appendAndCommit(
	ctx context.Context,
	tx TxManager,
	repo ports.ParcelRepository,
	ledger ports.TrackingLedger,
	p *parcel.Parcel,
	event *parcel.TrackingEvent,
	expected parcel.EventID,
) (parcel.EventID, error) {
	eventID, err := ledger.Append(ctx, event)
	if err != nil {
		return 0, err
	}

	if err = p.AcknowledgeEvent(eventID); err != nil {
		return 0, err
	}

	if err = repo.UpdateStage(ctx, p, expected); err != nil {
		return 0, err
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, err
	}

	return eventID, nil
}
