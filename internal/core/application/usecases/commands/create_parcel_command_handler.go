package commands

import (
	"context"
	"errors"
	"fmt"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/parcel"
	"tracking/internal/pkg/errs"
)

// CreateParcelCommandHandler books parcels. The parcel row and its Booked event are
// written in one transaction; a tracking code collision rolls both back and the
// booking is retried with a freshly drawn code.
type CreateParcelCommandHandler struct {
	uowFactory BookingUoWFactory
	settings   HandlerSettings
}

func NewCreateParcelCommandHandler(uowFactory BookingUoWFactory, settings HandlerSettings) CreateParcelCommandHandler {
	return CreateParcelCommandHandler{
		uowFactory: uowFactory,
		settings:   settings.withDefaults("create-parcel-handler"),
	}
}

// Handle returns the tracking code of the booked parcel.
//
// Errors: validation errors for bad input or an unknown or inactive branch,
// errs.ExhaustedError when every attempt collided, errs.StoreUnavailableError on timeouts.
func (h CreateParcelCommandHandler) Handle(ctx context.Context, command CreateParcelCommand) (kernel.TrackingCode, error) {
	if err := command.Validate(); err != nil {
		return kernel.TrackingCode{}, err
	}

	var booked *parcel.Parcel
	err := h.settings.retrier().run(ctx, "create parcel", func(ctx context.Context) error {
		p, err := h.book(ctx, command)
		if err != nil {
			return err
		}
		booked = p
		return nil
	})
	if err != nil {
		h.settings.Observer.OperationFailed("create parcel", err)
		return kernel.TrackingCode{}, err
	}

	h.settings.Observer.ParcelBooked(booked.ServiceType())
	h.settings.Logger.WithField("tracking_code", booked.TrackingCode().String()).Info("Parcel booked")
	return booked.TrackingCode(), nil
}

func (h CreateParcelCommandHandler) book(ctx context.Context, command CreateParcelCommand) (*parcel.Parcel, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	branch, err := uow.BranchDirectory().Get(ctx, command.BranchID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, errs.NewValueIsInvalidErrorWithCause("branch id", err)
	}
	if err != nil {
		return nil, err
	}
	if !branch.Active {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"branch id", fmt.Errorf("branch %d (%s) is not active", branch.ID, branch.Name))
	}

	origin, err := kernel.NewLocation(branch.Name)
	if err != nil {
		return nil, err
	}

	sequence, err := uow.TrackingCodeSequence().Next(ctx)
	if err != nil {
		return nil, err
	}

	code, err := kernel.NewTrackingCode(sequence)
	if err != nil {
		return nil, err
	}

	p, booking, err := parcel.Book(
		kernel.NewUUID(),
		code,
		command.CustomerID(),
		command.BranchID(),
		command.Weight(),
		command.ServiceType(),
		origin,
		h.settings.Clock(),
	)
	if err != nil {
		return nil, err
	}

	repo := uow.ParcelRepository()
	if err = repo.Add(ctx, p); err != nil {
		return nil, err
	}

	eventID, err := uow.TrackingLedger().Append(ctx, booking)
	if err != nil {
		return nil, err
	}

	if err = p.AcknowledgeEvent(eventID); err != nil {
		return nil, err
	}

	if err = repo.UpdateStage(ctx, p, 0); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return p, nil
}
