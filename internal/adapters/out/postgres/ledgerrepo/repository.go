package ledgerrepo

import (
	"context"
	"errors"
	"fmt"

	"tracking/internal/pkg/pgerr"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/parcel"
	"tracking/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormTrackingLedger implements ports.TrackingLedger using GORM.
// It only ever INSERTs; the table additionally rejects UPDATE and DELETE with a trigger.
type GormTrackingLedger struct {
	db *gorm.DB
}

func NewGormTrackingLedger(db *gorm.DB) *GormTrackingLedger {
	return &GormTrackingLedger{db: db}
}

// Append inserts the event and returns the id drawn from the ledger's bigserial.
func (l *GormTrackingLedger) Append(ctx context.Context, event *parcel.TrackingEvent) (parcel.EventID, error) {
	if err := event.Validate(); err != nil {
		return 0, err
	}
	if event.ID() != 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"event id", fmt.Errorf("event %d was already appended", event.ID()))
	}

	dto := fromDomain(event)
	if err := l.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return 0, pgerr.Translate("append tracking event", err)
	}

	return parcel.EventID(dto.ID), nil
}

// History returns the parcel's events ordered by id, newest first.
func (l *GormTrackingLedger) History(ctx context.Context, parcelID kernel.UUID) ([]*parcel.TrackingEvent, error) {
	if err := parcelID.Validate(); err != nil {
		return nil, err
	}

	var dtos []TrackingEventDTO
	if err := l.db.WithContext(ctx).
		Where("parcel_id = ?", parcelID.Bytes()).
		Order("id DESC").
		Find(&dtos).Error; err != nil {
		return nil, pgerr.Translate("read tracking history", err)
	}

	events := make([]*parcel.TrackingEvent, 0, len(dtos))
	for _, dto := range dtos {
		event, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	return events, nil
}

func (l *GormTrackingLedger) Latest(ctx context.Context, parcelID kernel.UUID) (*parcel.TrackingEvent, error) {
	if err := parcelID.Validate(); err != nil {
		return nil, err
	}

	var dto TrackingEventDTO
	if err := l.db.WithContext(ctx).
		Where("parcel_id = ?", parcelID.Bytes()).
		Order("id DESC").
		Take(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("tracking event", parcelID.String())
		}
		return nil, pgerr.Translate("read latest tracking event", err)
	}

	return toDomain(dto)
}

func (l *GormTrackingLedger) LatestStatus(ctx context.Context, parcelID kernel.UUID) (parcel.Status, error) {
	if err := parcelID.Validate(); err != nil {
		return parcel.Unknown, err
	}

	var dto TrackingEventDTO
	if err := l.db.WithContext(ctx).
		Select("status").
		Where("parcel_id = ?", parcelID.Bytes()).
		Order("id DESC").
		Take(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return parcel.Unknown, errs.NewObjectNotFoundError("tracking event", parcelID.String())
		}
		return parcel.Unknown, pgerr.Translate("read latest status", err)
	}

	status := parcel.Status(dto.Status)
	if err := status.Validate(); err != nil {
		return parcel.Unknown, err
	}
	return status, nil
}
