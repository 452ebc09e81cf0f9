// Package ledgerrepo stores tracking events in the append-only tracking_events table.
package ledgerrepo

import (
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/parcel"

	"github.com/google/uuid"
)

// TrackingEventDTO is one row of tracking_events. The composite index on
// (parcel_id, id) serves both history reads and latest-status lookups.
type TrackingEventDTO struct {
	ID               int64     `gorm:"primaryKey;autoIncrement;index:idx_tracking_events_parcel_id_id,priority:2"`
	ParcelID         uuid.UUID `gorm:"type:uuid;not null;index:idx_tracking_events_parcel_id_id,priority:1"`
	Status           int16     `gorm:"type:smallint;not null"`
	Location         string    `gorm:"type:varchar(255);not null"`
	UpdateTime       time.Time `gorm:"type:timestamptz;not null"`
	ActorID          *int64
	RecipientName    *string `gorm:"type:varchar(100)"`
	RecipientContact *string `gorm:"type:varchar(100)"`
}

func (TrackingEventDTO) TableName() string {
	return "tracking_events"
}

func fromDomain(event *parcel.TrackingEvent) TrackingEventDTO {
	dto := TrackingEventDTO{
		ID:         int64(event.ID()),
		ParcelID:   event.ParcelID().Bytes(),
		Status:     int16(event.Status()),
		Location:   event.Location().String(),
		UpdateTime: event.UpdateTime(),
	}

	if actor := event.ActorID(); actor != nil {
		id := int64(*actor)
		dto.ActorID = &id
	}

	if recipient := event.Recipient(); recipient != nil {
		name, contact := recipient.Name(), recipient.Contact()
		dto.RecipientName = &name
		dto.RecipientContact = &contact
	}

	return dto
}

func toDomain(dto TrackingEventDTO) (*parcel.TrackingEvent, error) {
	parcelID, err := kernel.UUIDFromBytes(dto.ParcelID[:])
	if err != nil {
		return nil, err
	}

	location, err := kernel.NewLocation(dto.Location)
	if err != nil {
		return nil, err
	}

	var actor *parcel.StaffID
	if dto.ActorID != nil {
		id := parcel.StaffID(*dto.ActorID)
		actor = &id
	}

	var recipient *parcel.Recipient
	if dto.RecipientName != nil || dto.RecipientContact != nil {
		r, recipientErr := parcel.NewRecipient(deref(dto.RecipientName), deref(dto.RecipientContact))
		if recipientErr != nil {
			return nil, recipientErr
		}
		recipient = &r
	}

	return parcel.RestoreTrackingEvent(
		parcel.EventID(dto.ID),
		parcelID,
		parcel.Status(dto.Status),
		location,
		dto.UpdateTime,
		actor,
		recipient,
	)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
