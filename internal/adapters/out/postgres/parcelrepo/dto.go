// Package parcelrepo persists the Parcel aggregate in the parcels table.
package parcelrepo

import (
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/parcel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ParcelDTO is one row of the parcels table. Stage and LastEventID cache the newest
// tracking event and are only written together with a ledger append.
type ParcelDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TrackingCode string          `gorm:"type:varchar(32);not null;uniqueIndex"`
	CustomerID   int64           `gorm:"not null;index"`
	BranchID     int64           `gorm:"not null"`
	Weight       decimal.Decimal `gorm:"type:numeric(10,3);not null"`
	ServiceType  string          `gorm:"type:varchar(50);not null"`
	BookingDate  time.Time       `gorm:"type:timestamptz;not null;index"`
	Stage        int16           `gorm:"type:smallint;not null;index"`
	LastEventID  int64           `gorm:"not null;default:0"`
}

func (ParcelDTO) TableName() string {
	return "parcels"
}

func fromDomain(p *parcel.Parcel) ParcelDTO {
	return ParcelDTO{
		ID:           p.ID().Bytes(),
		TrackingCode: p.TrackingCode().String(),
		CustomerID:   int64(p.CustomerID()),
		BranchID:     int64(p.BranchID()),
		Weight:       p.Weight().Kilograms(),
		ServiceType:  p.ServiceType().String(),
		BookingDate:  p.BookedAt(),
		Stage:        int16(p.Stage()),
		LastEventID:  int64(p.LastEventID()),
	}
}

func toDomain(dto ParcelDTO) (*parcel.Parcel, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	code, err := kernel.ParseTrackingCode(dto.TrackingCode)
	if err != nil {
		return nil, err
	}

	weight, err := parcel.NewWeight(dto.Weight)
	if err != nil {
		return nil, err
	}

	return parcel.RestoreParcel(
		id,
		code,
		parcel.CustomerID(dto.CustomerID),
		parcel.BranchID(dto.BranchID),
		weight,
		parcel.ServiceType(dto.ServiceType),
		dto.BookingDate,
		parcel.Status(dto.Stage),
		parcel.EventID(dto.LastEventID),
	)
}
