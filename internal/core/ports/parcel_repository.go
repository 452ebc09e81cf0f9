// Package ports defines the persistence contracts of the tracking core.
// Adapters in internal/adapters/out implement them; the application layer depends
// only on these interfaces.
package ports

import (
	"context"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/parcel"
)

// ParcelRepository persists the Parcel aggregate. Parcels are never deleted.
type ParcelRepository interface {
	// Add inserts a newly booked parcel. A duplicate tracking code is reported
	// as errs.ConflictError so the caller can retry with a fresh code.
	Add(ctx context.Context, aggregate *parcel.Parcel) error

	// GetByTrackingCode reads a parcel without locking it.
	// Returns errs.ObjectNotFoundError when no parcel has the code.
	GetByTrackingCode(ctx context.Context, code kernel.TrackingCode) (*parcel.Parcel, error)

	// LockByTrackingCode reads a parcel and holds a row lock on it until the
	// surrounding transaction ends, serializing transitions on the same parcel.
	// Returns errs.ObjectNotFoundError when no parcel has the code.
	LockByTrackingCode(ctx context.Context, code kernel.TrackingCode) (*parcel.Parcel, error)

	// UpdateStage writes the cached stage and last event id, provided the stored
	// last event id still equals expectedLastEventID. Otherwise another writer got
	// there first and errs.ConflictError is returned.
	//
	// Example:
	//   expected := p.LastEventID()
	//   event, _ := p.RecordStatus(parcel.InTransit, hub, actor, now)
	//   id, _ := ledger.Append(ctx, event)
	//   _ = p.AcknowledgeEvent(id)
	//   err := repo.UpdateStage(ctx, p, expected)
	UpdateStage(ctx context.Context, aggregate *parcel.Parcel, expectedLastEventID parcel.EventID) error
}
