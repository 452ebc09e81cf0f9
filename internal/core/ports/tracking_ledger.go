package ports

import (
	"context"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/parcel"
)

// TrackingLedger is the append-only store of tracking events.
// Implementations never update or delete an appended event.
type TrackingLedger interface {
	// Append stores the event and returns the ledger-wide id assigned to it.
	// Ids are strictly increasing in append order.
	Append(ctx context.Context, event *parcel.TrackingEvent) (parcel.EventID, error)

	// History returns every event of the parcel, most recent first.
	// Re-reading yields the same sequence unless new events were appended.
	History(ctx context.Context, parcelID kernel.UUID) ([]*parcel.TrackingEvent, error)

	// Latest returns the event with the greatest id for the parcel.
	// Returns errs.ObjectNotFoundError for a parcel without events.
	Latest(ctx context.Context, parcelID kernel.UUID) (*parcel.TrackingEvent, error)

	// LatestStatus is equivalent to Latest(ctx, parcelID).Status() but reads a single column.
	LatestStatus(ctx context.Context, parcelID kernel.UUID) (parcel.Status, error)
}
