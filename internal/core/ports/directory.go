package ports

import (
	"context"

	"tracking/internal/core/domain/model/parcel"
)

// TrackingCodeSequence issues the numbers tracking codes are formatted from.
// A number is never issued twice, even if the transaction that drew it rolls back.
type TrackingCodeSequence interface {
	Next(ctx context.Context) (int64, error)
}

// Branch is the read-only view of a courier branch.
type Branch struct {
	ID     parcel.BranchID
	Name   string
	Active bool
}

// BranchDirectory resolves branches maintained outside the tracking core.
type BranchDirectory interface {
	// Get returns errs.ObjectNotFoundError for an unknown branch.
	Get(ctx context.Context, id parcel.BranchID) (Branch, error)
}
