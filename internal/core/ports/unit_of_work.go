package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork for every command attempt.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Every repository it hands out
// works inside the transaction started by Begin.
//
// Handlers defer Rollback unconditionally and ignore its error after a successful Commit.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	ParcelRepository() ParcelRepository
	TrackingLedger() TrackingLedger
	TrackingCodeSequence() TrackingCodeSequence
	BranchDirectory() BranchDirectory
}
