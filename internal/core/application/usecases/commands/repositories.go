// Package commands contains the lifecycle operations that change parcel state.
// Every command follows the same pattern: a validating constructor, then a handler
// that runs one unit-of-work transaction per attempt and retries transient conflicts.
package commands

import (
	"context"

	"tracking/internal/core/ports"
)

// Unit of Work interfaces narrowed to what each handler needs.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// ParcelRepoFactory provides the parcel repository bound to the transaction.
	ParcelRepoFactory interface {
		ParcelRepository() ports.ParcelRepository
	}

	// LedgerFactory provides the tracking ledger bound to the transaction.
	LedgerFactory interface {
		TrackingLedger() ports.TrackingLedger
	}

	// DirectoryFactory provides the identifier sequence and branch directory.
	DirectoryFactory interface {
		TrackingCodeSequence() ports.TrackingCodeSequence
		BranchDirectory() ports.BranchDirectory
	}

	// ParcelUoW is used by transitions on an existing parcel.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   p, err := uow.ParcelRepository().LockByTrackingCode(ctx, code)
	//   id, err := uow.TrackingLedger().Append(ctx, event)
	//   // ... update cached stage
	//
	//   err = uow.Commit(ctx)
	ParcelUoW interface {
		TxManager
		ParcelRepoFactory
		LedgerFactory
	}

	// ParcelUoWFactory creates a fresh ParcelUoW for every attempt.
	ParcelUoWFactory interface {
		Create() ParcelUoW
	}

	// BookingUoW additionally resolves branches and draws tracking codes.
	BookingUoW interface {
		TxManager
		ParcelRepoFactory
		LedgerFactory
		DirectoryFactory
	}

	// BookingUoWFactory creates a fresh BookingUoW for every attempt.
	BookingUoWFactory interface {
		Create() BookingUoW
	}
)
