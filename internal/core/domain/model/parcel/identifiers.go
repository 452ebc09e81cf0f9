package parcel

import (
	"fmt"

	"tracking/internal/pkg/errs"
)

// CustomerID references the owner of a parcel in the external customer directory.
type CustomerID int64

func (id CustomerID) Validate() error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("customer id", fmt.Errorf("%d is not greater than 0", id))
	}
	return nil
}

// BranchID references the originating branch in the external branch directory.
type BranchID int64

func (id BranchID) Validate() error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("branch id", fmt.Errorf("%d is not greater than 0", id))
	}
	return nil
}

// StaffID identifies the staff member who recorded a tracking event.
type StaffID int64

// Validate rejects non-positive identifiers with an UnauthorizedError: staff-only
// operations must never run without an identified actor.
func (id StaffID) Validate(operation string) error {
	if id <= 0 {
		return errs.NewUnauthorizedError(operation, int64(id))
	}
	return nil
}

// EventID is the ledger-wide, monotonically increasing tracking event key.
// Zero means the event has not been appended yet.
type EventID int64
