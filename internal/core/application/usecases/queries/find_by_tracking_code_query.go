package queries

import (
	"errors"
	"strings"

	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"
)

var ErrFindByTrackingCodeQueryIsNotConstructed = errors.New(
	"FindByTrackingCodeQuery must be created via NewFindByTrackingCodeQuery constructor",
)

// FindByTrackingCodeQuery backs the public tracking page.
//
// Example:
//
//	query, err := NewFindByTrackingCodeQuery("T0001")
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, query)
//	fmt.Println(result.Parcel.Status, len(result.History))
type FindByTrackingCodeQuery struct {
	trackingCode string

	guard guard.ConstructorGuard
}

// NewFindByTrackingCodeQuery only requires a non-blank code. A code in the wrong
// format is reported by the handler as not found.
func NewFindByTrackingCodeQuery(trackingCode string) (FindByTrackingCodeQuery, error) {
	trimmed := strings.TrimSpace(trackingCode)
	if trimmed == "" {
		return FindByTrackingCodeQuery{}, errs.NewValueIsRequiredError("tracking code")
	}
	return FindByTrackingCodeQuery{trackingCode: trimmed, guard: guard.NewConstructorGuard()}, nil
}

func (q FindByTrackingCodeQuery) Validate() error {
	return q.guard.Validate(ErrFindByTrackingCodeQueryIsNotConstructed)
}

func (q FindByTrackingCodeQuery) TrackingCode() string {
	return q.trackingCode
}

// FindByTrackingCodeQueryResponse holds the parcel and its history, newest event first.
type FindByTrackingCodeQueryResponse struct {
	Parcel  ParcelSummary
	History []TrackingEventView
}
