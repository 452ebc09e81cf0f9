package queries

import (
	"errors"
	"strings"

	"tracking/internal/core/domain/model/parcel"
	"tracking/internal/pkg/guard"
)

var ErrListAllParcelsQueryIsNotConstructed = errors.New(
	"ListAllParcelsQuery must be created via NewListAllParcelsQuery constructor",
)

// ListAllParcelsQuery is the unrestricted staff view. An empty stage lists every
// parcel; otherwise only parcels whose latest status equals stage are returned.
type ListAllParcelsQuery struct {
	stage parcel.Status

	guard guard.ConstructorGuard
}

func NewListAllParcelsQuery(stage string) (ListAllParcelsQuery, error) {
	q := ListAllParcelsQuery{guard: guard.NewConstructorGuard()}
	if strings.TrimSpace(stage) == "" {
		return q, nil
	}

	status, err := parcel.ParseStatus(stage)
	if err != nil {
		return ListAllParcelsQuery{}, err
	}
	q.stage = status
	return q, nil
}

func (q ListAllParcelsQuery) Validate() error {
	return q.guard.Validate(ErrListAllParcelsQueryIsNotConstructed)
}

// Stage returns parcel.Unknown when no filter is set.
func (q ListAllParcelsQuery) Stage() parcel.Status {
	return q.stage
}
