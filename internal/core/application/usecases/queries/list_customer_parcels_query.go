package queries

import (
	"errors"

	"tracking/internal/core/domain/model/parcel"
	"tracking/internal/pkg/guard"
)

var ErrListCustomerParcelsQueryIsNotConstructed = errors.New(
	"ListCustomerParcelsQuery must be created via NewListCustomerParcelsQuery constructor",
)

// ListCustomerParcelsQuery lists the parcels booked by one customer.
type ListCustomerParcelsQuery struct {
	customerID parcel.CustomerID

	guard guard.ConstructorGuard
}

func NewListCustomerParcelsQuery(customerID int64) (ListCustomerParcelsQuery, error) {
	id := parcel.CustomerID(customerID)
	if err := id.Validate(); err != nil {
		return ListCustomerParcelsQuery{}, err
	}
	return ListCustomerParcelsQuery{customerID: id, guard: guard.NewConstructorGuard()}, nil
}

func (q ListCustomerParcelsQuery) Validate() error {
	return q.guard.Validate(ErrListCustomerParcelsQueryIsNotConstructed)
}

func (q ListCustomerParcelsQuery) CustomerID() parcel.CustomerID {
	return q.customerID
}
