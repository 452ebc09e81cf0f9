package commands

import (
	"errors"

	"tracking/internal/core/domain/model/parcel"
	"tracking/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateParcelCommandIsNotConstructed = errors.New(
	"CreateParcelCommand must be created via NewCreateParcelCommand constructor",
)

// CreateParcelCommand books a new shipment for an authenticated customer.
//
// Example:
//
//	cmd, err := NewCreateParcelCommand(customerID, 1, decimal.RequireFromString("2.5"), "Express")
//	if err != nil {
//	    return fmt.Errorf("invalid booking: %w", err)
//	}
//	code, err := handler.Handle(ctx, cmd)
type CreateParcelCommand struct { //nolint:recvcheck //using for validation
	customerID  parcel.CustomerID
	branchID    parcel.BranchID
	weight      parcel.Weight
	serviceType parcel.ServiceType

	guard guard.ConstructorGuard
}

// NewCreateParcelCommand validates every booking attribute and reports all failures at once.
// Whether the branch exists is checked by the handler.
func NewCreateParcelCommand(
	customerID int64,
	branchID int64,
	weightKg decimal.Decimal,
	serviceType string,
) (CreateParcelCommand, error) {
	cmd := CreateParcelCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setBranchID(branchID),
		cmd.setWeight(weightKg),
		cmd.setServiceType(serviceType),
	); err != nil {
		return CreateParcelCommand{}, err
	}

	return cmd, nil
}

func (c CreateParcelCommand) Validate() error {
	return c.guard.Validate(ErrCreateParcelCommandIsNotConstructed)
}

func (c CreateParcelCommand) CustomerID() parcel.CustomerID {
	return c.customerID
}

func (c CreateParcelCommand) BranchID() parcel.BranchID {
	return c.branchID
}

func (c CreateParcelCommand) Weight() parcel.Weight {
	return c.weight
}

func (c CreateParcelCommand) ServiceType() parcel.ServiceType {
	return c.serviceType
}

func (c *CreateParcelCommand) setCustomerID(id int64) error {
	customerID := parcel.CustomerID(id)
	if err := customerID.Validate(); err != nil {
		return err
	}
	c.customerID = customerID
	return nil
}

func (c *CreateParcelCommand) setBranchID(id int64) error {
	branchID := parcel.BranchID(id)
	if err := branchID.Validate(); err != nil {
		return err
	}
	c.branchID = branchID
	return nil
}

func (c *CreateParcelCommand) setWeight(kg decimal.Decimal) error {
	weight, err := parcel.NewWeight(kg)
	if err != nil {
		return err
	}
	c.weight = weight
	return nil
}

func (c *CreateParcelCommand) setServiceType(s string) error {
	serviceType, err := parcel.ParseServiceType(s)
	if err != nil {
		return err
	}
	c.serviceType = serviceType
	return nil
}
