package parcel

import (
	"fmt"
	"strings"

	"tracking/internal/pkg/errs"
)

// ServiceType is the delivery speed booked by the customer.
type ServiceType string

const (
	Standard  ServiceType = "Standard"
	Express   ServiceType = "Express"
	Overnight ServiceType = "Overnight"
)

// ServiceTypes lists the bookable service types in display order.
func ServiceTypes() []ServiceType {
	return []ServiceType{Standard, Express, Overnight}
}

// ParseServiceType resolves a service type name case-insensitively.
func ParseServiceType(s string) (ServiceType, error) {
	normalized := strings.TrimSpace(s)
	if normalized == "" {
		return "", errs.NewValueIsRequiredError("service type")
	}
	for _, st := range ServiceTypes() {
		if strings.EqualFold(string(st), normalized) {
			return st, nil
		}
	}
	return "", errs.NewValueIsInvalidErrorWithCause(
		"service type",
		fmt.Errorf("%q is not one of Standard, Express, Overnight", s),
	)
}

// Validate accepts only the canonical spelling produced by ParseServiceType.
func (st ServiceType) Validate() error {
	for _, known := range ServiceTypes() {
		if st == known {
			return nil
		}
	}
	return errs.NewValueIsInvalidErrorWithCause("service type", fmt.Errorf("%q is not a known service type", string(st)))
}

func (st ServiceType) String() string {
	return string(st)
}
