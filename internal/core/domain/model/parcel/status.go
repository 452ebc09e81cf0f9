package parcel

import (
	"fmt"
	"strings"

	"tracking/internal/pkg/errs"
)

// Status is the lifecycle stage of a parcel, as recorded on each tracking event.
//
// State transitions:
//
//	Booked ──> In Transit ──> Delivered
//	               │  ▲
//	               └──┘
//	       (repeated location updates)
//
// Booked is assigned only at creation. Delivered is reached only through delivery
// confirmation and is terminal. The numeric values are persisted and must not change.
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota
	Booked
	InTransit
	Delivered
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Booked:    "Booked",
		InTransit: "In Transit",
		Delivered: "Delivered",
	}
}

// ParseStatus resolves a display name ("In Transit") case-insensitively.
// Surrounding spaces are ignored; Unknown is never returned without an error.
func ParseStatus(s string) (Status, error) {
	normalized := strings.TrimSpace(s)
	if normalized == "" {
		return Unknown, errs.NewValueIsRequiredError("status")
	}

	for status, name := range getStatusStrings() {
		if status != Unknown && strings.EqualFold(name, normalized) {
			return status, nil
		}
	}

	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not one of Booked, In Transit, Delivered", s),
	)
}

// Validate checks that s is one of the persisted lifecycle stages.
func (s Status) Validate() error {
	if s == Booked || s == InTransit || s == Delivered {
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further events may follow s.
func (s Status) IsTerminal() bool {
	return s == Delivered
}

// Dispatch transitions to In Transit. It is the only target reachable through a
// general status update: Booked -> In Transit and In Transit -> In Transit.
func (s Status) Dispatch() (Status, error) {
	if s != Booked && s != InTransit {
		return Unknown, errs.NewInvalidTransitionError(s.String(), InTransit.String())
	}
	return InTransit, nil
}

// Deliver transitions to the terminal Delivered status. Delivery normally requires
// the parcel to be In Transit; policy may also admit parcels that were never dispatched.
func (s Status) Deliver(policy TransitionPolicy) (Status, error) {
	switch {
	case s == InTransit:
		return Delivered, nil
	case s == Booked && policy.AllowDeliveryFromBooked:
		return Delivered, nil
	case s == Booked:
		return Unknown, errs.NewInvalidTransitionErrorWithCause(
			s.String(), Delivered.String(),
			fmt.Errorf("parcel was never dispatched"),
		)
	default:
		return Unknown, errs.NewInvalidTransitionError(s.String(), Delivered.String())
	}
}

// TransitionTo applies a general status update requesting target.
// Booked is creation-only and Delivered requires ConfirmDelivery, so both are rejected here.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}
	if target != InTransit {
		return Unknown, errs.NewInvalidTransitionErrorWithCause(
			s.String(), target.String(),
			fmt.Errorf("%s cannot be recorded as a status update", target),
		)
	}
	return s.Dispatch()
}
