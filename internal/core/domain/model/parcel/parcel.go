package parcel

import (
	"errors"
	"fmt"
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/errs"
)

var ErrParcelIsNotConstructed = errors.New("Parcel must be created via Book or RestoreParcel")

// Parcel is the aggregate root of a booked shipment.
//
// Booking attributes are immutable. The stage and lastEventID fields cache the newest
// tracking event; they change only when a new event is recorded and must be persisted
// in the same transaction as the ledger append. lastEventID doubles as the optimistic
// concurrency token for the cached stage.
type Parcel struct {
	id           kernel.UUID
	trackingCode kernel.TrackingCode
	customerID   CustomerID
	branchID     BranchID
	weight       Weight
	serviceType  ServiceType
	bookedAt     time.Time

	stage       Status
	lastEventID EventID

	isConstructed bool
}

// Book creates a parcel together with its Booked tracking event.
//
// origin is recorded as the booking event location (the originating branch).
// The event must be appended to the ledger in the same transaction as the parcel
// is stored; AcknowledgeEvent then records the id the ledger assigned.
//
// Example:
//
//	weight, _ := parcel.WeightFromFloat(2.5)
//	origin, _ := kernel.NewLocation("Central Branch")
//	p, booked, err := parcel.Book(kernel.NewUUID(), code, 1, 1, weight, parcel.Express, origin, now)
func Book(
	id kernel.UUID,
	trackingCode kernel.TrackingCode,
	customerID CustomerID,
	branchID BranchID,
	weight Weight,
	serviceType ServiceType,
	origin kernel.Location,
	bookedAt time.Time,
) (*Parcel, *TrackingEvent, error) {
	p := &Parcel{
		stage:         Booked,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setTrackingCode(trackingCode),
		p.setCustomerID(customerID),
		p.setBranchID(branchID),
		p.setWeight(weight),
		p.setServiceType(serviceType),
		p.setBookedAt(bookedAt),
	); err != nil {
		return nil, nil, err
	}

	event, err := newTrackingEvent(p.id, Booked, origin, p.bookedAt, nil, nil)
	if err != nil {
		return nil, nil, err
	}

	return p, event, nil
}

// RestoreParcel rebuilds a persisted parcel, including its cached stage.
func RestoreParcel(
	id kernel.UUID,
	trackingCode kernel.TrackingCode,
	customerID CustomerID,
	branchID BranchID,
	weight Weight,
	serviceType ServiceType,
	bookedAt time.Time,
	stage Status,
	lastEventID EventID,
) (*Parcel, error) {
	p := &Parcel{isConstructed: true}

	if err := errors.Join(
		p.setID(id),
		p.setTrackingCode(trackingCode),
		p.setCustomerID(customerID),
		p.setBranchID(branchID),
		p.setWeight(weight),
		p.setServiceType(serviceType),
		p.setBookedAt(bookedAt),
		stage.Validate(),
	); err != nil {
		return nil, err
	}
	if lastEventID < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"last event id", fmt.Errorf("%d is negative", lastEventID))
	}

	p.stage = stage
	p.lastEventID = lastEventID
	return p, nil
}

func (p *Parcel) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrParcelIsNotConstructed
	}
	return nil
}

// IsEqual compares parcels by identity.
func (p *Parcel) IsEqual(other *Parcel) bool {
	return other != nil && p.id.IsEqual(other.id)
}

func (p *Parcel) ID() kernel.UUID {
	return p.id
}

func (p *Parcel) TrackingCode() kernel.TrackingCode {
	return p.trackingCode
}

func (p *Parcel) CustomerID() CustomerID {
	return p.customerID
}

func (p *Parcel) BranchID() BranchID {
	return p.branchID
}

func (p *Parcel) Weight() Weight {
	return p.weight
}

func (p *Parcel) ServiceType() ServiceType {
	return p.serviceType
}

func (p *Parcel) BookedAt() time.Time {
	return p.bookedAt
}

// Stage returns the status of the newest recorded tracking event.
func (p *Parcel) Stage() Status {
	return p.stage
}

// LastEventID returns the id of the newest acknowledged tracking event, or 0 right after Book.
func (p *Parcel) LastEventID() EventID {
	return p.lastEventID
}

// RecordStatus produces the tracking event for a general status update.
// Only In Transit may be recorded this way, and never after delivery.
func (p *Parcel) RecordStatus(
	status Status,
	location kernel.Location,
	actorID StaffID,
	at time.Time,
) (*TrackingEvent, error) {
	if err := actorID.Validate("record status update"); err != nil {
		return nil, err
	}

	next, err := p.stage.TransitionTo(status)
	if err != nil {
		return nil, err
	}

	event, err := newTrackingEvent(p.id, next, location, at, &actorID, nil)
	if err != nil {
		return nil, err
	}

	p.stage = next
	return event, nil
}

// ConfirmDelivery produces the terminal Delivered event. No event may follow it.
func (p *Parcel) ConfirmDelivery(
	recipient Recipient,
	location kernel.Location,
	actorID StaffID,
	at time.Time,
	policy TransitionPolicy,
) (*TrackingEvent, error) {
	if err := actorID.Validate("confirm delivery"); err != nil {
		return nil, err
	}

	next, err := p.stage.Deliver(policy)
	if err != nil {
		return nil, err
	}

	if err = recipient.Validate(); err != nil {
		return nil, err
	}

	event, err := newTrackingEvent(p.id, next, location, at, &actorID, &recipient)
	if err != nil {
		return nil, err
	}

	p.stage = next
	return event, nil
}

// AcknowledgeEvent records the id the ledger assigned to the newest event.
// Ledger ids only grow, so an id not greater than the current one is rejected.
func (p *Parcel) AcknowledgeEvent(id EventID) error {
	if id <= p.lastEventID {
		return errs.NewValueIsInvalidErrorWithCause(
			"event id",
			fmt.Errorf("%d is not greater than last event id %d", id, p.lastEventID),
		)
	}
	p.lastEventID = id
	return nil
}

func (p *Parcel) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Parcel) setTrackingCode(code kernel.TrackingCode) error {
	if err := code.Validate(); err != nil {
		return err
	}
	p.trackingCode = code
	return nil
}

func (p *Parcel) setCustomerID(id CustomerID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.customerID = id
	return nil
}

func (p *Parcel) setBranchID(id BranchID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.branchID = id
	return nil
}

func (p *Parcel) setWeight(weight Weight) error {
	if err := weight.Validate(); err != nil {
		return err
	}
	p.weight = weight
	return nil
}

func (p *Parcel) setServiceType(st ServiceType) error {
	if err := st.Validate(); err != nil {
		return err
	}
	p.serviceType = st
	return nil
}

func (p *Parcel) setBookedAt(at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("booking date")
	}
	p.bookedAt = at.UTC()
	return nil
}
