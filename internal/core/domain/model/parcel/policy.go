package parcel

// TransitionPolicy relaxes the default lifecycle rules. The zero value is the strict policy.
type TransitionPolicy struct {
	// AllowDeliveryFromBooked lets a parcel be confirmed as delivered without ever
	// having been reported In Transit (counter bookings handed over on the spot).
	AllowDeliveryFromBooked bool
}

// StrictPolicy requires every delivered parcel to have been dispatched first.
func StrictPolicy() TransitionPolicy {
	return TransitionPolicy{}
}
