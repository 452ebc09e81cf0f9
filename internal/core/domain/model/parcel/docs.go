// Package parcel provides the Parcel aggregate and its tracking ledger entries.
//
// The package includes:
//   - Parcel: aggregate root holding the immutable booking attributes and the cached
//     lifecycle stage of a shipment
//   - TrackingEvent: one immutable record of a status change, owned by exactly one parcel
//   - Status: the lifecycle state machine Booked -> In Transit (repeatable) -> Delivered
//   - TransitionPolicy: operator-tunable relaxations of the state machine
//
// Key business rules:
//   - A parcel is always booked together with its first (Booked) tracking event
//   - The latest status of a parcel is the status of its newest tracking event
//   - Delivered is terminal; no event may follow it
//   - Past tracking events are never modified
package parcel
