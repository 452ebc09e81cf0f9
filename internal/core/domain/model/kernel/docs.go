// Package kernel holds the value objects shared by the tracking domain:
//   - UUID: internal parcel identifier
//   - TrackingCode: the public, recognisable parcel code (T0001)
//   - Location: free-text place description attached to tracking events
//
// All of them are immutable and invalid as zero values.
package kernel
