package kernel

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"
)

const (
	// TrackingCodePrefix marks a string as a parcel tracking code.
	TrackingCodePrefix = "T"

	// trackingCodeDigits is the minimum zero-padded width of the sequence part.
	trackingCodeDigits = 4
)

var (
	ErrTrackingCodeIsNotConstructed = errors.New(
		"TrackingCode must be created via NewTrackingCode or ParseTrackingCode")

	trackingCodePattern = regexp.MustCompile(`^T[0-9]{4,}$`)
)

// TrackingCode is the externally visible parcel identifier, e.g. "T0001".
// It is a prefix followed by a sequence number padded to at least four digits;
// codes past T9999 simply grow wider (T10000).
type TrackingCode struct { //nolint:recvcheck //using for validation
	value string
	guard guard.ConstructorGuard
}

// NewTrackingCode formats a sequence value issued by the tracking code sequence.
func NewTrackingCode(sequence int64) (TrackingCode, error) {
	if sequence <= 0 {
		return TrackingCode{}, errs.NewValueIsInvalidErrorWithCause(
			"tracking code sequence",
			fmt.Errorf("%d is not greater than 0", sequence),
		)
	}

	return TrackingCode{
		value: fmt.Sprintf("%s%0*d", TrackingCodePrefix, trackingCodeDigits, sequence),
		guard: guard.NewConstructorGuard(),
	}, nil
}

// ParseTrackingCode accepts user input, tolerating surrounding spaces and a lower-case prefix.
func ParseTrackingCode(s string) (TrackingCode, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	if normalized == "" {
		return TrackingCode{}, errs.NewValueIsRequiredError("tracking code")
	}
	if !trackingCodePattern.MatchString(normalized) {
		return TrackingCode{}, errs.NewValueIsInvalidErrorWithCause(
			"tracking code",
			fmt.Errorf("%q does not match %s", s, trackingCodePattern),
		)
	}

	return TrackingCode{value: normalized, guard: guard.NewConstructorGuard()}, nil
}

func (c TrackingCode) String() string {
	return c.value
}

func (c TrackingCode) IsEqual(other TrackingCode) bool {
	return c.value == other.value
}

func (c TrackingCode) Validate() error {
	return c.guard.Validate(ErrTrackingCodeIsNotConstructed)
}
