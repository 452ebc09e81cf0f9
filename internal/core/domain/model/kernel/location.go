package kernel

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"
)

// LocationMaxLength bounds the free-text description stored with a tracking event.
const LocationMaxLength = 255

var ErrLocationIsNotConstructed = errors.New("Location must be created via NewLocation")

// Location is a free-text place description recorded by staff ("Hub A", "Out for delivery, Pune").
type Location struct { //nolint:recvcheck //using for validation
	description string
	guard       guard.ConstructorGuard
}

// NewLocation trims the description and requires 1..LocationMaxLength characters.
func NewLocation(description string) (Location, error) {
	trimmed := strings.TrimSpace(description)
	if trimmed == "" {
		return Location{}, errs.NewValueIsRequiredError("location")
	}
	if n := utf8.RuneCountInString(trimmed); n > LocationMaxLength {
		return Location{}, errs.NewValueIsOutOfRangeErrorWithCause(
			"location length", n, 1, LocationMaxLength,
			fmt.Errorf("location is %d characters long", n),
		)
	}

	return Location{description: trimmed, guard: guard.NewConstructorGuard()}, nil
}

func (l Location) String() string {
	return l.description
}

func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}
