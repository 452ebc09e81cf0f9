package parcel

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"
)

const recipientFieldMaxLength = 100

var ErrRecipientIsNotConstructed = errors.New("Recipient must be created via NewRecipient")

// Recipient is the person who signed for a delivered parcel.
type Recipient struct { //nolint:recvcheck //using for validation
	name    string
	contact string
	guard   guard.ConstructorGuard
}

func NewRecipient(name, contact string) (Recipient, error) {
	r := Recipient{guard: guard.NewConstructorGuard()}
	if err := errors.Join(
		r.setName(name),
		r.setContact(contact),
	); err != nil {
		return Recipient{}, err
	}
	return r, nil
}

func (r Recipient) Name() string {
	return r.name
}

func (r Recipient) Contact() string {
	return r.contact
}

func (r Recipient) Validate() error {
	return r.guard.Validate(ErrRecipientIsNotConstructed)
}

func (r *Recipient) setName(name string) error {
	v, err := boundedText("recipient name", name)
	if err != nil {
		return err
	}
	r.name = v
	return nil
}

func (r *Recipient) setContact(contact string) error {
	v, err := boundedText("recipient contact", contact)
	if err != nil {
		return err
	}
	r.contact = v
	return nil
}

func boundedText(param, s string) (string, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", errs.NewValueIsRequiredError(param)
	}
	if n := utf8.RuneCountInString(trimmed); n > recipientFieldMaxLength {
		return "", errs.NewValueIsOutOfRangeErrorWithCause(
			param+" length", n, 1, recipientFieldMaxLength,
			fmt.Errorf("%s is %d characters long", param, n),
		)
	}
	return trimmed, nil
}
