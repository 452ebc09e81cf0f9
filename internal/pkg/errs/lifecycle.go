package errs

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrConflict          = errors.New("conflicting write")
	ErrExhausted         = errors.New("retry attempts exhausted")
	ErrUnauthorized      = errors.New("actor is not authorized")
	ErrStoreUnavailable  = errors.New("store is unavailable")
)

// InvalidTransitionError reports a status change that the lifecycle does not allow,
// including any change requested on a parcel that already reached a terminal status.
type InvalidTransitionError struct {
	From  string
	To    string
	Cause error
}

func NewInvalidTransitionError(from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func NewInvalidTransitionErrorWithCause(from, to string, cause error) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to, Cause: cause}
}

func (e *InvalidTransitionError) Error() string {
	return withCause(fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To), e.Cause)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// ConflictError reports a write that lost against a concurrent writer or hit a
// uniqueness constraint. It is transient: the same operation may succeed if re-run.
type ConflictError struct {
	Resource string
	Cause    error
}

func NewConflictError(resource string) *ConflictError {
	return &ConflictError{Resource: resource}
}

func NewConflictErrorWithCause(resource string, cause error) *ConflictError {
	return &ConflictError{Resource: resource, Cause: cause}
}

func (e *ConflictError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrConflict, e.Resource), e.Cause)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// ExhaustedError is returned once an operation kept conflicting for every allowed attempt.
type ExhaustedError struct {
	Operation string
	Attempts  int
	Cause     error
}

func NewExhaustedError(operation string, attempts int, cause error) *ExhaustedError {
	return &ExhaustedError{Operation: operation, Attempts: attempts, Cause: cause}
}

func (e *ExhaustedError) Error() string {
	return withCause(fmt.Sprintf("%s: %s after %d attempts", ErrExhausted, e.Operation, e.Attempts), e.Cause)
}

func (e *ExhaustedError) Unwrap() error {
	return ErrExhausted
}

// UnauthorizedError reports an actor that may not perform the operation.
type UnauthorizedError struct {
	Operation string
	ActorID   any
}

func NewUnauthorizedError(operation string, actorID any) *UnauthorizedError {
	return &UnauthorizedError{Operation: operation, ActorID: actorID}
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("%s: actor %v may not %s", ErrUnauthorized, e.ActorID, e.Operation)
}

func (e *UnauthorizedError) Unwrap() error {
	return ErrUnauthorized
}

// StoreUnavailableError reports persistence that could not be reached in time.
// Callers may retry with backoff.
type StoreUnavailableError struct {
	Operation string
	Cause     error
}

func NewStoreUnavailableError(operation string, cause error) *StoreUnavailableError {
	return &StoreUnavailableError{Operation: operation, Cause: cause}
}

func (e *StoreUnavailableError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrStoreUnavailable, e.Operation), e.Cause)
}

func (e *StoreUnavailableError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrStoreUnavailable}
	}
	return []error{ErrStoreUnavailable, e.Cause}
}

// IsValidation reports whether err is caused by malformed or out of range input.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValueIsRequired) ||
		errors.Is(err, ErrValueIsInvalid) ||
		errors.Is(err, ErrValueIsOutOfRange)
}

// IsConflict reports whether err may go away when the operation is re-run.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}
