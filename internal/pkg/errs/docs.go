// Package errs provides the error types shared by the tracking service.
//
// Every type follows the same shape: a sentinel variable (ErrValueIsRequired,
// ErrInvalidTransition, ...), a struct carrying the details and an optional Cause,
// constructors with and without a cause, Error() and Unwrap(). Callers classify
// with errors.Is against the sentinel and read details with errors.As.
//
// The lifecycle taxonomy maps onto these types as follows:
//   - validation: ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError
//   - not found: ObjectNotFoundError
//   - illegal transition or terminal parcel: InvalidTransitionError
//   - transient write conflict, retried internally: ConflictError
//   - conflicts that outlived the retry budget: ExhaustedError
//   - actor not permitted: UnauthorizedError
//   - persistence unreachable or timed out: StoreUnavailableError
package errs
