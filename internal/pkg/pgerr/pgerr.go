// Package pgerr translates driver and Postgres errors into the error kinds of the
// tracking core, so use cases can tell retryable contention from an unreachable store.
package pgerr

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"

	"tracking/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres SQLSTATE codes the core reacts to.
const (
	UniqueViolation      = "23505"
	SerializationFailure = "40001"
	DeadlockDetected     = "40P01"
	LockNotAvailable     = "55P03"
	QueryCanceled        = "57014"
	AdminShutdown        = "57P01"
	CannotConnectNow     = "57P03"
	TooManyConnections   = "53300"

	connectionExceptionClass = "08"
)

// Translate maps err to errs.ConflictError or errs.StoreUnavailableError when it is one
// of the transient failures below, and returns every other error unchanged.
//
//   - unique violation, serialization failure, deadlock, lock timeout: ConflictError
//   - deadline exceeded, statement timeout, refused or dropped connections: StoreUnavailableError
func Translate(operation string, err error) error {
	if err == nil {
		return nil
	}

	if errs.IsConflict(err) || errors.Is(err, errs.ErrStoreUnavailable) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == UniqueViolation,
			pgErr.Code == SerializationFailure,
			pgErr.Code == DeadlockDetected,
			pgErr.Code == LockNotAvailable:
			return errs.NewConflictErrorWithCause(operation, err)
		case pgErr.Code == QueryCanceled,
			pgErr.Code == AdminShutdown,
			pgErr.Code == CannotConnectNow,
			pgErr.Code == TooManyConnections,
			len(pgErr.Code) == 5 && pgErr.Code[:2] == connectionExceptionClass:
			return errs.NewStoreUnavailableError(operation, err)
		}
		return err
	}

	if IsUnavailable(err) {
		return errs.NewStoreUnavailableError(operation, err)
	}

	return err
}

// IsUniqueViolation reports whether err is a Postgres unique constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == UniqueViolation
	}
	return false
}

// IsUnavailable reports network level failures and timeouts that never reached Postgres.
func IsUnavailable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, driver.ErrBadConn) || pgconn.Timeout(err) {
		return true
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
