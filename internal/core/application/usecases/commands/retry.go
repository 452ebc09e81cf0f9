package commands

import (
	"context"
	"errors"
	"time"

	"tracking/internal/pkg/errs"

	log "github.com/sirupsen/logrus"
)

// RetryPolicy bounds how often a handler re-runs an attempt that lost against a
// concurrent writer, and how long a single attempt may hold the store.
type RetryPolicy struct {
	MaxAttempts      int
	InitialDelay     time.Duration
	MaxDelay         time.Duration
	BackoffFactor    float64
	OperationTimeout time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:      5,
		InitialDelay:     20 * time.Millisecond,
		MaxDelay:         time.Second,
		BackoffFactor:    2.0,
		OperationTimeout: 5 * time.Second,
	}
}

func (p RetryPolicy) withDefaults() RetryPolicy {
	def := DefaultRetryPolicy()
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = def.MaxAttempts
	}
	if p.InitialDelay < 0 {
		p.InitialDelay = 0
	}
	if p.MaxDelay <= 0 {
		p.MaxDelay = def.MaxDelay
	}
	if p.BackoffFactor < 1 {
		p.BackoffFactor = def.BackoffFactor
	}
	if p.OperationTimeout <= 0 {
		p.OperationTimeout = def.OperationTimeout
	}
	return p
}

type retrier struct {
	policy   RetryPolicy
	logger   *log.Entry
	observer LifecycleObserver
}

// run executes fn until it succeeds, fails with a non-conflict error, or the policy
// runs out of attempts. Each attempt gets its own OperationTimeout; an attempt that
// hits it is reported as errs.StoreUnavailableError.
func (r retrier) run(ctx context.Context, operation string, fn func(ctx context.Context) error) error {
	var lastErr error
	delay := r.policy.InitialDelay

	for attempt := 1; attempt <= r.policy.MaxAttempts; attempt++ {
		err := r.attempt(ctx, operation, fn)
		if err == nil {
			if attempt > 1 {
				r.logger.WithFields(log.Fields{
					"operation": operation,
					"attempt":   attempt,
				}).Info("Operation succeeded after retry")
			}
			return nil
		}

		if !errs.IsConflict(err) {
			return err
		}

		lastErr = err
		r.observer.AttemptRetried(operation)
		if attempt == r.policy.MaxAttempts {
			break
		}

		r.logger.WithFields(log.Fields{
			"operation": operation,
			"attempt":   attempt,
			"delay":     delay,
			"error":     err,
		}).Warn("Operation conflicted, retrying")

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return contextError(operation, ctx.Err())
		case <-timer.C:
		}

		delay = time.Duration(float64(delay) * r.policy.BackoffFactor)
		if delay > r.policy.MaxDelay {
			delay = r.policy.MaxDelay
		}
	}

	r.logger.WithFields(log.Fields{
		"operation":    operation,
		"max_attempts": r.policy.MaxAttempts,
		"error":        lastErr,
	}).Error("Operation failed after all retry attempts")

	return errs.NewExhaustedError(operation, r.policy.MaxAttempts, lastErr)
}

func (r retrier) attempt(ctx context.Context, operation string, fn func(ctx context.Context) error) error {
	attemptCtx, cancel := context.WithTimeout(ctx, r.policy.OperationTimeout)
	defer cancel()

	err := fn(attemptCtx)
	if err == nil || errors.Is(err, errs.ErrStoreUnavailable) {
		return err
	}
	if errors.Is(attemptCtx.Err(), context.DeadlineExceeded) && !errs.IsConflict(err) {
		return errs.NewStoreUnavailableError(operation, err)
	}
	return err
}

// contextError keeps caller cancellation distinguishable from a store that is too slow.
func contextError(operation string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return errs.NewStoreUnavailableError(operation, err)
	}
	return err
}
