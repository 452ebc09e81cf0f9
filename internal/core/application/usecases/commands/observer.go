package commands

import (
	"time"

	"tracking/internal/core/domain/model/parcel"

	log "github.com/sirupsen/logrus"
)

// LifecycleObserver is told about committed lifecycle changes and failed operations.
// Implementations must be safe for concurrent use and must not block.
type LifecycleObserver interface {
	ParcelBooked(serviceType parcel.ServiceType)
	StatusRecorded(status parcel.Status)
	AttemptRetried(operation string)
	OperationFailed(operation string, err error)
}

// NopObserver ignores every notification.
type NopObserver struct{}

func (NopObserver) ParcelBooked(parcel.ServiceType) {}
func (NopObserver) StatusRecorded(parcel.Status)    {}
func (NopObserver) AttemptRetried(string)           {}
func (NopObserver) OperationFailed(string, error)   {}

// Clock returns the current time. Handlers store event times in UTC.
type Clock func() time.Time

func SystemClock() time.Time {
	return time.Now().UTC()
}

// HandlerSettings are shared by all lifecycle handlers. Zero fields fall back to defaults.
type HandlerSettings struct {
	Retry      RetryPolicy
	Transition parcel.TransitionPolicy
	Clock      Clock
	Logger     *log.Entry
	Observer   LifecycleObserver
}

func (s HandlerSettings) withDefaults(component string) HandlerSettings {
	s.Retry = s.Retry.withDefaults()
	if s.Clock == nil {
		s.Clock = SystemClock
	}
	if s.Logger == nil {
		s.Logger = log.NewEntry(log.StandardLogger())
	}
	s.Logger = s.Logger.WithField("component", component)
	if s.Observer == nil {
		s.Observer = NopObserver{}
	}
	return s
}

func (s HandlerSettings) retrier() retrier {
	return retrier{policy: s.Retry, logger: s.Logger, observer: s.Observer}
}
