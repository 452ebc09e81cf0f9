// Package metrics exposes parcel lifecycle counters and stage gauges to Prometheus.
package metrics

import (
	"errors"
	"fmt"

	"tracking/internal/core/domain/model/parcel"
	"tracking/internal/pkg/errs"

	"github.com/prometheus/client_golang/prometheus"
)

// LifecycleMetrics records committed lifecycle changes. It satisfies the command
// handlers' LifecycleObserver and is safe for concurrent use.
type LifecycleMetrics struct {
	parcelsBooked     *prometheus.CounterVec
	statusesRecorded  *prometheus.CounterVec
	attemptsRetried   *prometheus.CounterVec
	operationsFailed  *prometheus.CounterVec
	parcelsByStage    *prometheus.GaugeVec
	stageRefreshFails prometheus.Counter
}

func NewLifecycleMetrics() *LifecycleMetrics {
	return NewLifecycleMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func NewLifecycleMetricsWithRegisterer(registerer prometheus.Registerer) *LifecycleMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &LifecycleMetrics{
		parcelsBooked: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "tracking_parcels_booked_total",
			Help: "Total number of parcels booked",
		}, []string{"service_type"}),
		statusesRecorded: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "tracking_status_updates_total",
			Help: "Total number of committed status updates, delivery confirmations included",
		}, []string{"status"}),
		attemptsRetried: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "tracking_operation_retries_total",
			Help: "Total number of attempts that conflicted with a concurrent writer",
		}, []string{"operation"}),
		operationsFailed: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "tracking_operation_failures_total",
			Help: "Total number of failed lifecycle operations by error kind",
		}, []string{"operation", "kind"}),
		parcelsByStage: registerGaugeVec(registerer, prometheus.GaugeOpts{
			Name: "tracking_parcels_by_stage",
			Help: "Number of parcels currently in each lifecycle stage",
		}, []string{"stage"}),
		stageRefreshFails: registerCounter(registerer, prometheus.CounterOpts{
			Name: "tracking_stage_refresh_failures_total",
			Help: "Total number of failed stage gauge refreshes",
		}),
	}
}

func (m *LifecycleMetrics) ParcelBooked(serviceType parcel.ServiceType) {
	m.parcelsBooked.WithLabelValues(serviceType.String()).Inc()
}

func (m *LifecycleMetrics) StatusRecorded(status parcel.Status) {
	m.statusesRecorded.WithLabelValues(status.String()).Inc()
}

func (m *LifecycleMetrics) AttemptRetried(operation string) {
	m.attemptsRetried.WithLabelValues(operation).Inc()
}

func (m *LifecycleMetrics) OperationFailed(operation string, err error) {
	m.operationsFailed.WithLabelValues(operation, FailureKind(err)).Inc()
}

// SetStageCounts replaces every stage gauge with the given counts.
func (m *LifecycleMetrics) SetStageCounts(counts map[parcel.Status]int64) {
	for status, total := range counts {
		m.parcelsByStage.WithLabelValues(status.String()).Set(float64(total))
	}
}

func (m *LifecycleMetrics) StageRefreshFailed() {
	m.stageRefreshFails.Inc()
}

// FailureKind buckets err into a low-cardinality label value.
func FailureKind(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, errs.ErrUnauthorized):
		return "unauthorized"
	case errs.IsValidation(err):
		return "validation"
	case errors.Is(err, errs.ErrObjectNotFound):
		return "not_found"
	case errors.Is(err, errs.ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, errs.ErrExhausted):
		return "exhausted"
	case errors.Is(err, errs.ErrStoreUnavailable):
		return "store_unavailable"
	default:
		return "internal"
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		var alreadyRegistered prometheus.AlreadyRegisteredError
		if errors.As(err, &alreadyRegistered) {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerCounterVec(
	registerer prometheus.Registerer,
	opts prometheus.CounterOpts,
	labels []string,
) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		var alreadyRegistered prometheus.AlreadyRegisteredError
		if errors.As(err, &alreadyRegistered) {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerGaugeVec(registerer prometheus.Registerer, opts prometheus.GaugeOpts, labels []string) *prometheus.GaugeVec {
	collector := prometheus.NewGaugeVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		var alreadyRegistered prometheus.AlreadyRegisteredError
		if errors.As(err, &alreadyRegistered) {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.GaugeVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register gauge vec %q: %v", opts.Name, err))
	}
	return collector
}
