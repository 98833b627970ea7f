package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "staffdir"

const (
	OutcomeCommitted = "committed"
	OutcomeConflict  = "conflict"
	OutcomeInvalid   = "invalid"
	OutcomeNotFound  = "not_found"
	OutcomeError     = "error"

	CancelSpecific = "specific"
	CancelCurrent  = "current"
	CancelClearAll = "clear_all"
)

// Metrics holds the Prometheus collectors of the service, registered on a
// private registry so several instances can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry

	BookingAttempts   *prometheus.CounterVec
	BookingsCancelled *prometheus.CounterVec
	RoomsCleared      prometheus.Counter
	RequestDuration   *prometheus.HistogramVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		BookingAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_attempts_total",
			Help:      "Booking requests by outcome",
		}, []string{"outcome"}),

		BookingsCancelled: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_cancelled_total",
			Help:      "Cancellation operations by kind",
		}, []string{"kind"}),

		RoomsCleared: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rooms_cleared_total",
			Help:      "Rooms emptied by clear-all operations",
		}),

		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
