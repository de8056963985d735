package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels of StorageEventsTotal.
const (
	OutcomeUploaded         = "uploaded"
	OutcomeAlreadyUploaded  = "already_uploaded"
	OutcomeUnknownNamespace = "unknown_namespace"
	OutcomeNoMatch          = "no_match"
	OutcomeError            = "error"
)

var (
	// once guards registration; the default registry panics on duplicates.
	once sync.Once

	// HTTPRequestsTotal is labelled by the mux pattern, never the raw path,
	// so ids in URLs do not blow up cardinality.
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bff_http_requests_total",
			Help: "Total HTTP requests by method, route and status.",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bff_http_request_duration_seconds",
			Help:    "HTTP request latency distributions.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	HTTPInflightRequests = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "bff_http_inflight_requests",
			Help: "Current number of in-flight HTTP requests.",
		},
	)

	// StorageEventsTotal counts storage webhook records by namespace and outcome.
	StorageEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bff_storage_events_total",
			Help: "Storage upload notifications processed, by namespace and outcome.",
		},
		[]string{"namespace", "outcome"},
	)

	PresignFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bff_presign_failures_total",
			Help: "Presigned upload URLs that could not be issued, by namespace.",
		},
		[]string{"namespace"},
	)
)

// Init registers the collectors with the default registry. Safe to call more than once.
func Init() {
	once.Do(func() {
		prometheus.MustRegister(
			HTTPRequestsTotal,
			HTTPRequestDurationSeconds,
			HTTPInflightRequests,
			StorageEventsTotal,
			PresignFailuresTotal,
		)
	})
}
