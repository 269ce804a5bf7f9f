package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// Wizard metrics
	SessionsOpened    prometheus.Counter
	SessionsDiscarded prometheus.Counter
	SubmissionsTotal  *prometheus.CounterVec
	SubmissionLatency prometheus.Histogram

	// Catalog metrics
	CatalogLoads          *prometheus.CounterVec
	StaleCatalogResponses *prometheus.CounterVec

	// Outbox metrics
	OutboxEventsProcessed   prometheus.Counter
	OutboxEventsFailed      prometheus.Counter
	OutboxProcessingLatency prometheus.Histogram
}

// NewMetrics creates and registers all application metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		SessionsOpened: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wizard_sessions_opened_total",
			Help:      "Total number of booking wizard sessions opened",
		}),
		SessionsDiscarded: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wizard_sessions_discarded_total",
			Help:      "Total number of booking wizard sessions discarded before submission",
		}),
		SubmissionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wizard_submissions_total",
			Help:      "Total number of booking submissions by outcome",
		}, []string{"outcome"}),
		SubmissionLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "wizard_submission_duration_seconds",
			Help:      "Time spent creating a booking from a submitted draft",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}),
		CatalogLoads: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_loads_total",
			Help:      "Total number of resource catalog loads by catalog and status",
		}, []string{"catalog", "status"}),
		StaleCatalogResponses: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_stale_responses_total",
			Help:      "Catalog responses dropped because the upstream selection changed mid-flight",
		}, []string{"catalog"}),
		OutboxEventsProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outbox_events_processed_total",
			Help:      "Total number of successfully published outbox events",
		}),
		OutboxEventsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outbox_events_failed_total",
			Help:      "Total number of outbox events that failed publishing",
		}),
		OutboxProcessingLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "outbox_processing_duration_seconds",
			Help:      "Time spent processing outbox batches",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}),
	}
}
