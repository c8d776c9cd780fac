// Package metrics provides Prometheus metrics for the ingestion service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// JobsProcessedTotal tracks processed jobs by form type and outcome
	JobsProcessedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pima",
			Subsystem: "queue",
			Name:      "jobs_processed_total",
			Help:      "Total number of processed jobs by job type and status",
		},
		[]string{"job_type", "status"},
	)

	// JobDuration tracks per-job processing duration in seconds
	JobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pima",
			Subsystem: "queue",
			Name:      "job_duration_seconds",
			Help:      "Duration of job processing in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"job_type"},
	)

	// JobsEnqueuedTotal tracks submissions accepted into the queue
	JobsEnqueuedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pima",
			Subsystem: "queue",
			Name:      "jobs_enqueued_total",
			Help:      "Total number of jobs enqueued by job type",
		},
		[]string{"job_type"},
	)

	// QueueDepth tracks dispatchable jobs remaining after a batch
	QueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "pima",
			Subsystem: "queue",
			Name:      "depth",
			Help:      "Number of jobs currently eligible for dispatch",
		},
	)
)
