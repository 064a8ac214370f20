// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	IntentResolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dialogue_intent_resolutions_total",
			Help: "Resolved dialogue turns by final intent and order validity",
		},
		[]string{"intent", "order_valid"},
	)

	UpstreamIntentFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dialogue_upstream_intent_failures_total",
			Help: "Classifier calls that fell back to the unknown intent",
		},
	)

	OrdersCommitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_committed_total",
			Help: "Orders written to the order store",
		},
		[]string{"store"},
	)
)

// ObserveJob records the outcome of one job. errorCode is empty on success.
func ObserveJob(taskType, errorCode string, seconds float64) {
	WorkerJobDuration.WithLabelValues(taskType).Observe(seconds)
	if errorCode == "" {
		WorkerJobsCompleted.WithLabelValues(taskType).Inc()
		return
	}
	WorkerJobsFailed.WithLabelValues(taskType, errorCode).Inc()
}
