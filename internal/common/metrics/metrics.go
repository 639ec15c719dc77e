// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	StepTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assessment_step_transitions_total",
			Help: "Total number of wizard step transitions",
		},
		[]string{"from", "to", "direction"},
	)

	ValidationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assessment_validation_failures_total",
			Help: "Total number of rejected step submissions",
		},
		[]string{"step"},
	)

	PersistenceFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assessment_persistence_failures_total",
			Help: "Total number of failed storage reads and writes",
		},
		[]string{"operation"},
	)

	StateCorruptions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "assessment_state_corruptions_total",
			Help: "Total number of stored aggregates discarded as corrupted",
		},
	)

	ResultsComputed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assessment_results_computed_total",
			Help: "Total number of computed results by maturity level",
		},
		[]string{"maturity_level"},
	)

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
)
