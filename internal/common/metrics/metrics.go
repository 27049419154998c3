// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PromptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatbus_prompts_total",
			Help: "Prompts received, by detected language and message type",
		},
		[]string{"language", "message_type"},
	)

	ExtractionDefaults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatbus_extraction_defaults_total",
			Help: "Extracted fields that fell back to their default value",
		},
		[]string{"field"},
	)

	ExtractionRecovered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chatbus_extraction_recovered_total",
			Help: "Extraction passes replaced wholesale by safe defaults",
		},
	)

	PredictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatbus_predictions_total",
			Help: "Predictions served, by outcome (ok or fallback)",
		},
		[]string{"outcome"},
	)

	PredictionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chatbus_prediction_duration_seconds",
			Help:    "Time spent assembling features and scoring the model",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"backend"},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatbus_prediction_cache_lookups_total",
			Help: "Prediction cache lookups, by result (hit, miss, error)",
		},
		[]string{"result"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "chatbus_http_request_duration_seconds",
			Help: "HTTP request latency",
		},
		[]string{"route", "status"},
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

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)
)
