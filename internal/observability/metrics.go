package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "store_dashboard_http_requests_total",
		Help: "HTTP requests by route and status code",
	}, []string{"route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "store_dashboard_http_request_duration_seconds",
		Help:    "HTTP request latency by route",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	PipelineRunsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "store_dashboard_pipeline_runs_total",
		Help: "Report recomputations",
	})

	PipelineDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "store_dashboard_pipeline_duration_seconds",
		Help:    "Time to recompute a full report",
		Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
	})

	RowsIngestedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "store_dashboard_rows_ingested_total",
		Help: "Transaction rows parsed from uploaded or configured datasets",
	})

	IngestFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "store_dashboard_ingest_failures_total",
		Help: "Dataset loads rejected, by failure kind",
	}, []string{"kind"})

	DatasetRows = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "store_dashboard_dataset_rows",
		Help: "Rows in the currently loaded dataset",
	})
)
