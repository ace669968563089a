package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PipelineMetrics holds Prometheus metrics for the processing pipeline
type PipelineMetrics struct {
	TranscriptsProcessedTotal *prometheus.CounterVec
	ProcessingSeconds         prometheus.Histogram
	BatchRunsTotal            *prometheus.CounterVec
	OptionalStageFailures     *prometheus.CounterVec
	QueueItemsTotal           prometheus.Counter
}

// Default creates metrics registered on the default registerer
func Default() *PipelineMetrics {
	return New(prometheus.DefaultRegisterer)
}

// New creates a new set of pipeline metrics
func New(reg prometheus.Registerer) *PipelineMetrics {
	factory := promauto.With(reg)

	return &PipelineMetrics{
		TranscriptsProcessedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pipeline_transcripts_processed_total",
				Help: "Total transcripts processed, by terminal status",
			},
			[]string{"status"},
		),
		ProcessingSeconds: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "pipeline_processing_seconds",
				Help:    "Per-transcript processing latency",
				Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 300},
			},
		),
		BatchRunsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pipeline_batch_runs_total",
				Help: "Total batch runs, by outcome",
			},
			[]string{"outcome"},
		),
		OptionalStageFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pipeline_optional_stage_failures_total",
				Help: "Non-fatal failures of optional stages",
			},
			[]string{"stage"},
		),
		QueueItemsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "pipeline_queue_items_total",
				Help: "Total single-item triggers enqueued",
			},
		),
	}
}
