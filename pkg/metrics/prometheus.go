// Package metrics provides Prometheus metrics for maintenance evaluation.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Evaluation outcomes used as the "outcome" label.
const (
	OutcomeNotDue    = "not_due"
	OutcomeDue       = "due"
	OutcomeOverdue   = "overdue"
	OutcomeUntracked = "untracked"
	OutcomeInactive  = "inactive"
)

// Recorder collects maintenance evaluation metrics.
type Recorder struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	evaluations        *prometheus.CounterVec
	evaluationDuration prometheus.Histogram
	usageReadings      prometheus.Counter
	usageRejected      prometheus.Counter
	plansDue           prometheus.Gauge
}

// NewRecorder creates a recorder and registers its collectors.
func NewRecorder(opts ...Option) *Recorder {
	r := &Recorder{
		namespace:        "agrierp",
		subsystem:        "maintenance",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(r)
	}

	factory := promauto.With(r.registry)

	r.evaluations = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: r.namespace,
		Subsystem: r.subsystem,
		Name:      "plan_evaluations_total",
		Help:      "Maintenance plan evaluations by outcome.",
	}, []string{"outcome"})

	r.evaluationDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: r.namespace,
		Subsystem: r.subsystem,
		Name:      "evaluation_run_duration_seconds",
		Help:      "Duration of a full evaluation run.",
		Buckets:   r.histogramBuckets,
	})

	r.usageReadings = factory.NewCounter(prometheus.CounterOpts{
		Namespace: r.namespace,
		Subsystem: r.subsystem,
		Name:      "usage_readings_total",
		Help:      "Usage readings accepted.",
	})

	r.usageRejected = factory.NewCounter(prometheus.CounterOpts{
		Namespace: r.namespace,
		Subsystem: r.subsystem,
		Name:      "usage_readings_rejected_total",
		Help:      "Usage readings rejected as invalid or decreasing.",
	})

	r.plansDue = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: r.namespace,
		Subsystem: r.subsystem,
		Name:      "plans_due",
		Help:      "Plans due or overdue after the last evaluation run.",
	})

	return r
}

// RecordEvaluation counts one plan evaluation.
func (r *Recorder) RecordEvaluation(outcome string) {
	if r == nil {
		return
	}
	r.evaluations.WithLabelValues(outcome).Inc()
}

// ObserveRun records the duration of a full evaluation run and the resulting due count.
func (r *Recorder) ObserveRun(d time.Duration, due int) {
	if r == nil {
		return
	}
	r.evaluationDuration.Observe(d.Seconds())
	r.plansDue.Set(float64(due))
}

// RecordUsageReading counts an accepted or rejected usage reading.
func (r *Recorder) RecordUsageReading(accepted bool) {
	if r == nil {
		return
	}
	if accepted {
		r.usageReadings.Inc()
		return
	}
	r.usageRejected.Inc()
}
