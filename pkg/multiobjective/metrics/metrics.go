// Package metrics exposes Prometheus collectors for the decomposition
// scheduler.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "pade"

	ResultSucceeded = "succeeded"
	ResultFailed    = "failed"
	// ResultCancelled counts tasks of a failed batch that did not fail
	// themselves, and every task of a batch cut short by the caller.
	ResultCancelled = "cancelled"
)

// Metrics records task and batch activity. A nil *Metrics records nothing.
type Metrics struct {
	tasks         *prometheus.CounterVec
	batches       prometheus.Counter
	batchDuration prometheus.Histogram
}

// New creates the collectors and registers them with reg. A nil reg leaves
// them unregistered.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		tasks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tasks_total",
			Help:      "Number of decomposed sub-problems evolved, by result.",
		}, []string{"result"}),
		batches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batches_total",
			Help:      "Number of task batches dispatched.",
		}),
		batchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_duration_seconds",
			Help:      "Wall time spent evolving one batch of tasks.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
	}
	if reg != nil {
		reg.MustRegister(m.tasks, m.batches, m.batchDuration)
	}
	return m
}

// BatchOutcome is the number of tasks of a batch per result.
type BatchOutcome struct {
	Succeeded int
	Failed    int
	Cancelled int
}

// ObserveBatch records one finished batch.
func (m *Metrics) ObserveBatch(outcome BatchOutcome, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.batches.Inc()
	m.batchDuration.Observe(elapsed.Seconds())
	m.tasks.WithLabelValues(ResultSucceeded).Add(float64(outcome.Succeeded))
	m.tasks.WithLabelValues(ResultFailed).Add(float64(outcome.Failed))
	m.tasks.WithLabelValues(ResultCancelled).Add(float64(outcome.Cancelled))
}
