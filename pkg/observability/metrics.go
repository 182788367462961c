package observability

import (
	"time"

	"github.com/aretw0/valence/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "valence"

// Metrics holds the Prometheus collectors for history and awareness.
type Metrics struct {
	Operations     *prometheus.CounterVec
	Evicted        prometheus.Counter
	Truncated      prometheus.Counter
	HistorySize    prometheus.Gauge
	HistoryIndex   prometheus.Gauge
	AwarenessPairs prometheus.Gauge
	OverlapSeconds prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "history_operations_total",
			Help:      "History operations by reason.",
		}, []string{"reason"}),
		Evicted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "history_evicted_total",
			Help:      "Commands dropped from the front of a full history.",
		}),
		Truncated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "history_truncated_total",
			Help:      "Redo entries discarded by a new command.",
		}),
		HistorySize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "history_size",
			Help:      "Commands currently retained in the history.",
		}),
		HistoryIndex: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "history_index",
			Help:      "Position of the history cursor (-1 when empty).",
		}),
		AwarenessPairs: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "awareness_pairs",
			Help:      "Node pairs whose awareness zones currently overlap.",
		}),
		OverlapSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "overlap_detection_seconds",
			Help:      "Duration of pairwise overlap detection.",
			Buckets:   []float64{0.00001, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		}),
	}
	if reg != nil {
		reg.MustRegister(
			m.Operations,
			m.Evicted,
			m.Truncated,
			m.HistorySize,
			m.HistoryIndex,
			m.AwarenessPairs,
			m.OverlapSeconds,
		)
	}
	return m
}

// ObserveHistory records one history event.
func (m *Metrics) ObserveHistory(e *domain.HistoryEvent) {
	m.Operations.WithLabelValues(string(e.Reason)).Inc()
	m.HistorySize.Set(float64(e.Total))
	m.HistoryIndex.Set(float64(e.Index))
}

// ObserveOverlaps records the result of one detection pass.
func (m *Metrics) ObserveOverlaps(pairs int, took time.Duration) {
	m.AwarenessPairs.Set(float64(pairs))
	m.OverlapSeconds.Observe(took.Seconds())
}
