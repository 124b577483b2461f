package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StockMutationMetrics records outcomes of ledger mutations.
type StockMutationMetrics struct {
	duration *prometheus.HistogramVec
	applied  *prometheus.CounterVec
	conflict *prometheus.CounterVec
}

// NewStockMutationMetrics registers the mutation metrics on the provided
// registerer.
func NewStockMutationMetrics(reg prometheus.Registerer) *StockMutationMetrics {
	if reg == nil {
		return &StockMutationMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "stock_mutation_duration_seconds",
		Help:    "Duration of applied stock mutations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"target"})
	applied := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_mutations_applied",
		Help: "Stock mutations committed, with their ledger entry.",
	}, []string{"type", "target"})
	conflict := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_mutation_conflicts",
		Help: "Stock mutations rejected after exhausting the concurrency retry.",
	}, []string{"target"})
	reg.MustRegister(duration, applied, conflict)
	return &StockMutationMetrics{
		duration: duration,
		applied:  applied,
		conflict: conflict,
	}
}

// ObserveApplied records one committed mutation and its duration.
func (m *StockMutationMetrics) ObserveApplied(txType, target string, duration time.Duration) {
	if m == nil || m.applied == nil {
		return
	}
	m.applied.WithLabelValues(normalizeLabel(txType), normalizeLabel(target)).Inc()
	m.duration.WithLabelValues(normalizeLabel(target)).Observe(duration.Seconds())
}

// IncConflict counts a mutation surfaced as a concurrency conflict.
func (m *StockMutationMetrics) IncConflict(target string) {
	if m == nil || m.conflict == nil {
		return
	}
	m.conflict.WithLabelValues(normalizeLabel(target)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
