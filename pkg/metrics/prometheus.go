package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder exposes Prometheus instruments for the data pipeline: which
// upstream source served each fetch, how often the fallback tiers engage,
// and how the snapshot cache behaves.
type Recorder struct {
	sourceFetches *prometheus.CounterVec
	fallbacks     *prometheus.CounterVec
	cacheLookups  *prometheus.CounterVec
	latency       *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		sourceFetches: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cryptovision_source_fetches_total",
				Help: "Upstream fetch attempts by source and outcome",
			},
			[]string{"source", "outcome"},
		),
		fallbacks: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cryptovision_fallbacks_total",
				Help: "Times a fallback tier produced the served data",
			},
			[]string{"operation", "tier"},
		),
		cacheLookups: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cryptovision_snapshot_cache_lookups_total",
				Help: "Snapshot cache lookups by result",
			},
			[]string{"result"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cryptovision_operation_duration_seconds",
				Help:    "Duration of pipeline operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordSourceFetch records one upstream fetch attempt.
func (r *Recorder) RecordSourceFetch(source, outcome string) {
	r.sourceFetches.WithLabelValues(source, outcome).Inc()
}

// RecordFallback records that a fallback tier served an operation.
func (r *Recorder) RecordFallback(operation, tier string) {
	r.fallbacks.WithLabelValues(operation, tier).Inc()
}

// RecordCacheLookup records a snapshot cache hit or miss.
func (r *Recorder) RecordCacheLookup(result string) {
	r.cacheLookups.WithLabelValues(result).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(operation string, seconds float64) {
	r.latency.WithLabelValues(operation).Observe(seconds)
}
