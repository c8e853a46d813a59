// Package metrics exposes Prometheus instrumentation for the retrieval
// pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector bundles the pipeline's Prometheus metrics.
type Collector struct {
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	StageDuration    *prometheus.HistogramVec
	GraphAttempts    *prometheus.CounterVec
	GraphRunOutcomes *prometheus.CounterVec
	ContextsReturned *prometheus.HistogramVec
	CacheHits        *prometheus.CounterVec
	CacheMisses      *prometheus.CounterVec
}

// NewCollector registers the pipeline metrics on the given registerer.
// A nil registerer falls back to the default registry.
func NewCollector(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Collector{
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ragflow_retrieval_requests_total",
			Help: "Retrieval requests by outcome.",
		}, []string{"project", "status"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ragflow_retrieval_request_duration_seconds",
			Help:    "End to end retrieval latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"project"}),
		StageDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ragflow_retrieval_stage_duration_seconds",
			Help:    "Per stage latency inside one retrieval request.",
			Buckets: prometheus.DefBuckets,
		}, []string{"stage"}),
		GraphAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ragflow_graph_attempts_total",
			Help: "Graph query attempts by engine.",
		}, []string{"engine"}),
		GraphRunOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ragflow_graph_runs_total",
			Help: "Completed graph runs by engine and final state.",
		}, []string{"engine", "state"}),
		ContextsReturned: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ragflow_contexts_returned",
			Help:    "Number of context items returned per request.",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 200},
		}, []string{"project"}),
		CacheHits: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ragflow_cache_hits_total",
			Help: "Cache hits by cache name.",
		}, []string{"cache"}),
		CacheMisses: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ragflow_cache_misses_total",
			Help: "Cache misses by cache name.",
		}, []string{"cache"}),
	}
}
