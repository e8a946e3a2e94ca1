/*
Package simmetrics declares the prometheus collectors this module
exposes, adapted from the teacher orchestrator's pkg/metrics. The
engine's own correctness never depends on these; they're wired purely
for observability (pkg/simserver's /metrics endpoint, or a host
scraping the default registry directly).
*/
package simmetrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ReplicationsTotal counts completed replications by outcome.
	ReplicationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sdesim_replications_total",
			Help: "Total number of replications run, by outcome",
		},
		[]string{"outcome"}, // "completed", "duration_reached", "quiescent", "error"
	)

	// EngineRunDuration measures how long Engine.Run takes in wall
	// clock seconds (not to be confused with simulated time).
	EngineRunDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sdesim_engine_run_duration_seconds",
			Help:    "Wall-clock time taken by one Engine.Run call",
			Buckets: prometheus.DefBuckets,
		},
	)

	// SchedulingLatency measures the wall-clock cost of one
	// begin_service attempt (successful or not).
	SchedulingLatency = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sdesim_scheduling_latency_seconds",
			Help:    "Wall-clock time taken by one begin_service attempt",
			Buckets: prometheus.DefBuckets,
		},
	)

	// ActivityCompletionsTotal counts completed activity instances by
	// activity id.
	ActivityCompletionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sdesim_activity_completions_total",
			Help: "Total number of completed activity instances, by activity",
		},
		[]string{"activity_id"},
	)

	// ResourceUtilization reports the last-observed busy fraction for
	// a resource over the run's elapsed simulated time.
	ResourceUtilization = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "sdesim_resource_utilization",
			Help: "Fraction of elapsed simulated time a resource spent busy",
		},
		[]string{"resource_id"},
	)

	// PendingEntities reports the count of unprocessed flow entities
	// at the end of a run (spec.md's quiescence / ResourceStarvation
	// observability hook).
	PendingEntities = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "sdesim_pending_entities",
			Help: "Number of flow entities left unprocessed at end of run",
		},
	)
)

func init() {
	prometheus.MustRegister(
		ReplicationsTotal,
		EngineRunDuration,
		SchedulingLatency,
		ActivityCompletionsTotal,
		ResourceUtilization,
		PendingEntities,
	)
}

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Timer times a wall-clock operation and reports it to a histogram.
type Timer struct {
	start time.Time
}

// NewTimer starts a timer.
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// ObserveDuration records the elapsed time to histogram.
func (t *Timer) ObserveDuration(histogram prometheus.Histogram) {
	histogram.Observe(time.Since(t.start).Seconds())
}
