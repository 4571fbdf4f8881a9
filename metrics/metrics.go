// Package metrics exposes prometheus counters/gauges for BFE calls and
// island evolution, lazily registered via sync.Once the way
// dag.Executor.initMetrics lazily registers its otel instruments.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Collectors bundles the core's prometheus instruments.
type Collectors struct {
	BFECallsTotal     *prometheus.CounterVec
	BFECallDuration   *prometheus.HistogramVec
	IslandEvolveTotal *prometheus.CounterVec
	IslandWaitErrors  *prometheus.CounterVec
	QueueDepth        *prometheus.GaugeVec
}

var (
	once sync.Once
	c    *Collectors
)

// Get returns the process-wide Collectors, registering them with the
// default prometheus registry on first use.
func Get() *Collectors {
	once.Do(func() {
		c = &Collectors{
			BFECallsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "evocore",
				Subsystem: "bfe",
				Name:      "calls_total",
				Help:      "Total number of BFE.Call invocations, by driver name.",
			}, []string{"driver"}),
			BFECallDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Namespace: "evocore",
				Subsystem: "bfe",
				Name:      "call_duration_seconds",
				Help:      "Duration of BFE.Call invocations, by driver name.",
				Buckets:   prometheus.DefBuckets,
			}, []string{"driver"}),
			IslandEvolveTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "evocore",
				Subsystem: "island",
				Name:      "evolve_total",
				Help:      "Total number of Island.Evolve submissions.",
			}, []string{"island"}),
			IslandWaitErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "evocore",
				Subsystem: "island",
				Name:      "wait_errors_total",
				Help:      "Total number of errors surfaced by Island.Wait.",
			}, []string{"island"}),
			QueueDepth: prometheus.NewGaugeVec(prometheus.GaugeOpts{
				Namespace: "evocore",
				Subsystem: "island",
				Name:      "queue_depth",
				Help:      "Number of pending evolve handles not yet drained by Wait.",
			}, []string{"island"}),
		}
		prometheus.MustRegister(
			c.BFECallsTotal,
			c.BFECallDuration,
			c.IslandEvolveTotal,
			c.IslandWaitErrors,
			c.QueueDepth,
		)
	})
	return c
}
