// Package metrics exposes Prometheus collectors for searches run by the
// servers. A nil *Collector is valid and records nothing.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/katalvlaran/gridpath/search"
)

// Collector groups the gridpath metrics registered on one registry.
type Collector struct {
	searches *prometheus.CounterVec
	steps    prometheus.Counter
	duration prometheus.Histogram
	sessions prometheus.Gauge
}

// New registers the collectors on reg.
// Panics if they are already registered there.
func New(reg prometheus.Registerer) *Collector {
	f := promauto.With(reg)
	return &Collector{
		// searchesTotal counts finished searches by terminal phase
		searches: f.NewCounterVec(prometheus.CounterOpts{
			Name: "gridpath_searches_total",
			Help: "Total finished searches by outcome",
		}, []string{"outcome"}),

		steps: f.NewCounter(prometheus.CounterOpts{
			Name: "gridpath_steps_total",
			Help: "Total engine steps taken",
		}),

		duration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "gridpath_search_duration_seconds",
			Help:    "Wall time from first step to terminal phase",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 16), // 0.1ms to ~3s
		}),

		sessions: f.NewGauge(prometheus.GaugeOpts{
			Name: "gridpath_active_sessions",
			Help: "Searches currently held in memory",
		}),
	}
}

// ObserveOutcome records a terminal search. Non-terminal outcomes are ignored.
func (c *Collector) ObserveOutcome(out search.Outcome, elapsed time.Duration) {
	if c == nil || !out.Phase.Terminal() {
		return
	}
	c.searches.WithLabelValues(out.Phase.String()).Inc()
	c.duration.Observe(elapsed.Seconds())
}

// AddSteps counts n engine steps.
func (c *Collector) AddSteps(n int) {
	if c == nil || n <= 0 {
		return
	}
	c.steps.Add(float64(n))
}

// SessionOpened increments the live session gauge.
func (c *Collector) SessionOpened() {
	if c == nil {
		return
	}
	c.sessions.Inc()
}

// SessionClosed decrements the live session gauge.
func (c *Collector) SessionClosed() {
	if c == nil {
		return
	}
	c.sessions.Dec()
}

// Handler serves the metrics gathered by g in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
