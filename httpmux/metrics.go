package httpmux

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records dispatch outcomes.
type Metrics struct {
	lookups  *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates and registers the dispatch metrics. A nil
// registerer uses the default one.
func NewMetrics(namespace string, registerer prometheus.Registerer) *Metrics {
	if namespace == "" {
		namespace = "segtrie"
	}

	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		lookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "mux",
				Name:      "lookups_total",
				Help:      "Total number of route lookups by outcome",
			},
			[]string{"method", "result"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "mux",
				Name:      "lookup_duration_seconds",
				Help:      "Time spent dispatching a request, handler included",
				Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
			},
			[]string{"method", "result"},
		),
	}

	registerer.MustRegister(m.lookups, m.duration)

	return m
}

func (m *Metrics) observe(method, result string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.lookups.WithLabelValues(method, result).Inc()
	m.duration.WithLabelValues(method, result).Observe(elapsed.Seconds())
}
