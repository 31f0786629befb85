// Package metrics holds the Prometheus collectors of the ledger service on a
// private registry.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ledger"

type Metrics struct {
	registry *prometheus.Registry
	calls    *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	emitted  *prometheus.CounterVec
	indexed  *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calls_total",
			Help:      "Ledger operations segmented by operation and outcome kind.",
		}, []string{"operation", "outcome"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "call_duration_seconds",
			Help:      "Latency of ledger operations including the store commit.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		emitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_emitted_total",
			Help:      "Notifications emitted after a committed call.",
		}, []string{"type"}),
		indexed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_indexed_total",
			Help:      "Outbox envelopes processed by the indexer segmented by outcome.",
		}, []string{"outcome"}),
	}
	m.registry.MustRegister(
		m.calls,
		m.latency,
		m.emitted,
		m.indexed,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) ObserveCall(operation, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.calls.WithLabelValues(operation, outcome).Inc()
	m.latency.WithLabelValues(operation).Observe(d.Seconds())
}

func (m *Metrics) EventEmitted(eventType string) {
	if m == nil {
		return
	}
	m.emitted.WithLabelValues(eventType).Inc()
}

func (m *Metrics) EventIndexed(outcome string) {
	if m == nil {
		return
	}
	m.indexed.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
