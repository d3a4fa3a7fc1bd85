/*
Package metrics implements Prometheus instrumentation for the path
space: lookup hit and miss counters, dispatch outcome counters, the
number of registered prefixes and the length of the evaluated rule
chains.
*/
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	promNamespace         = "pathspace"
	promLookupSubsystem   = "lookup"
	promDispatchSubsystem = "dispatch"
)

// Options for creating a metrics backend.
type Options struct {
	// Prefix overrides the default metrics namespace.
	Prefix string

	// Registry is the Prometheus registry to register the collectors
	// on. When nil, a new private registry is used.
	Registry *prometheus.Registry
}

// Metrics collects path-space measurements and exposes them through a
// Prometheus handler. A nil *Metrics is a valid no-op sink.
type Metrics struct {
	lookupM      *prometheus.CounterVec
	dispatchM    *prometheus.CounterVec
	prefixesM    prometheus.Gauge
	chainLengthM prometheus.Histogram

	registry *prometheus.Registry
	handler  http.Handler
}

// New creates a metrics backend and registers its collectors.
func New(o Options) *Metrics {
	namespace := promNamespace
	if o.Prefix != "" {
		namespace = o.Prefix
	}

	registry := o.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	m := &Metrics{
		lookupM: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: promLookupSubsystem,
			Name:      "total",
			Help:      "Number of path lookups, partitioned by hit or miss.",
		}, []string{"outcome"}),
		dispatchM: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: promDispatchSubsystem,
			Name:      "total",
			Help:      "Number of dispatches, partitioned by chain result.",
		}, []string{"result"}),
		prefixesM: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "prefixes",
			Help:      "Number of registered prefixes.",
		}),
		chainLengthM: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: promDispatchSubsystem,
			Name:      "chain_length",
			Help:      "Number of rules in the dispatched component chains.",
			Buckets:   []float64{0, 1, 2, 4, 8, 16, 32, 64},
		}),
		registry: registry,
	}

	registry.MustRegister(m.lookupM, m.dispatchM, m.prefixesM, m.chainLengthM)
	m.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return m
}

// IncLookup counts one path lookup.
func (m *Metrics) IncLookup(hit bool) {
	if m == nil {
		return
	}

	outcome := "miss"
	if hit {
		outcome = "hit"
	}

	m.lookupM.WithLabelValues(outcome).Inc()
}

// IncDispatch counts one dispatch with the final chain result.
func (m *Metrics) IncDispatch(result string) {
	if m == nil {
		return
	}

	m.dispatchM.WithLabelValues(result).Inc()
}

// UpdatePrefixes sets the registered prefix count.
func (m *Metrics) UpdatePrefixes(n int) {
	if m == nil {
		return
	}

	m.prefixesM.Set(float64(n))
}

// ObserveChainLength records the rule count of a dispatched chain.
func (m *Metrics) ObserveChainLength(n int) {
	if m == nil {
		return
	}

	m.chainLengthM.Observe(float64(n))
}

// Handler returns the HTTP handler exposing the collected metrics.
func (m *Metrics) Handler() http.Handler {
	return m.handler
}
