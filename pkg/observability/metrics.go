package observability

import (
	"context"
	"net/http"

	"github.com/aretw0/careergraph/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "careergraph"

// Metrics holds the collectors fed by lifecycle hooks.
type Metrics struct {
	Registry *prometheus.Registry

	RevealsStarted prometheus.Counter
	NodesRevealed  *prometheus.CounterVec
	EdgesRevealed  *prometheus.CounterVec
	FitViews       *prometheus.CounterVec
	FitCollapsed   prometheus.Histogram
	EdgesDropped   *prometheus.CounterVec
	LayoutCache    *prometheus.CounterVec
	ActiveSessions prometheus.Gauge
}

// NewMetrics creates and registers every collector on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		RevealsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reveals_started_total",
			Help:      "Total number of views that started their global reveal.",
		}),
		NodesRevealed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "nodes_revealed_total",
			Help:      "Total number of nodes made visible, by plan.",
		}, []string{"stage"}),
		EdgesRevealed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "edges_revealed_total",
			Help:      "Total number of edges made visible, by plan.",
		}, []string{"stage"}),
		FitViews: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fit_views_total",
			Help:      "Camera recenter commands issued, by path.",
		}, []string{"path"}),
		FitCollapsed: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fit_requests_per_command",
			Help:      "Fit requests merged into one debounced command.",
			Buckets:   []float64{1, 2, 4, 8, 16, 32},
		}),
		EdgesDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "edges_dropped_total",
			Help:      "Dataset edges dropped by the graph builder, by reason.",
		}, []string{"reason"}),
		LayoutCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "layout_cache_lookups_total",
			Help:      "Layout cache lookups, by result.",
		}, []string{"result"}),
		ActiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Number of live graph views.",
		}),
	}

	m.Registry.MustRegister(
		m.RevealsStarted,
		m.NodesRevealed,
		m.EdgesRevealed,
		m.FitViews,
		m.FitCollapsed,
		m.EdgesDropped,
		m.LayoutCache,
		m.ActiveSessions,
		collectors.NewGoCollector(),
	)
	return m
}

// Hooks returns lifecycle hooks recording into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRevealStarted: func(context.Context, *domain.RevealEvent) {
			m.RevealsStarted.Inc()
		},
		OnNodeRevealed: func(_ context.Context, e *domain.RevealEvent) {
			m.NodesRevealed.WithLabelValues(e.Stage).Add(float64(len(e.NodeIDs)))
		},
		OnEdgesRevealed: func(_ context.Context, e *domain.RevealEvent) {
			m.EdgesRevealed.WithLabelValues(e.Stage).Add(float64(len(e.EdgeIDs)))
		},
		OnFitView: func(_ context.Context, e *domain.FitEvent) {
			m.FitViews.WithLabelValues(e.Path).Inc()
			m.FitCollapsed.Observe(float64(e.Collapsed))
		},
		OnEdgeDropped: func(_ context.Context, e *domain.IntegrityEvent) {
			m.EdgesDropped.WithLabelValues(e.Reason).Inc()
		},
	}
}

// ObserveCache records a layout cache lookup.
func (m *Metrics) ObserveCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.LayoutCache.WithLabelValues(result).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}
