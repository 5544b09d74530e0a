// ABOUTME: Prometheus counters for protocol requests, tool calls, and upstream fetches.

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the gateway's counter families. A nil *Metrics is
// valid and records nothing, so callers never need to branch on whether
// metrics are enabled.
type Metrics struct {
	registry *prometheus.Registry

	requests      *prometheus.CounterVec
	toolCalls     *prometheus.CounterVec
	upstreamCalls *prometheus.CounterVec
	rateLimited   prometheus.Counter
}

// New creates a Metrics instance with its own registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "smhi_mcp_requests_total",
			Help: "JSON-RPC requests by method.",
		}, []string{"method"}),
		toolCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "smhi_mcp_tool_calls_total",
			Help: "Tool invocations by tool name.",
		}, []string{"tool"}),
		upstreamCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "smhi_mcp_upstream_requests_total",
			Help: "Upstream SMHI fetches by outcome.",
		}, []string{"outcome"}),
		rateLimited: factory.NewCounter(prometheus.CounterOpts{
			Name: "smhi_mcp_rate_limited_total",
			Help: "Requests rejected by the daily request ceiling.",
		}),
	}
}

// Handler returns the /metrics HTTP handler.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Request records one JSON-RPC request for method.
func (m *Metrics) Request(method string) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method).Inc()
}

// ToolCall records one dispatch of tool.
func (m *Metrics) ToolCall(tool string) {
	if m == nil {
		return
	}
	m.toolCalls.WithLabelValues(tool).Inc()
}

// Upstream records one upstream fetch with outcome "ok" or "error".
func (m *Metrics) Upstream(outcome string) {
	if m == nil {
		return
	}
	m.upstreamCalls.WithLabelValues(outcome).Inc()
}

// RateLimited records one request rejected by the daily ceiling.
func (m *Metrics) RateLimited() {
	if m == nil {
		return
	}
	m.rateLimited.Inc()
}
