package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	toolCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ocs_mcp_tool_calls_total",
		Help: "Tool invocations by tool name and outcome.",
	}, []string{"tool", "outcome"})

	toolDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ocs_mcp_tool_duration_seconds",
		Help:    "Tool execution latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"tool"})

	upstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ocs_mcp_upstream_requests_total",
		Help: "Downstream OCS API requests by method and status.",
	}, []string{"method", "status"})

	upstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ocs_mcp_upstream_request_duration_seconds",
		Help:    "Downstream OCS API request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})
)

// ObserveToolCall records one tool invocation.
func ObserveToolCall(tool string, isError bool, elapsed time.Duration) {
	outcome := "ok"
	if isError {
		outcome = "error"
	}
	toolCalls.WithLabelValues(tool, outcome).Inc()
	toolDuration.WithLabelValues(tool).Observe(elapsed.Seconds())
}

// ObserveUpstreamRequest records one downstream OCS API call. Transport
// failures carry the status label "error".
func ObserveUpstreamRequest(method, status string, elapsed time.Duration) {
	upstreamRequests.WithLabelValues(method, status).Inc()
	upstreamDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}
