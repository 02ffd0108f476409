// Package metrics exposes the SDK's ambient Prometheus instrumentation.
// The SDK never starts an HTTP server itself; Handler returns a standard
// promhttp handler the embedding application can mount at /metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RPCRequestsTotal counts control-plane RPCs by action and outcome.
	RPCRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agentbay_rpc_requests_total",
			Help: "Total number of control-plane RPC invocations",
		},
		[]string{"action", "outcome"},
	)

	// RPCRequestDuration tracks per-action RPC latency.
	RPCRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "agentbay_rpc_request_duration_seconds",
			Help:    "Control-plane RPC duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"action"},
	)

	// ActiveSessions tracks sessions currently held in the client's
	// session table.
	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "agentbay_active_sessions",
			Help: "Number of sessions currently tracked by the client",
		},
	)

	// ToolCallsTotal tracks dispatcher invocations by tool and outcome.
	ToolCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agentbay_tool_calls_total",
			Help: "Total number of CallTool dispatches",
		},
		[]string{"tool", "outcome"},
	)

	// TelemetryQueueDrops mirrors the teacher's EventBufferDrops: events
	// lost to the telemetry ring buffer's drop-oldest-on-overflow policy.
	TelemetryQueueDrops = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "agentbay_telemetry_queue_drops_total",
			Help: "Total number of telemetry events dropped due to queue overflow",
		},
	)

	// ContextSyncPollDuration tracks how long context-sync polling takes to
	// converge, from the first SyncContext call to terminal status.
	ContextSyncPollDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "agentbay_context_sync_poll_duration_seconds",
			Help:    "Time spent polling for context sync completion",
			Buckets: []float64{1, 2, 5, 10, 30, 60, 120, 300},
		},
	)
)

// Handler returns the Prometheus metrics HTTP handler. The SDK never
// mounts this itself.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordRPC observes one control-plane RPC's outcome and latency.
func RecordRPC(action, outcome string, start time.Time) {
	RPCRequestsTotal.WithLabelValues(action, outcome).Inc()
	RPCRequestDuration.WithLabelValues(action).Observe(time.Since(start).Seconds())
}

// RecordToolCall observes one dispatcher invocation's outcome.
func RecordToolCall(tool, outcome string) {
	ToolCallsTotal.WithLabelValues(tool, outcome).Inc()
}
