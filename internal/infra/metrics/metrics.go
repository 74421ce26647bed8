package metrics

import (
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	updatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_updates_total",
			Help: "Inbound updates routed, by event kind.",
		},
		[]string{"kind"},
	)

	flowOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_flow_outcomes_total",
			Help: "Dialog flow terminations by flow and outcome (commit/abort).",
		},
		[]string{"flow", "outcome"},
	)

	broadcastMessages = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_broadcast_messages_total",
			Help: "Broadcast deliveries by status (sent/failed).",
		},
		[]string{"status"},
	)

	cacheRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_cache_requests_total",
			Help: "Repository cache lookups by entity and result (hit/miss).",
		},
		[]string{"entity", "result"},
	)
)

// MustRegister registers collectors with the default registry (idempotent).
func MustRegister() {
	once.Do(func() {
		prometheus.MustRegister(
			updatesTotal, flowOutcomes, broadcastMessages, cacheRequests,
		)
	})
}

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func IncUpdate(kind string) {
	updatesTotal.WithLabelValues(norm(kind)).Inc()
}

func IncFlowOutcome(flow, outcome string) {
	flowOutcomes.WithLabelValues(norm(flow), norm(outcome)).Inc()
}

func IncBroadcast(status string) {
	broadcastMessages.WithLabelValues(norm(status)).Inc()
}

func IncCacheRequest(entity, result string) {
	cacheRequests.WithLabelValues(norm(entity), norm(result)).Inc()
}
