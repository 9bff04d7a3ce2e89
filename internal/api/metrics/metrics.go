// Package metrics defines and registers all custom Prometheus metrics for the
// timer service. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register themselves with the default registry at init time via
// promauto; the router exposes them on GET /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "timers"

// ── WebSocket metrics ─────────────────────────────────────────────────────────

// WSConnectionsActive tracks the number of currently registered sockets.
// The registry enforces one socket per user, so this equals the number of
// distinct users online.
var WSConnectionsActive = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "ws_connections_active",
		Help:      "Number of currently registered WebSocket connections.",
	},
)

// WSEvictionsTotal counts sockets closed because the same user opened a newer
// connection (last-connection-wins policy).
var WSEvictionsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ws_evictions_total",
		Help:      "Total number of sockets evicted by a newer connection for the same user.",
	},
)

// WSMessagesRejectedTotal counts inbound socket messages dropped without a
// reply. The drop itself is silent by contract; this counter is the only
// place a misbehaving client becomes visible.
// Label:
//   - reason: "malformed" (not JSON) or "unknown_type"
var WSMessagesRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ws_messages_rejected_total",
		Help:      "Total number of inbound WebSocket messages silently dropped.",
	},
	[]string{"reason"},
)

// WSQueriesTotal counts handled timer queries.
// Label:
//   - type: "all_timers" or "active_timers"
var WSQueriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ws_queries_total",
		Help:      "Total number of timer queries served over WebSocket.",
	},
	[]string{"type"},
)

// WSUpgradesRejectedTotal counts handshakes refused before the protocol
// upgrade (missing or unresolvable bearer token).
var WSUpgradesRejectedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ws_upgrades_rejected_total",
		Help:      "Total number of WebSocket upgrade requests rejected with 401.",
	},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SignupsTotal counts created accounts.
var SignupsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of accounts created.",
	},
)
