// Package metrics defines and registers all custom Prometheus metrics for
// the workforce API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are created with promauto against the default registry, so simply
// importing the package makes them available to the /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "workforce"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts authentication attempts.
// Label:
//   - result: "success" or "failure" (all failure causes are one bucket; the
//     API deliberately does not distinguish them)
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of authentication attempts, by result.",
	},
	[]string{"result"},
)

// ── Leave workflow metrics ────────────────────────────────────────────────────

// LeaveSubmittedTotal counts accepted leave request submissions.
var LeaveSubmittedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "leave_requests_submitted_total",
		Help:      "Total number of leave requests submitted.",
	},
)

// LeaveDecisionsTotal counts committed leave decisions.
// Label:
//   - outcome: "approved" or "rejected"
var LeaveDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "leave_decisions_total",
		Help:      "Total number of leave request decisions, by outcome.",
	},
	[]string{"outcome"},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsDispatchedTotal counts dispatcher delivery attempts.
// Label:
//   - result: "delivered" or "failed" (failed entries stay pending and are
//     retried by the sweeper, so one notification may count several times)
var NotificationsDispatchedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_dispatched_total",
		Help:      "Total number of notification delivery attempts, by result.",
	},
	[]string{"result"},
)
