// Package metrics defines and registers all custom Prometheus metrics for the
// siteops gateway. It is the single source of truth for metric names, labels,
// and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "siteops"

// SheetCallsTotal counts calls to the spreadsheet endpoint.
// Labels:
//   - action: the action name sent (e.g. "createExpense")
//   - outcome: "success", "app_error", or "transport_error"
var SheetCallsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sheet_calls_total",
		Help:      "Total number of calls issued to the spreadsheet endpoint.",
	},
	[]string{"action", "outcome"},
)

// SheetCallDuration measures endpoint round-trip time per action.
var SheetCallDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "sheet_call_duration_seconds",
		Help:      "Duration of spreadsheet endpoint calls, from request to decoded envelope.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"action"},
)

// MockCallsTotal counts calls resolved in demo mode without network I/O.
var MockCallsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mock_calls_total",
		Help:      "Total number of calls resolved by the mock fallback.",
	},
	[]string{"action"},
)

// SessionsCreatedTotal counts successful identity-token exchanges.
var SessionsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_created_total",
		Help:      "Total number of upstream sessions created from identity tokens.",
	},
)

// SubmissionsTotal counts accepted business submissions.
// Label:
//   - kind: "expense", "attendance", "report", "photo", "meeting", "project", "notice"
var SubmissionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "submissions_total",
		Help:      "Total number of business submissions accepted, by kind.",
	},
	[]string{"kind"},
)
