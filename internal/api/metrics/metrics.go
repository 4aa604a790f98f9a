// Package metrics defines all custom Prometheus metrics for the maintenance
// panel. It is the single source of truth for metric names, labels, and help
// strings; promauto registers everything with the default registry at init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "panel"

// ── Record metrics ────────────────────────────────────────────────────────────

// RecordsCreatedTotal counts successful create operations.
// Label:
//   - entity: "user" or "vendor"
var RecordsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_created_total",
		Help:      "Total number of records created through the panel.",
	},
	[]string{"entity"},
)

// RecordsUpdatedTotal counts successful update operations.
var RecordsUpdatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_updated_total",
		Help:      "Total number of records updated through the panel.",
	},
	[]string{"entity"},
)

// RecordsDeletedTotal counts successful hard deletes.
var RecordsDeletedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_deleted_total",
		Help:      "Total number of records permanently deleted through the panel.",
	},
	[]string{"entity"},
)

// ValidationFailuresTotal counts rejected submissions.
// Labels:
//   - entity: "user" or "vendor"
//   - operation: "create", "update", or "delete"
var ValidationFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "validation_failures_total",
		Help:      "Total number of submissions rejected by validation.",
	},
	[]string{"entity", "operation"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts.
// Label:
//   - outcome: "success" or "failure"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)
