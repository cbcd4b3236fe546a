// Package metrics defines and registers the custom Prometheus metrics of the
// registry API. HTTP request metrics come from the echoprometheus middleware;
// this package only holds the domain-level counters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "registry"

// ── Record metrics ────────────────────────────────────────────────────────────

// RecordsCreatedTotal counts newly registered records.
// Label:
//   - kind: "practitioner" or "client"
var RecordsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_created_total",
		Help:      "Total number of records registered, by kind.",
	},
	[]string{"kind"},
)

// RecordsUpdatedTotal counts successful partial updates.
var RecordsUpdatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_updated_total",
		Help:      "Total number of record updates, by kind.",
	},
	[]string{"kind"},
)

// RecordsDeactivatedTotal counts soft-delete requests that succeeded.
var RecordsDeactivatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_deactivated_total",
		Help:      "Total number of records deactivated, by kind.",
	},
	[]string{"kind"},
)

// ValidationFailuresTotal counts payloads rejected by the validation rules.
// Label:
//   - route: the matched route path (e.g. "/practitioners/:id")
var ValidationFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "validation_failures_total",
		Help:      "Total number of requests rejected with field violations.",
	},
	[]string{"route"},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditEntriesDroppedTotal counts audit entries discarded because a worker queue was full.
var AuditEntriesDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_entries_dropped_total",
		Help:      "Total number of audit entries dropped on a full dispatcher queue.",
	},
)

// AuditQueueDepth tracks the number of entries waiting in each worker channel.
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit entries pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// AuditProcessingDuration measures how long persisting one audit entry takes.
// Label:
//   - result: "ok" or "error"
var AuditProcessingDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "audit_processing_duration_seconds",
		Help:      "Duration of audit entry persistence from dequeue to insert.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)
