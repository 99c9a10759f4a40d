// Package metrics holds the prometheus collectors shared by the ledger,
// the request lifecycle and the anniversary sweep.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var LeaveTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "leave",
	Name:      "request_transitions_total",
	Help:      "Leave request status transitions applied, by from/to status and classification.",
}, []string{"from", "to", "classification"})

var LeaveSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "leave",
	Name:      "request_submissions_total",
	Help:      "Leave requests accepted into PENDING, by classification.",
}, []string{"classification"})

var LedgerIntegrityFaults = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "leave",
	Name:      "ledger_integrity_faults_total",
	Help:      "Transitions aborted because the referenced balance row was missing or inconsistent.",
})

var ConcurrencyConflicts = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "leave",
	Name:      "concurrency_conflicts_total",
	Help:      "Optimistic precondition failures, by entity.",
}, []string{"entity"})

var BalancesCreated = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "leave",
	Name:      "balances_created_total",
	Help:      "Balance rows materialized, by origin (sweep, request, api).",
}, []string{"origin"})

var SweepRuns = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "leave",
	Name:      "sweep_runs_total",
	Help:      "Anniversary sweep runs, by result.",
}, []string{"result"})

var SweepDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "leave",
	Name:      "sweep_duration_seconds",
	Help:      "Wall time of a full anniversary sweep.",
	Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12),
})

var OutboxPublished = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "leave",
	Name:      "outbox_events_total",
	Help:      "Outbox rows processed by the producer worker, by result.",
}, []string{"result"})
