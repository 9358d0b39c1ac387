// Package metrics provides custom Prometheus metrics for content store operations.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// ContentMetrics contains all Prometheus metrics related to content
// maintenance: association syncs, counter recalculation and delete guards.
type ContentMetrics struct {
	// Association sync metrics
	SyncRunsTotal    *prometheus.CounterVec // Sync runs by relation and status
	SyncLinkedTotal  *prometheus.CounterVec // Join rows written by relation
	SyncSkippedTotal *prometheus.CounterVec // Unresolvable keys skipped by relation

	// Counter recalculation metrics
	RecalcRunsTotal    *prometheus.CounterVec // Recalculation runs by entity and status
	RecalcRowsUpdated  *prometheus.CounterVec // Rows whose counter changed, by entity
	RecalcRowsFailed   *prometheus.CounterVec // Rows that failed during a run, by entity

	// Delete guard metrics
	DeleteConflictsTotal *prometheus.CounterVec // Deletes refused because of live dependents, by entity

	// Upsert metrics
	UpsertsTotal *prometheus.CounterVec // Upserts by entity and outcome (created, updated)

	registry *prometheus.Registry
}

// NewContentMetrics creates a new instance of ContentMetrics.
// It requires a Prometheus registry to register the metrics.
// It returns an error if metric registration fails.
func NewContentMetrics(registry *prometheus.Registry) (*ContentMetrics, error) {
	m := &ContentMetrics{registry: registry}
	if err := m.initMetrics(); err != nil {
		return nil, fmt.Errorf("failed to initialize content metrics: %w", err)
	}
	if err := registry.Register(m); err != nil {
		return nil, fmt.Errorf("failed to register content metrics: %w", err)
	}
	return m, nil
}

// initMetrics initializes all metrics for ContentMetrics.
func (m *ContentMetrics) initMetrics() error {
	m.SyncRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_sync_runs_total",
			Help: "Total number of association sync runs by relation and status",
		},
		[]string{"relation", "status"}, // status: success, partial, error
	)

	m.SyncLinkedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_sync_linked_total",
			Help: "Total number of join rows written by association syncs",
		},
		[]string{"relation"},
	)

	m.SyncSkippedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_sync_skipped_total",
			Help: "Total number of unresolvable keys skipped by association syncs",
		},
		[]string{"relation"},
	)

	m.RecalcRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_recalc_runs_total",
			Help: "Total number of counter recalculation runs by entity and status",
		},
		[]string{"entity", "status"}, // status: success, partial
	)

	m.RecalcRowsUpdated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_recalc_rows_updated_total",
			Help: "Total number of rows updated during counter recalculation",
		},
		[]string{"entity"},
	)

	m.RecalcRowsFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_recalc_rows_failed_total",
			Help: "Total number of rows that failed during counter recalculation",
		},
		[]string{"entity"},
	)

	m.DeleteConflictsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_delete_conflicts_total",
			Help: "Total number of deletes refused because live dependents exist",
		},
		[]string{"entity"},
	)

	m.UpsertsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_upserts_total",
			Help: "Total number of upserts by entity and outcome",
		},
		[]string{"entity", "outcome"}, // outcome: created, updated
	)

	return nil
}

// RecordSync records the outcome of an association sync run.
func (m *ContentMetrics) RecordSync(relation string, linked, skipped int) {
	status := "success"
	if skipped > 0 {
		status = "partial"
	}
	m.SyncRunsTotal.WithLabelValues(relation, status).Inc()
	m.SyncLinkedTotal.WithLabelValues(relation).Add(float64(linked))
	m.SyncSkippedTotal.WithLabelValues(relation).Add(float64(skipped))
}

// RecordSyncError records a failed association sync run.
func (m *ContentMetrics) RecordSyncError(relation string) {
	m.SyncRunsTotal.WithLabelValues(relation, "error").Inc()
}

// RecordRecalc records the outcome of a counter recalculation run.
func (m *ContentMetrics) RecordRecalc(entity string, updated, failed int) {
	status := "success"
	if failed > 0 {
		status = "partial"
	}
	m.RecalcRunsTotal.WithLabelValues(entity, status).Inc()
	m.RecalcRowsUpdated.WithLabelValues(entity).Add(float64(updated))
	m.RecalcRowsFailed.WithLabelValues(entity).Add(float64(failed))
}

// RecordDeleteConflict records a delete refused by the referential guard.
func (m *ContentMetrics) RecordDeleteConflict(entity string) {
	m.DeleteConflictsTotal.WithLabelValues(entity).Inc()
}

// RecordUpsert records an upsert outcome.
func (m *ContentMetrics) RecordUpsert(entity string, created bool) {
	outcome := "updated"
	if created {
		outcome = "created"
	}
	m.UpsertsTotal.WithLabelValues(entity, outcome).Inc()
}

// Describe implements the prometheus.Collector interface.
func (m *ContentMetrics) Describe(ch chan<- *prometheus.Desc) {
	m.SyncRunsTotal.Describe(ch)
	m.SyncLinkedTotal.Describe(ch)
	m.SyncSkippedTotal.Describe(ch)
	m.RecalcRunsTotal.Describe(ch)
	m.RecalcRowsUpdated.Describe(ch)
	m.RecalcRowsFailed.Describe(ch)
	m.DeleteConflictsTotal.Describe(ch)
	m.UpsertsTotal.Describe(ch)
}

// Collect implements the prometheus.Collector interface.
func (m *ContentMetrics) Collect(ch chan<- prometheus.Metric) {
	m.SyncRunsTotal.Collect(ch)
	m.SyncLinkedTotal.Collect(ch)
	m.SyncSkippedTotal.Collect(ch)
	m.RecalcRunsTotal.Collect(ch)
	m.RecalcRowsUpdated.Collect(ch)
	m.RecalcRowsFailed.Collect(ch)
	m.DeleteConflictsTotal.Collect(ch)
	m.UpsertsTotal.Collect(ch)
}
