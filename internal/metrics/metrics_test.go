package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestNewContentMetricsRegisters(t *testing.T) {
	registry := prometheus.NewRegistry()

	m, err := NewContentMetrics(registry)
	if err != nil {
		t.Fatalf("NewContentMetrics: %v", err)
	}

	m.RecordSync("project_technologies", 3, 1)
	m.RecordSyncError("project_features")
	m.RecordRecalc("categories", 2, 0)
	m.RecordDeleteConflict("categories")
	m.RecordUpsert("technologies", true)
	m.RecordUpsert("technologies", false)

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}

	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}

	for _, want := range []string{
		"content_sync_runs_total",
		"content_sync_linked_total",
		"content_sync_skipped_total",
		"content_recalc_runs_total",
		"content_recalc_rows_updated_total",
		"content_delete_conflicts_total",
		"content_upserts_total",
	} {
		if !names[want] {
			t.Errorf("metric family %q not gathered", want)
		}
	}
}

func TestNewContentMetricsDoubleRegisterFails(t *testing.T) {
	registry := prometheus.NewRegistry()

	if _, err := NewContentMetrics(registry); err != nil {
		t.Fatalf("first NewContentMetrics: %v", err)
	}
	if _, err := NewContentMetrics(registry); err == nil {
		t.Error("expected error registering content metrics twice")
	}
}
