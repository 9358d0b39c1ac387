package database

import (
	"testing"
)

func TestSeedIdempotent(t *testing.T) {
	db, err := Connect(testDSN())
	if err != nil {
		t.Skipf("skipping: DB not available: %v", err)
	}
	defer db.Close()

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	// Seed goes through natural-key upserts, so running it twice must
	// converge on the same row counts instead of duplicating content.
	if err := Seed(db); err != nil {
		t.Fatalf("first Seed: %v", err)
	}

	counts := func() map[string]int {
		t.Helper()
		out := make(map[string]int)
		for _, table := range []string{
			"categories", "technologies", "features", "services",
			"service_technologies", "faq_categories", "faq_items",
			"blog_categories", "blog_tags", "team_members",
		} {
			var n int
			if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
				t.Fatalf("count %s: %v", table, err)
			}
			out[table] = n
		}
		return out
	}

	first := counts()

	if err := Seed(db); err != nil {
		t.Fatalf("second Seed: %v", err)
	}

	second := counts()
	for table, n := range first {
		if second[table] != n {
			t.Errorf("%s: count changed across seeds: %d -> %d", table, n, second[table])
		}
	}

	// Spot-check seeded content.
	var label string
	if err := db.QueryRow("SELECT label FROM categories WHERE id = 'web'").Scan(&label); err != nil {
		t.Fatalf("find web category: %v", err)
	}
	if label != "Web Applications" {
		t.Errorf("web category label: got %q", label)
	}

	var techCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM technologies WHERE name = 'Go'").Scan(&techCount); err != nil {
		t.Fatalf("count Go technology: %v", err)
	}
	if techCount != 1 {
		t.Errorf("expected exactly 1 Go technology, got %d", techCount)
	}
}
