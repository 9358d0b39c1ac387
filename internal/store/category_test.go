package store_test

import (
	"foliocms/internal/store"

	"errors"
	"testing"

	"github.com/google/uuid"

	"foliocms/internal/models"
)

func TestCategoryStoreCreateAndFind(t *testing.T) {
	db := testDB(t)
	s := store.NewCategoryStore(db)

	id := "test-cat-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanCategories(t, db, id) })

	created, err := s.Create(id, "Test Category")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID != id {
		t.Errorf("id: got %q, want %q", created.ID, id)
	}
	if created.Label != "Test Category" {
		t.Errorf("label: got %q, want %q", created.Label, "Test Category")
	}
	if created.ProjectCount != 0 {
		t.Errorf("project_count: got %d, want 0", created.ProjectCount)
	}

	found, err := s.FindByID(id)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found.Label != "Test Category" {
		t.Errorf("label: got %q, want %q", found.Label, "Test Category")
	}
}

func TestCategoryStoreFindMissing(t *testing.T) {
	db := testDB(t)
	s := store.NewCategoryStore(db)

	_, err := s.FindByID("no-such-category-" + uuid.NewString()[:8])
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCategoryStoreCreateDuplicate(t *testing.T) {
	db := testDB(t)
	s := store.NewCategoryStore(db)

	id := "test-dup-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanCategories(t, db, id) })

	if _, err := s.Create(id, "First"); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	_, err := s.Create(id, "Second")
	if !errors.Is(err, store.ErrDuplicateKey) {
		t.Errorf("expected ErrDuplicateKey, got %v", err)
	}
}

func TestCategoryStoreUpsert(t *testing.T) {
	db := testDB(t)
	s := store.NewCategoryStore(db)

	id := "test-upsert-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanCategories(t, db, id) })

	// First call creates.
	first, created, err := s.Upsert(id, "Original")
	if err != nil {
		t.Fatalf("first Upsert: %v", err)
	}
	if !created {
		t.Error("first Upsert should report created=true")
	}
	if first.Label != "Original" {
		t.Errorf("label: got %q, want %q", first.Label, "Original")
	}

	// Second call updates in place, no duplicate row.
	second, created, err := s.Upsert(id, "Renamed")
	if err != nil {
		t.Fatalf("second Upsert: %v", err)
	}
	if created {
		t.Error("second Upsert should report created=false")
	}
	if second.Label != "Renamed" {
		t.Errorf("label: got %q, want %q", second.Label, "Renamed")
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM categories WHERE id = $1", id).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("row count: got %d, want 1", count)
	}
}

func TestCategoryStoreDeleteEmpty(t *testing.T) {
	db := testDB(t)
	s := store.NewCategoryStore(db)

	id := "test-del-" + uuid.NewString()[:8]
	if _, err := s.Create(id, "Deletable"); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := s.Delete(id); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	_, err := s.FindByID(id)
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestCategoryStoreDeleteMissing(t *testing.T) {
	db := testDB(t)
	s := store.NewCategoryStore(db)

	err := s.Delete("no-such-category-" + uuid.NewString()[:8])
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCategoryStoreDeleteWithDependents(t *testing.T) {
	db := testDB(t)
	s := store.NewCategoryStore(db)
	projects := store.NewProjectStore(db)

	id := "test-guard-" + uuid.NewString()[:8]
	slug := "test-guard-project-" + uuid.NewString()[:8]
	t.Cleanup(func() {
		cleanProjects(t, db, slug)
		cleanCategories(t, db, id)
	})

	if _, err := s.Create(id, "Guarded"); err != nil {
		t.Fatalf("Create category: %v", err)
	}
	if _, err := projects.Create(&models.Project{
		CategoryID: id,
		Title:      "Guard Project",
		Slug:       slug,
	}); err != nil {
		t.Fatalf("Create project: %v", err)
	}

	err := s.Delete(id)
	var conflict *store.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if conflict.DependentCount != 1 {
		t.Errorf("dependent count: got %d, want 1", conflict.DependentCount)
	}
	if conflict.Entity != "category" {
		t.Errorf("entity: got %q, want %q", conflict.Entity, "category")
	}

	// The category must survive a refused delete.
	if _, err := s.FindByID(id); err != nil {
		t.Errorf("category should still exist: %v", err)
	}
}

func TestCategoryStoreRecalculateCount(t *testing.T) {
	db := testDB(t)
	s := store.NewCategoryStore(db)
	projects := store.NewProjectStore(db)

	id := "test-recalc-" + uuid.NewString()[:8]
	slugA := "test-recalc-a-" + uuid.NewString()[:8]
	slugB := "test-recalc-b-" + uuid.NewString()[:8]
	t.Cleanup(func() {
		cleanProjects(t, db, slugA, slugB)
		cleanCategories(t, db, id)
	})

	if _, err := s.Create(id, "Recalc"); err != nil {
		t.Fatalf("Create category: %v", err)
	}
	for _, slug := range []string{slugA, slugB} {
		if _, err := projects.Create(&models.Project{
			CategoryID: id,
			Title:      "Recalc Project",
			Slug:       slug,
		}); err != nil {
			t.Fatalf("Create project %s: %v", slug, err)
		}
	}

	// The counter does not move on writes: it still reads 0.
	stale, err := s.FindByID(id)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if stale.ProjectCount != 0 {
		t.Errorf("counter before recalc: got %d, want 0", stale.ProjectCount)
	}

	newCount, err := s.RecalculateCount(id)
	if err != nil {
		t.Fatalf("RecalculateCount: %v", err)
	}
	if newCount != 2 {
		t.Errorf("recalculated count: got %d, want 2", newCount)
	}

	fresh, err := s.FindByID(id)
	if err != nil {
		t.Fatalf("FindByID after recalc: %v", err)
	}
	if fresh.ProjectCount != 2 {
		t.Errorf("stored counter: got %d, want 2", fresh.ProjectCount)
	}
}

func TestCategoryStoreCounterStaysStaleAcrossDeletes(t *testing.T) {
	db := testDB(t)
	s := store.NewCategoryStore(db)
	projects := store.NewProjectStore(db)

	id := "test-stale-" + uuid.NewString()[:8]
	slugA := "test-stale-a-" + uuid.NewString()[:8]
	slugB := "test-stale-b-" + uuid.NewString()[:8]
	t.Cleanup(func() {
		cleanProjects(t, db, slugA, slugB)
		cleanCategories(t, db, id)
	})

	if _, err := s.Create(id, "Stale"); err != nil {
		t.Fatalf("Create category: %v", err)
	}
	var projectB *models.Project
	for _, slug := range []string{slugA, slugB} {
		p, err := projects.Create(&models.Project{
			CategoryID: id,
			Title:      "Stale Project",
			Slug:       slug,
		})
		if err != nil {
			t.Fatalf("Create project %s: %v", slug, err)
		}
		projectB = p
	}

	if n, err := s.RecalculateCount(id); err != nil || n != 2 {
		t.Fatalf("RecalculateCount: got %d, %v; want 2", n, err)
	}

	// Deleting a project does not touch the counter.
	if err := projects.Delete(projectB.ID); err != nil {
		t.Fatalf("Delete project: %v", err)
	}
	stale, err := s.FindByID(id)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if stale.ProjectCount != 2 {
		t.Errorf("counter after delete: got %d, want stale 2", stale.ProjectCount)
	}

	if n, err := s.RecalculateCount(id); err != nil || n != 1 {
		t.Errorf("RecalculateCount after delete: got %d, %v; want 1", n, err)
	}
}

func TestCategoryStoreRecalculateCounts(t *testing.T) {
	db := testDB(t)
	s := store.NewCategoryStore(db)
	projects := store.NewProjectStore(db)

	id := "test-recalc-all-" + uuid.NewString()[:8]
	slug := "test-recalc-all-" + uuid.NewString()[:8]
	t.Cleanup(func() {
		cleanProjects(t, db, slug)
		cleanCategories(t, db, id)
	})

	if _, err := s.Create(id, "Recalc All"); err != nil {
		t.Fatalf("Create category: %v", err)
	}
	if _, err := projects.Create(&models.Project{
		CategoryID: id,
		Title:      "Recalc All Project",
		Slug:       slug,
	}); err != nil {
		t.Fatalf("Create project: %v", err)
	}

	// Poison the counter so the run has something to correct.
	if _, err := db.Exec("UPDATE categories SET project_count = 99 WHERE id = $1", id); err != nil {
		t.Fatalf("poison counter: %v", err)
	}

	results, err := s.RecalculateCounts()
	if err != nil {
		t.Fatalf("RecalculateCounts: %v", err)
	}

	var found bool
	for _, res := range results {
		if res.ID != id {
			continue
		}
		found = true
		if res.Err != nil {
			t.Errorf("row error: %v", res.Err)
		}
		if res.NewCount != 1 {
			t.Errorf("new count: got %d, want 1", res.NewCount)
		}
	}
	if !found {
		t.Errorf("no result row for category %s", id)
	}

	fresh, err := s.FindByID(id)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if fresh.ProjectCount != 1 {
		t.Errorf("stored counter: got %d, want 1", fresh.ProjectCount)
	}
}
