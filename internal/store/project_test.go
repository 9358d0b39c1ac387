package store_test

import (
	"foliocms/internal/store"

	"database/sql"
	"errors"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"foliocms/internal/models"
)

// testCategory creates a throwaway category for project tests.
func testCategory(t *testing.T, db *sql.DB) string {
	t.Helper()
	id := "test-proj-cat-" + uuid.NewString()[:8]
	if _, err := store.NewCategoryStore(db).Create(id, "Project Test Category"); err != nil {
		t.Fatalf("create test category: %v", err)
	}
	t.Cleanup(func() { cleanCategories(t, db, id) })
	return id
}

func TestProjectStoreCreateWithSubRecords(t *testing.T) {
	db := testDB(t)
	s := store.NewProjectStore(db)
	categoryID := testCategory(t, db)

	slug := "test-project-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanProjects(t, db, slug) })

	created, err := s.Create(&models.Project{
		CategoryID: categoryID,
		Title:      "Full Project",
		Slug:       slug,
		Summary:    "A project with everything attached.",
		Featured:   true,
		Metric:     &models.ProjectMetric{Users: "10k+", Performance: "95", Uptime: "99.9%"},
		Link:       &models.ProjectLink{LiveURL: "https://example.com", RepoURL: "https://git.example.com"},
		Images: []models.ProjectImage{
			{URL: "https://cdn.example.com/1.png", Alt: "first"},
			{URL: "https://cdn.example.com/2.png", Alt: "second"},
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Error("expected non-nil UUID")
	}
	if created.Metric == nil || created.Metric.Users != "10k+" {
		t.Errorf("metric not loaded: %+v", created.Metric)
	}
	if created.Link == nil || created.Link.LiveURL != "https://example.com" {
		t.Errorf("link not loaded: %+v", created.Link)
	}
	if len(created.Images) != 2 {
		t.Fatalf("images: got %d, want 2", len(created.Images))
	}
	// Gallery order follows the incoming slice, not insertion accidents.
	if created.Images[0].Alt != "first" || created.Images[1].Alt != "second" {
		t.Errorf("image order: got [%q %q]", created.Images[0].Alt, created.Images[1].Alt)
	}
}

func TestProjectStoreCreateUnknownCategory(t *testing.T) {
	db := testDB(t)
	s := store.NewProjectStore(db)

	slug := "test-orphan-" + uuid.NewString()[:8]
	_, err := s.Create(&models.Project{
		CategoryID: "no-such-category-" + uuid.NewString()[:8],
		Title:      "Orphan",
		Slug:       slug,
	})
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown category, got %v", err)
	}
}

func TestProjectStoreCreateDuplicateSlug(t *testing.T) {
	db := testDB(t)
	s := store.NewProjectStore(db)
	categoryID := testCategory(t, db)

	slug := "test-dup-slug-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanProjects(t, db, slug) })

	if _, err := s.Create(&models.Project{CategoryID: categoryID, Title: "One", Slug: slug}); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	_, err := s.Create(&models.Project{CategoryID: categoryID, Title: "Two", Slug: slug})
	if !errors.Is(err, store.ErrDuplicateKey) {
		t.Errorf("expected ErrDuplicateKey, got %v", err)
	}
}

func TestProjectStoreUpdateReplacesSubRecords(t *testing.T) {
	db := testDB(t)
	s := store.NewProjectStore(db)
	categoryID := testCategory(t, db)

	slug := "test-update-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanProjects(t, db, slug) })

	created, err := s.Create(&models.Project{
		CategoryID: categoryID,
		Title:      "Before",
		Slug:       slug,
		Metric:     &models.ProjectMetric{Users: "1k"},
		Images:     []models.ProjectImage{{URL: "https://cdn.example.com/old.png"}},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Update drops the metric and replaces the gallery. The incoming state
	// is the full desired state: absent children disappear.
	created.Title = "After"
	created.Metric = nil
	created.Images = []models.ProjectImage{
		{URL: "https://cdn.example.com/new-1.png"},
		{URL: "https://cdn.example.com/new-2.png"},
		{URL: "https://cdn.example.com/new-3.png"},
	}

	updated, err := s.Update(created)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Title != "After" {
		t.Errorf("title: got %q, want %q", updated.Title, "After")
	}
	if updated.Metric != nil {
		t.Errorf("metric should be gone, got %+v", updated.Metric)
	}
	if len(updated.Images) != 3 {
		t.Errorf("images: got %d, want 3", len(updated.Images))
	}
}

func TestProjectStoreDelete(t *testing.T) {
	db := testDB(t)
	s := store.NewProjectStore(db)
	categoryID := testCategory(t, db)

	slug := "test-delete-" + uuid.NewString()[:8]
	created, err := s.Create(&models.Project{
		CategoryID: categoryID,
		Title:      "Doomed",
		Slug:       slug,
		Metric:     &models.ProjectMetric{Users: "0"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := s.Delete(created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	// Sub-records cascade with the project.
	var metricCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM project_metrics WHERE project_id = $1", created.ID).Scan(&metricCount); err != nil {
		t.Fatalf("count metrics: %v", err)
	}
	if metricCount != 0 {
		t.Errorf("orphaned metric rows: %d", metricCount)
	}

	if err := s.Delete(created.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("second Delete: expected ErrNotFound, got %v", err)
	}
}

func TestProjectStoreSyncAssociationsReplaces(t *testing.T) {
	db := testDB(t)
	s := store.NewProjectStore(db)
	technologies := store.NewTechnologyStore(db)
	categoryID := testCategory(t, db)

	suffix := uuid.NewString()[:8]
	techA := "Test React " + suffix
	techB := "Test Vue " + suffix
	techC := "Test Go " + suffix
	slug := "test-sync-" + suffix
	t.Cleanup(func() {
		cleanProjects(t, db, slug)
		cleanTechnologies(t, db, techA, techB, techC)
	})

	for _, name := range []string{techA, techB, techC} {
		if _, _, err := technologies.UpsertByName(name); err != nil {
			t.Fatalf("seed technology %s: %v", name, err)
		}
	}

	project, err := s.Create(&models.Project{CategoryID: categoryID, Title: "Sync", Slug: slug})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// First sync links two technologies.
	result, err := s.SyncAssociations(project.ID, []string{techA, techB}, nil)
	if err != nil {
		t.Fatalf("first SyncAssociations: %v", err)
	}
	if result.Linked != 2 {
		t.Errorf("linked: got %d, want 2", result.Linked)
	}
	if len(result.Skipped) != 0 {
		t.Errorf("skipped: got %v, want none", result.Skipped)
	}

	// Second sync replaces the set entirely: only techC remains.
	result, err = s.SyncAssociations(project.ID, []string{techC}, nil)
	if err != nil {
		t.Fatalf("second SyncAssociations: %v", err)
	}
	if result.Linked != 1 {
		t.Errorf("linked: got %d, want 1", result.Linked)
	}

	found, err := s.FindByID(project.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if !reflect.DeepEqual(found.Technologies, []string{techC}) {
		t.Errorf("technologies: got %v, want [%s]", found.Technologies, techC)
	}
}

func TestProjectStoreSyncAssociationsSkipsUnknown(t *testing.T) {
	db := testDB(t)
	s := store.NewProjectStore(db)
	technologies := store.NewTechnologyStore(db)
	categoryID := testCategory(t, db)

	suffix := uuid.NewString()[:8]
	known := "Test Known " + suffix
	unknown := "Test Unknown " + suffix
	slug := "test-skip-" + suffix
	t.Cleanup(func() {
		cleanProjects(t, db, slug)
		cleanTechnologies(t, db, known)
	})

	if _, _, err := technologies.UpsertByName(known); err != nil {
		t.Fatalf("seed technology: %v", err)
	}

	project, err := s.Create(&models.Project{CategoryID: categoryID, Title: "Skip", Slug: slug})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	result, err := s.SyncAssociations(project.ID, []string{known, unknown}, nil)
	if err != nil {
		t.Fatalf("SyncAssociations: %v", err)
	}
	if result.Linked != 1 {
		t.Errorf("linked: got %d, want 1", result.Linked)
	}
	if len(result.Skipped) != 1 || result.Skipped[0] != unknown {
		t.Errorf("skipped: got %v, want [%s]", result.Skipped, unknown)
	}

	// The unknown key must leave zero join rows behind.
	var joins int
	if err := db.QueryRow("SELECT COUNT(*) FROM project_technologies WHERE project_id = $1", project.ID).Scan(&joins); err != nil {
		t.Fatalf("count joins: %v", err)
	}
	if joins != 1 {
		t.Errorf("join rows: got %d, want 1", joins)
	}
}

func TestProjectStoreSyncAssociationsEmptyTarget(t *testing.T) {
	db := testDB(t)
	s := store.NewProjectStore(db)
	technologies := store.NewTechnologyStore(db)
	categoryID := testCategory(t, db)

	suffix := uuid.NewString()[:8]
	tech := "Test Clear " + suffix
	slug := "test-clear-" + suffix
	t.Cleanup(func() {
		cleanProjects(t, db, slug)
		cleanTechnologies(t, db, tech)
	})

	if _, _, err := technologies.UpsertByName(tech); err != nil {
		t.Fatalf("seed technology: %v", err)
	}

	project, err := s.Create(&models.Project{CategoryID: categoryID, Title: "Clear", Slug: slug})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := s.SyncAssociations(project.ID, []string{tech}, nil); err != nil {
		t.Fatalf("link: %v", err)
	}

	// Empty target set clears every link.
	result, err := s.SyncAssociations(project.ID, nil, nil)
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if result.Linked != 0 {
		t.Errorf("linked: got %d, want 0", result.Linked)
	}

	found, err := s.FindByID(project.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if len(found.Technologies) != 0 {
		t.Errorf("technologies: got %v, want none", found.Technologies)
	}
}

func TestProjectStoreSyncAssociationsMissingProject(t *testing.T) {
	db := testDB(t)
	s := store.NewProjectStore(db)

	_, err := s.SyncAssociations(uuid.New(), []string{"anything"}, nil)
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestProjectStoreSyncAssociationsDeduplicates(t *testing.T) {
	db := testDB(t)
	s := store.NewProjectStore(db)
	technologies := store.NewTechnologyStore(db)
	categoryID := testCategory(t, db)

	suffix := uuid.NewString()[:8]
	tech := "Test Dedup " + suffix
	slug := "test-dedup-" + suffix
	t.Cleanup(func() {
		cleanProjects(t, db, slug)
		cleanTechnologies(t, db, tech)
	})

	if _, _, err := technologies.UpsertByName(tech); err != nil {
		t.Fatalf("seed technology: %v", err)
	}

	project, err := s.Create(&models.Project{CategoryID: categoryID, Title: "Dedup", Slug: slug})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// The same key twice in the target set produces one join row.
	result, err := s.SyncAssociations(project.ID, []string{tech, tech}, nil)
	if err != nil {
		t.Fatalf("SyncAssociations: %v", err)
	}
	if result.Linked != 1 {
		t.Errorf("linked: got %d, want 1", result.Linked)
	}
}
