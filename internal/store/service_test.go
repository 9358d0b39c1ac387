package store_test

import (
	"foliocms/internal/store"

	"errors"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"foliocms/internal/models"
)

func TestServiceStoreUpsert(t *testing.T) {
	db := testDB(t)
	s := store.NewServiceStore(db)

	slug := "test-service-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanServices(t, db, slug) })

	first, created, err := s.Upsert(&models.Service{
		Slug:        slug,
		Name:        "Consulting",
		Description: "First version.",
	})
	if err != nil {
		t.Fatalf("first Upsert: %v", err)
	}
	if !created {
		t.Error("first Upsert should report created=true")
	}

	second, created, err := s.Upsert(&models.Service{
		Slug:        slug,
		Name:        "Consulting",
		Description: "Second version.",
		SortOrder:   3,
	})
	if err != nil {
		t.Fatalf("second Upsert: %v", err)
	}
	if created {
		t.Error("second Upsert should report created=false")
	}
	if second.ID != first.ID {
		t.Errorf("id changed across upserts: %s vs %s", first.ID, second.ID)
	}
	if second.Description != "Second version." {
		t.Errorf("description: got %q", second.Description)
	}
	if second.SortOrder != 3 {
		t.Errorf("sort_order: got %d, want 3", second.SortOrder)
	}
}

func TestServiceStoreSyncTechnologies(t *testing.T) {
	db := testDB(t)
	s := store.NewServiceStore(db)
	technologies := store.NewTechnologyStore(db)

	suffix := uuid.NewString()[:8]
	slug := "test-svc-sync-" + suffix
	techA := "Test Svc Tech A " + suffix
	techB := "Test Svc Tech B " + suffix
	t.Cleanup(func() {
		cleanServices(t, db, slug)
		cleanTechnologies(t, db, techA, techB)
	})

	for _, name := range []string{techA, techB} {
		if _, _, err := technologies.UpsertByName(name); err != nil {
			t.Fatalf("seed technology %s: %v", name, err)
		}
	}

	service, _, err := s.Upsert(&models.Service{Slug: slug, Name: "Sync Service"})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	result, err := s.SyncTechnologies(service.ID, []string{techA, techB})
	if err != nil {
		t.Fatalf("SyncTechnologies: %v", err)
	}
	if result.Linked != 2 {
		t.Errorf("linked: got %d, want 2", result.Linked)
	}

	// Replace with just techB.
	if _, err := s.SyncTechnologies(service.ID, []string{techB}); err != nil {
		t.Fatalf("second SyncTechnologies: %v", err)
	}

	found, err := s.FindBySlug(slug)
	if err != nil {
		t.Fatalf("FindBySlug: %v", err)
	}
	if !reflect.DeepEqual(found.Technologies, []string{techB}) {
		t.Errorf("technologies: got %v, want [%s]", found.Technologies, techB)
	}
}

func TestServiceStoreDelete(t *testing.T) {
	db := testDB(t)
	s := store.NewServiceStore(db)

	slug := "test-svc-del-" + uuid.NewString()[:8]
	service, _, err := s.Upsert(&models.Service{Slug: slug, Name: "Doomed Service"})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	if err := s.Delete(service.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(service.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("second Delete: expected ErrNotFound, got %v", err)
	}
	if _, err := s.FindBySlug(slug); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("FindBySlug after delete: expected ErrNotFound, got %v", err)
	}
}
