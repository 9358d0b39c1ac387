// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"foliocms/internal/models"
)

// FeatureStore manages the features catalog. Same lifecycle as
// TechnologyStore: name-keyed upserts, no deletes.
type FeatureStore struct {
	db *sql.DB
}

// NewFeatureStore returns a new FeatureStore.
func NewFeatureStore(db *sql.DB) *FeatureStore {
	return &FeatureStore{db: db}
}

// List returns all features ordered by name.
func (s *FeatureStore) List() ([]models.Feature, error) {
	rows, err := s.db.Query(`SELECT id, name, created_at FROM features ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list features: %w", err)
	}
	defer rows.Close()

	var items []models.Feature
	for rows.Next() {
		var f models.Feature
		if err := rows.Scan(&f.ID, &f.Name, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan feature: %w", err)
		}
		items = append(items, f)
	}
	return items, rows.Err()
}

// UpsertByName returns the feature with the given name, creating it if
// absent. The bool reports whether a row was created.
func (s *FeatureStore) UpsertByName(name string) (*models.Feature, bool, error) {
	var f models.Feature
	err := s.db.QueryRow(`SELECT id, name, created_at FROM features WHERE name = $1`, name).
		Scan(&f.ID, &f.Name, &f.CreatedAt)
	if err == nil {
		return &f, false, nil
	}
	if err != sql.ErrNoRows {
		return nil, false, fmt.Errorf("find feature by name: %w", err)
	}

	err = s.db.QueryRow(`INSERT INTO features (name) VALUES ($1) RETURNING id, name, created_at`, name).
		Scan(&f.ID, &f.Name, &f.CreatedAt)
	if isUniqueViolation(err) {
		return nil, false, fmt.Errorf("feature %q: %w", name, ErrDuplicateKey)
	}
	if err != nil {
		return nil, false, fmt.Errorf("create feature: %w", err)
	}
	return &f, true, nil
}
