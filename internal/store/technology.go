// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"foliocms/internal/models"
)

// TechnologyStore manages the technologies catalog. Rows are only ever
// created through UpsertByName; nothing in the system deletes them.
type TechnologyStore struct {
	db *sql.DB
}

// NewTechnologyStore returns a new TechnologyStore.
func NewTechnologyStore(db *sql.DB) *TechnologyStore {
	return &TechnologyStore{db: db}
}

// List returns all technologies ordered by name.
func (s *TechnologyStore) List() ([]models.Technology, error) {
	rows, err := s.db.Query(`SELECT id, name, created_at FROM technologies ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list technologies: %w", err)
	}
	defer rows.Close()

	var items []models.Technology
	for rows.Next() {
		var t models.Technology
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan technology: %w", err)
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

// UpsertByName returns the technology with the given name, creating it if
// absent. The bool reports whether a row was created. A second call with
// the same name is a no-op.
func (s *TechnologyStore) UpsertByName(name string) (*models.Technology, bool, error) {
	var t models.Technology
	err := s.db.QueryRow(`SELECT id, name, created_at FROM technologies WHERE name = $1`, name).
		Scan(&t.ID, &t.Name, &t.CreatedAt)
	if err == nil {
		return &t, false, nil
	}
	if err != sql.ErrNoRows {
		return nil, false, fmt.Errorf("find technology by name: %w", err)
	}

	err = s.db.QueryRow(`INSERT INTO technologies (name) VALUES ($1) RETURNING id, name, created_at`, name).
		Scan(&t.ID, &t.Name, &t.CreatedAt)
	if isUniqueViolation(err) {
		return nil, false, fmt.Errorf("technology %q: %w", name, ErrDuplicateKey)
	}
	if err != nil {
		return nil, false, fmt.Errorf("create technology: %w", err)
	}
	return &t, true, nil
}
