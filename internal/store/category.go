// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"foliocms/internal/models"
)

// CategoryStore manages project categories and their denormalized
// project_count column.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

const categoryColumns = `id, label, project_count, created_at, updated_at`

// scanCategory scans a row into a Category struct.
func scanCategory(scanner interface{ Scan(...any) error }) (*models.Category, error) {
	var c models.Category
	err := scanner.Scan(&c.ID, &c.Label, &c.ProjectCount, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns all categories ordered by id. The project_count column is
// returned as stored; callers wanting fresh numbers run RecalculateCounts
// first.
func (s *CategoryStore) List() ([]models.Category, error) {
	rows, err := s.db.Query(`SELECT ` + categoryColumns + ` FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var items []models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// FindByID retrieves a category by its slug-form id.
func (s *CategoryStore) FindByID(id string) (*models.Category, error) {
	row := s.db.QueryRow(`SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("category %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return c, nil
}

// Create inserts a new category. A colliding id surfaces as ErrDuplicateKey.
func (s *CategoryStore) Create(id, label string) (*models.Category, error) {
	row := s.db.QueryRow(`
		INSERT INTO categories (id, label)
		VALUES ($1, $2)
		RETURNING `+categoryColumns,
		id, label,
	)
	result, err := scanCategory(row)
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("category %q: %w", id, ErrDuplicateKey)
	}
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return result, nil
}

// Update changes a category's label.
func (s *CategoryStore) Update(id, label string) (*models.Category, error) {
	row := s.db.QueryRow(`
		UPDATE categories SET label = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+categoryColumns,
		label, id,
	)
	result, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("category %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return result, nil
}

// Upsert creates the category if its id is new, otherwise updates the
// label. The returned bool reports whether a row was created. Safe to call
// repeatedly with the same input.
func (s *CategoryStore) Upsert(id, label string) (*models.Category, bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRow(`SELECT `+categoryColumns+` FROM categories WHERE id = $1 FOR UPDATE`, id)
	existing, err := scanCategory(row)
	switch {
	case err == sql.ErrNoRows:
		row = tx.QueryRow(`
			INSERT INTO categories (id, label)
			VALUES ($1, $2)
			RETURNING `+categoryColumns,
			id, label,
		)
		created, err := scanCategory(row)
		if isUniqueViolation(err) {
			// Lost the race to a concurrent creator.
			return nil, false, fmt.Errorf("category %q: %w", id, ErrDuplicateKey)
		}
		if err != nil {
			return nil, false, fmt.Errorf("upsert insert category: %w", err)
		}
		if err := tx.Commit(); err != nil {
			return nil, false, fmt.Errorf("upsert commit: %w", err)
		}
		return created, true, nil

	case err != nil:
		return nil, false, fmt.Errorf("upsert find category: %w", err)
	}

	if existing.Label != label {
		row = tx.QueryRow(`
			UPDATE categories SET label = $1, updated_at = NOW()
			WHERE id = $2
			RETURNING `+categoryColumns,
			label, id,
		)
		existing, err = scanCategory(row)
		if err != nil {
			return nil, false, fmt.Errorf("upsert update category: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("upsert commit: %w", err)
	}
	return existing, false, nil
}

// Delete removes a category, refusing with a ConflictError while projects
// still reference it. The dependent count and the delete run in one
// transaction with the category row locked, so no project can slip in
// between the check and the delete.
func (s *CategoryStore) Delete(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var locked string
	err = tx.QueryRow(`SELECT id FROM categories WHERE id = $1 FOR UPDATE`, id).Scan(&locked)
	if err == sql.ErrNoRows {
		return fmt.Errorf("category %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("lock category: %w", err)
	}

	var dependents int
	err = tx.QueryRow(`SELECT COUNT(*) FROM projects WHERE category_id = $1`, id).Scan(&dependents)
	if err != nil {
		return fmt.Errorf("count category projects: %w", err)
	}
	if dependents > 0 {
		return &ConflictError{Entity: "category", ID: id, DependentCount: dependents}
	}

	if _, err := tx.Exec(`DELETE FROM categories WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return tx.Commit()
}

// RecalculateCounts refreshes project_count for every category from the
// projects table. Each category is updated in its own statement, so one
// failure does not stop the rest; per-row outcomes are returned in order.
func (s *CategoryStore) RecalculateCounts() ([]CountResult, error) {
	rows, err := s.db.Query(`SELECT id FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list category ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan category id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list category ids: %w", err)
	}

	results := make([]CountResult, 0, len(ids))
	for _, id := range ids {
		count, err := s.RecalculateCount(id)
		results = append(results, CountResult{ID: id, NewCount: count, Err: err})
	}
	return results, nil
}

// RecalculateCount refreshes project_count for a single category and
// returns the new value. The count and the write happen in one statement,
// so the stored value is snapshot-consistent for this category.
func (s *CategoryStore) RecalculateCount(id string) (int, error) {
	var count int
	err := s.db.QueryRow(`
		UPDATE categories
		SET project_count = (SELECT COUNT(*) FROM projects WHERE category_id = categories.id),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING project_count
	`, id).Scan(&count)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("category %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("recalculate category count: %w", err)
	}
	return count, nil
}
