// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"foliocms/internal/models"
)

// FAQStore manages FAQ categories and their items.
type FAQStore struct {
	db *sql.DB
}

// NewFAQStore returns a new FAQStore.
func NewFAQStore(db *sql.DB) *FAQStore {
	return &FAQStore{db: db}
}

// ListCategories returns all FAQ categories with live item counts.
func (s *FAQStore) ListCategories() ([]models.FAQCategory, error) {
	rows, err := s.db.Query(`
		SELECT c.id, c.name, c.icon, COUNT(i.id) AS item_count
		FROM faq_categories c
		LEFT JOIN faq_items i ON i.category = c.id
		GROUP BY c.id
		ORDER BY c.id
	`)
	if err != nil {
		return nil, fmt.Errorf("list faq categories: %w", err)
	}
	defer rows.Close()

	var items []models.FAQCategory
	for rows.Next() {
		var c models.FAQCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Icon, &c.ItemCount); err != nil {
			return nil, fmt.Errorf("scan faq category: %w", err)
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// UpsertCategory creates or updates an FAQ category by id. The bool
// reports whether a row was created.
func (s *FAQStore) UpsertCategory(c *models.FAQCategory) (*models.FAQCategory, bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var existing models.FAQCategory
	err = tx.QueryRow(`SELECT id, name, icon FROM faq_categories WHERE id = $1 FOR UPDATE`, c.ID).
		Scan(&existing.ID, &existing.Name, &existing.Icon)
	switch {
	case err == sql.ErrNoRows:
		var created models.FAQCategory
		err = tx.QueryRow(`
			INSERT INTO faq_categories (id, name, icon)
			VALUES ($1, $2, $3)
			RETURNING id, name, icon`,
			c.ID, c.Name, c.Icon,
		).Scan(&created.ID, &created.Name, &created.Icon)
		if isUniqueViolation(err) {
			return nil, false, fmt.Errorf("faq category %q: %w", c.ID, ErrDuplicateKey)
		}
		if err != nil {
			return nil, false, fmt.Errorf("upsert insert faq category: %w", err)
		}
		if err := tx.Commit(); err != nil {
			return nil, false, fmt.Errorf("upsert commit: %w", err)
		}
		return &created, true, nil

	case err != nil:
		return nil, false, fmt.Errorf("upsert find faq category: %w", err)
	}

	var updated models.FAQCategory
	err = tx.QueryRow(`
		UPDATE faq_categories SET name = $1, icon = $2
		WHERE id = $3
		RETURNING id, name, icon`,
		c.Name, c.Icon, c.ID,
	).Scan(&updated.ID, &updated.Name, &updated.Icon)
	if err != nil {
		return nil, false, fmt.Errorf("upsert update faq category: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("upsert commit: %w", err)
	}
	return &updated, false, nil
}

// DeleteCategory removes an FAQ category, refusing with a ConflictError
// while items still reference it. Check and delete share one transaction
// with the category row locked.
func (s *FAQStore) DeleteCategory(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var locked string
	err = tx.QueryRow(`SELECT id FROM faq_categories WHERE id = $1 FOR UPDATE`, id).Scan(&locked)
	if err == sql.ErrNoRows {
		return fmt.Errorf("faq category %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("lock faq category: %w", err)
	}

	var dependents int
	err = tx.QueryRow(`SELECT COUNT(*) FROM faq_items WHERE category = $1`, id).Scan(&dependents)
	if err != nil {
		return fmt.Errorf("count faq items: %w", err)
	}
	if dependents > 0 {
		return &ConflictError{Entity: "faq category", ID: id, DependentCount: dependents}
	}

	if _, err := tx.Exec(`DELETE FROM faq_categories WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete faq category: %w", err)
	}
	return tx.Commit()
}

// ListItems returns FAQ items, optionally filtered to one category.
func (s *FAQStore) ListItems(category string) ([]models.FAQItem, error) {
	query := `SELECT id, category, question, answer, popular FROM faq_items ORDER BY id`
	args := []any{}
	if category != "" {
		query = `SELECT id, category, question, answer, popular FROM faq_items WHERE category = $1 ORDER BY id`
		args = append(args, category)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list faq items: %w", err)
	}
	defer rows.Close()

	var items []models.FAQItem
	for rows.Next() {
		var i models.FAQItem
		if err := rows.Scan(&i.ID, &i.Category, &i.Question, &i.Answer, &i.Popular); err != nil {
			return nil, fmt.Errorf("scan faq item: %w", err)
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

// ListPopular returns items flagged for the condensed FAQ view.
func (s *FAQStore) ListPopular() ([]models.FAQItem, error) {
	rows, err := s.db.Query(`SELECT id, category, question, answer, popular FROM faq_items WHERE popular ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list popular faq items: %w", err)
	}
	defer rows.Close()

	var items []models.FAQItem
	for rows.Next() {
		var i models.FAQItem
		if err := rows.Scan(&i.ID, &i.Category, &i.Question, &i.Answer, &i.Popular); err != nil {
			return nil, fmt.Errorf("scan faq item: %w", err)
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

// UpsertItem creates or updates an FAQ item by its numeric id. An unknown
// category surfaces as ErrNotFound (the FK refuses it).
func (s *FAQStore) UpsertItem(item *models.FAQItem) (*models.FAQItem, bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var existing models.FAQItem
	err = tx.QueryRow(`SELECT id, category, question, answer, popular FROM faq_items WHERE id = $1 FOR UPDATE`, item.ID).
		Scan(&existing.ID, &existing.Category, &existing.Question, &existing.Answer, &existing.Popular)
	switch {
	case err == sql.ErrNoRows:
		var created models.FAQItem
		err = tx.QueryRow(`
			INSERT INTO faq_items (id, category, question, answer, popular)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, category, question, answer, popular`,
			item.ID, item.Category, item.Question, item.Answer, item.Popular,
		).Scan(&created.ID, &created.Category, &created.Question, &created.Answer, &created.Popular)
		if isUniqueViolation(err) {
			return nil, false, fmt.Errorf("faq item %d: %w", item.ID, ErrDuplicateKey)
		}
		if isForeignKeyViolation(err) {
			return nil, false, fmt.Errorf("faq category %q: %w", item.Category, ErrNotFound)
		}
		if err != nil {
			return nil, false, fmt.Errorf("upsert insert faq item: %w", err)
		}
		if err := tx.Commit(); err != nil {
			return nil, false, fmt.Errorf("upsert commit: %w", err)
		}
		return &created, true, nil

	case err != nil:
		return nil, false, fmt.Errorf("upsert find faq item: %w", err)
	}

	var updated models.FAQItem
	err = tx.QueryRow(`
		UPDATE faq_items SET category = $1, question = $2, answer = $3, popular = $4
		WHERE id = $5
		RETURNING id, category, question, answer, popular`,
		item.Category, item.Question, item.Answer, item.Popular, item.ID,
	).Scan(&updated.ID, &updated.Category, &updated.Question, &updated.Answer, &updated.Popular)
	if isForeignKeyViolation(err) {
		return nil, false, fmt.Errorf("faq category %q: %w", item.Category, ErrNotFound)
	}
	if err != nil {
		return nil, false, fmt.Errorf("upsert update faq item: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("upsert commit: %w", err)
	}
	return &updated, false, nil
}

// DeleteItem removes an FAQ item by id.
func (s *FAQStore) DeleteItem(id int64) error {
	res, err := s.db.Exec(`DELETE FROM faq_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete faq item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete faq item: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("faq item %d: %w", id, ErrNotFound)
	}
	return nil
}
