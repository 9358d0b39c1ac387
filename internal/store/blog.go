// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"foliocms/internal/models"
	"foliocms/internal/slug"
)

// BlogStore manages the blog taxonomy (categories, tags) and posts.
type BlogStore struct {
	db *sql.DB
}

// NewBlogStore returns a new BlogStore.
func NewBlogStore(db *sql.DB) *BlogStore {
	return &BlogStore{db: db}
}

// ListCategories returns all blog categories ordered by name. post_count
// is returned as stored; run RecalculatePostCounts for fresh numbers.
func (s *BlogStore) ListCategories() ([]models.BlogCategory, error) {
	rows, err := s.db.Query(`SELECT id, name, slug, post_count FROM blog_categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list blog categories: %w", err)
	}
	defer rows.Close()

	var items []models.BlogCategory
	for rows.Next() {
		var c models.BlogCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.PostCount); err != nil {
			return nil, fmt.Errorf("scan blog category: %w", err)
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// UpsertCategory creates or updates a blog category by name. The slug is
// rederived from the name on every call. The bool reports creation.
func (s *BlogStore) UpsertCategory(name string) (*models.BlogCategory, bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var existing models.BlogCategory
	err = tx.QueryRow(`SELECT id, name, slug, post_count FROM blog_categories WHERE name = $1 FOR UPDATE`, name).
		Scan(&existing.ID, &existing.Name, &existing.Slug, &existing.PostCount)
	switch {
	case err == sql.ErrNoRows:
		var created models.BlogCategory
		err = tx.QueryRow(`
			INSERT INTO blog_categories (name, slug)
			VALUES ($1, $2)
			RETURNING id, name, slug, post_count`,
			name, slug.Generate(name),
		).Scan(&created.ID, &created.Name, &created.Slug, &created.PostCount)
		if isUniqueViolation(err) {
			return nil, false, fmt.Errorf("blog category %q: %w", name, ErrDuplicateKey)
		}
		if err != nil {
			return nil, false, fmt.Errorf("upsert insert blog category: %w", err)
		}
		if err := tx.Commit(); err != nil {
			return nil, false, fmt.Errorf("upsert commit: %w", err)
		}
		return &created, true, nil

	case err != nil:
		return nil, false, fmt.Errorf("upsert find blog category: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("upsert commit: %w", err)
	}
	return &existing, false, nil
}

// ListTags returns all blog tags ordered by name.
func (s *BlogStore) ListTags() ([]models.BlogTag, error) {
	rows, err := s.db.Query(`SELECT id, name, slug FROM blog_tags ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list blog tags: %w", err)
	}
	defer rows.Close()

	var items []models.BlogTag
	for rows.Next() {
		var t models.BlogTag
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug); err != nil {
			return nil, fmt.Errorf("scan blog tag: %w", err)
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

// UpsertTag creates a blog tag by name if absent. The bool reports creation.
func (s *BlogStore) UpsertTag(name string) (*models.BlogTag, bool, error) {
	var t models.BlogTag
	err := s.db.QueryRow(`SELECT id, name, slug FROM blog_tags WHERE name = $1`, name).
		Scan(&t.ID, &t.Name, &t.Slug)
	if err == nil {
		return &t, false, nil
	}
	if err != sql.ErrNoRows {
		return nil, false, fmt.Errorf("find blog tag by name: %w", err)
	}

	err = s.db.QueryRow(`INSERT INTO blog_tags (name, slug) VALUES ($1, $2) RETURNING id, name, slug`,
		name, slug.Generate(name)).
		Scan(&t.ID, &t.Name, &t.Slug)
	if isUniqueViolation(err) {
		return nil, false, fmt.Errorf("blog tag %q: %w", name, ErrDuplicateKey)
	}
	if err != nil {
		return nil, false, fmt.Errorf("create blog tag: %w", err)
	}
	return &t, true, nil
}

const blogPostColumns = `id, blog_category_id, title, slug, excerpt, body, published, published_at, created_at, updated_at`

// scanBlogPost scans a row into a BlogPost struct.
func scanBlogPost(scanner interface{ Scan(...any) error }) (*models.BlogPost, error) {
	var p models.BlogPost
	err := scanner.Scan(
		&p.ID, &p.BlogCategoryID, &p.Title, &p.Slug, &p.Excerpt,
		&p.Body, &p.Published, &p.PublishedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListPosts returns posts newest first, tags loaded. With publishedOnly
// set, drafts are excluded.
func (s *BlogStore) ListPosts(publishedOnly bool) ([]models.BlogPost, error) {
	query := `SELECT ` + blogPostColumns + ` FROM blog_posts ORDER BY created_at DESC`
	if publishedOnly {
		query = `SELECT ` + blogPostColumns + ` FROM blog_posts WHERE published ORDER BY published_at DESC NULLS LAST`
	}

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list blog posts: %w", err)
	}
	defer rows.Close()

	var items []models.BlogPost
	for rows.Next() {
		p, err := scanBlogPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan blog post: %w", err)
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range items {
		if err := s.loadTags(&items[i]); err != nil {
			return nil, err
		}
	}
	return items, nil
}

// FindPostBySlug retrieves a post by slug, tags loaded.
func (s *BlogStore) FindPostBySlug(postSlug string) (*models.BlogPost, error) {
	row := s.db.QueryRow(`SELECT `+blogPostColumns+` FROM blog_posts WHERE slug = $1`, postSlug)
	p, err := scanBlogPost(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("blog post %q: %w", postSlug, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find blog post by slug: %w", err)
	}
	if err := s.loadTags(p); err != nil {
		return nil, err
	}
	return p, nil
}

// CreatePost inserts a post. Publishing stamps published_at.
func (s *BlogStore) CreatePost(p *models.BlogPost) (*models.BlogPost, error) {
	if p.Published && p.PublishedAt == nil {
		now := time.Now()
		p.PublishedAt = &now
	}

	row := s.db.QueryRow(`
		INSERT INTO blog_posts (blog_category_id, title, slug, excerpt, body, published, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+blogPostColumns,
		p.BlogCategoryID, p.Title, p.Slug, p.Excerpt, p.Body, p.Published, p.PublishedAt,
	)
	result, err := scanBlogPost(row)
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("blog post slug %q: %w", p.Slug, ErrDuplicateKey)
	}
	if isForeignKeyViolation(err) {
		return nil, fmt.Errorf("blog category %s: %w", p.BlogCategoryID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("create blog post: %w", err)
	}
	return result, nil
}

// UpdatePost modifies a post's scalar fields.
func (s *BlogStore) UpdatePost(p *models.BlogPost) (*models.BlogPost, error) {
	if p.Published && p.PublishedAt == nil {
		now := time.Now()
		p.PublishedAt = &now
	}

	row := s.db.QueryRow(`
		UPDATE blog_posts SET
			blog_category_id = $1, title = $2, slug = $3, excerpt = $4,
			body = $5, published = $6, published_at = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING `+blogPostColumns,
		p.BlogCategoryID, p.Title, p.Slug, p.Excerpt, p.Body, p.Published, p.PublishedAt, p.ID,
	)
	result, err := scanBlogPost(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("blog post %s: %w", p.ID, ErrNotFound)
	}
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("blog post slug %q: %w", p.Slug, ErrDuplicateKey)
	}
	if isForeignKeyViolation(err) {
		return nil, fmt.Errorf("blog category %s: %w", p.BlogCategoryID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update blog post: %w", err)
	}
	return result, nil
}

// DeletePost removes a post. Tag links cascade.
func (s *BlogStore) DeletePost(id uuid.UUID) error {
	res, err := s.db.Exec(`DELETE FROM blog_posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete blog post: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete blog post: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("blog post %s: %w", id, ErrNotFound)
	}
	return nil
}

// SyncPostTags replaces a post's tag links with the given target set.
// Same locking and skip semantics as project syncs.
func (s *BlogStore) SyncPostTags(postID uuid.UUID, tagNames []string) (*SyncResult, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var locked uuid.UUID
	err = tx.QueryRow(`SELECT id FROM blog_posts WHERE id = $1 FOR UPDATE`, postID).Scan(&locked)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("blog post %s: %w", postID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("lock blog post: %w", err)
	}

	result, err := syncJoins(tx, postID, "blog post tag", tagNames,
		`DELETE FROM blog_post_tags WHERE post_id = $1`,
		`SELECT id FROM blog_tags WHERE name = $1`,
		`INSERT INTO blog_post_tags (post_id, tag_id) VALUES ($1, $2)`,
	)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("sync post tags commit: %w", err)
	}
	return result, nil
}

// RecalculatePostCounts refreshes post_count for every blog category.
// Mirror of CategoryStore.RecalculateCounts; per-row outcomes, failures
// do not stop the batch.
func (s *BlogStore) RecalculatePostCounts() ([]CountResult, error) {
	rows, err := s.db.Query(`SELECT id FROM blog_categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list blog category ids: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan blog category id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list blog category ids: %w", err)
	}

	results := make([]CountResult, 0, len(ids))
	for _, id := range ids {
		var count int
		err := s.db.QueryRow(`
			UPDATE blog_categories
			SET post_count = (SELECT COUNT(*) FROM blog_posts WHERE blog_category_id = blog_categories.id)
			WHERE id = $1
			RETURNING post_count
		`, id).Scan(&count)
		results = append(results, CountResult{ID: id.String(), NewCount: count, Err: err})
	}
	return results, nil
}

// loadTags populates a post's tag names.
func (s *BlogStore) loadTags(p *models.BlogPost) error {
	rows, err := s.db.Query(`
		SELECT t.name FROM blog_post_tags pt
		JOIN blog_tags t ON t.id = pt.tag_id
		WHERE pt.post_id = $1 ORDER BY t.name`, p.ID)
	if err != nil {
		return fmt.Errorf("load post tags: %w", err)
	}
	defer rows.Close()

	p.Tags = nil
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("scan post tag: %w", err)
		}
		p.Tags = append(p.Tags, name)
	}
	return rows.Err()
}
