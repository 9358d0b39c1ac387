// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"foliocms/internal/models"
)

// ProjectStore manages projects together with their owned sub-records
// (metric, link, images) and their technology/feature associations.
type ProjectStore struct {
	db *sql.DB
}

// NewProjectStore returns a new ProjectStore.
func NewProjectStore(db *sql.DB) *ProjectStore {
	return &ProjectStore{db: db}
}

const projectColumns = `id, category_id, title, slug, summary, body, featured, sort_order, created_at, updated_at`

// scanProject scans a row into a Project struct.
func scanProject(scanner interface{ Scan(...any) error }) (*models.Project, error) {
	var p models.Project
	err := scanner.Scan(
		&p.ID, &p.CategoryID, &p.Title, &p.Slug, &p.Summary,
		&p.Body, &p.Featured, &p.SortOrder, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns all projects with sub-records and association names loaded,
// ordered for display.
func (s *ProjectStore) List() ([]models.Project, error) {
	rows, err := s.db.Query(`SELECT ` + projectColumns + ` FROM projects ORDER BY sort_order, created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var items []models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range items {
		if err := s.loadRelations(&items[i]); err != nil {
			return nil, err
		}
	}
	return items, nil
}

// ListByCategory returns projects in one category, relations loaded.
func (s *ProjectStore) ListByCategory(categoryID string) ([]models.Project, error) {
	rows, err := s.db.Query(`SELECT `+projectColumns+` FROM projects WHERE category_id = $1 ORDER BY sort_order, created_at DESC`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list projects by category: %w", err)
	}
	defer rows.Close()

	var items []models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range items {
		if err := s.loadRelations(&items[i]); err != nil {
			return nil, err
		}
	}
	return items, nil
}

// FindByID retrieves a project by id with relations loaded.
func (s *ProjectStore) FindByID(id uuid.UUID) (*models.Project, error) {
	row := s.db.QueryRow(`SELECT `+projectColumns+` FROM projects WHERE id = $1`, id)
	p, err := scanProject(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find project by id: %w", err)
	}
	if err := s.loadRelations(p); err != nil {
		return nil, err
	}
	return p, nil
}

// FindBySlug retrieves a project by slug with relations loaded.
func (s *ProjectStore) FindBySlug(slug string) (*models.Project, error) {
	row := s.db.QueryRow(`SELECT `+projectColumns+` FROM projects WHERE slug = $1`, slug)
	p, err := scanProject(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("project %q: %w", slug, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find project by slug: %w", err)
	}
	if err := s.loadRelations(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Create inserts a project and its sub-records in one transaction.
// A colliding slug surfaces as ErrDuplicateKey; an unknown category as
// ErrNotFound (the FK refuses it).
func (s *ProjectStore) Create(p *models.Project) (*models.Project, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRow(`
		INSERT INTO projects (category_id, title, slug, summary, body, featured, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+projectColumns,
		p.CategoryID, p.Title, p.Slug, p.Summary, p.Body, p.Featured, p.SortOrder,
	)
	result, err := scanProject(row)
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("project slug %q: %w", p.Slug, ErrDuplicateKey)
	}
	if isForeignKeyViolation(err) {
		return nil, fmt.Errorf("category %q: %w", p.CategoryID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	if err := replaceSubRecords(tx, result.ID, p); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("create project commit: %w", err)
	}

	if err := s.loadRelations(result); err != nil {
		return nil, err
	}
	return result, nil
}

// Update modifies a project's scalar fields and replaces its sub-records.
// Sub-records use delete-then-recreate: the incoming metric, link, and
// image set fully describes the desired state.
func (s *ProjectStore) Update(p *models.Project) (*models.Project, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRow(`
		UPDATE projects SET
			category_id = $1, title = $2, slug = $3, summary = $4,
			body = $5, featured = $6, sort_order = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING `+projectColumns,
		p.CategoryID, p.Title, p.Slug, p.Summary, p.Body, p.Featured, p.SortOrder, p.ID,
	)
	result, err := scanProject(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("project %s: %w", p.ID, ErrNotFound)
	}
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("project slug %q: %w", p.Slug, ErrDuplicateKey)
	}
	if isForeignKeyViolation(err) {
		return nil, fmt.Errorf("category %q: %w", p.CategoryID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}

	if err := replaceSubRecords(tx, result.ID, p); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("update project commit: %w", err)
	}

	if err := s.loadRelations(result); err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes a project. Join rows, metric, link, and images go with it
// via ON DELETE CASCADE.
func (s *ProjectStore) Delete(id uuid.UUID) error {
	res, err := s.db.Exec(`DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	return nil
}

// SyncAssociations replaces the project's technology and feature links
// with the given target sets, resolving each name against the catalogs.
// Names that resolve to nothing are skipped and reported in the result.
// The project row is locked for the duration, so concurrent syncs on the
// same project serialize instead of interleaving clear-then-insert.
func (s *ProjectStore) SyncAssociations(projectID uuid.UUID, technologyNames, featureNames []string) (*SyncResult, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var locked uuid.UUID
	err = tx.QueryRow(`SELECT id FROM projects WHERE id = $1 FOR UPDATE`, projectID).Scan(&locked)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("project %s: %w", projectID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("lock project: %w", err)
	}

	techResult, err := syncJoins(tx, projectID, "project technology", technologyNames,
		`DELETE FROM project_technologies WHERE project_id = $1`,
		`SELECT id FROM technologies WHERE name = $1`,
		`INSERT INTO project_technologies (project_id, technology_id) VALUES ($1, $2)`,
	)
	if err != nil {
		return nil, err
	}

	featResult, err := syncJoins(tx, projectID, "project feature", featureNames,
		`DELETE FROM project_features WHERE project_id = $1`,
		`SELECT id FROM features WHERE name = $1`,
		`INSERT INTO project_features (project_id, feature_id) VALUES ($1, $2)`,
	)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("sync associations commit: %w", err)
	}
	return mergeSyncResults(techResult, featResult), nil
}

// replaceSubRecords rewrites the metric, link, and image children of a
// project inside tx. Absent children in p mean "none": their rows are
// removed.
func replaceSubRecords(tx *sql.Tx, projectID uuid.UUID, p *models.Project) error {
	if _, err := tx.Exec(`DELETE FROM project_metrics WHERE project_id = $1`, projectID); err != nil {
		return fmt.Errorf("clear project metric: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM project_links WHERE project_id = $1`, projectID); err != nil {
		return fmt.Errorf("clear project link: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM project_images WHERE project_id = $1`, projectID); err != nil {
		return fmt.Errorf("clear project images: %w", err)
	}

	if p.Metric != nil {
		_, err := tx.Exec(`
			INSERT INTO project_metrics (project_id, users, performance, uptime)
			VALUES ($1, $2, $3, $4)`,
			projectID, p.Metric.Users, p.Metric.Performance, p.Metric.Uptime,
		)
		if err != nil {
			return fmt.Errorf("insert project metric: %w", err)
		}
	}
	if p.Link != nil {
		_, err := tx.Exec(`
			INSERT INTO project_links (project_id, live_url, repo_url, case_study_url)
			VALUES ($1, $2, $3, $4)`,
			projectID, p.Link.LiveURL, p.Link.RepoURL, p.Link.CaseStudyURL,
		)
		if err != nil {
			return fmt.Errorf("insert project link: %w", err)
		}
	}
	for i, img := range p.Images {
		_, err := tx.Exec(`
			INSERT INTO project_images (project_id, url, alt, position)
			VALUES ($1, $2, $3, $4)`,
			projectID, img.URL, img.Alt, i,
		)
		if err != nil {
			return fmt.Errorf("insert project image: %w", err)
		}
	}
	return nil
}

// loadRelations populates a project's sub-records and association names.
func (s *ProjectStore) loadRelations(p *models.Project) error {
	var m models.ProjectMetric
	err := s.db.QueryRow(`SELECT project_id, users, performance, uptime FROM project_metrics WHERE project_id = $1`, p.ID).
		Scan(&m.ProjectID, &m.Users, &m.Performance, &m.Uptime)
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("load project metric: %w", err)
	}
	if err == nil {
		p.Metric = &m
	}

	var l models.ProjectLink
	err = s.db.QueryRow(`SELECT project_id, live_url, repo_url, case_study_url FROM project_links WHERE project_id = $1`, p.ID).
		Scan(&l.ProjectID, &l.LiveURL, &l.RepoURL, &l.CaseStudyURL)
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("load project link: %w", err)
	}
	if err == nil {
		p.Link = &l
	}

	rows, err := s.db.Query(`SELECT id, project_id, url, alt, position FROM project_images WHERE project_id = $1 ORDER BY position`, p.ID)
	if err != nil {
		return fmt.Errorf("load project images: %w", err)
	}
	defer rows.Close()
	p.Images = nil
	for rows.Next() {
		var img models.ProjectImage
		if err := rows.Scan(&img.ID, &img.ProjectID, &img.URL, &img.Alt, &img.Position); err != nil {
			return fmt.Errorf("scan project image: %w", err)
		}
		p.Images = append(p.Images, img)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	p.Technologies, err = s.joinNames(`
		SELECT t.name FROM project_technologies pt
		JOIN technologies t ON t.id = pt.technology_id
		WHERE pt.project_id = $1 ORDER BY t.name`, p.ID)
	if err != nil {
		return fmt.Errorf("load project technologies: %w", err)
	}

	p.Features, err = s.joinNames(`
		SELECT f.name FROM project_features pf
		JOIN features f ON f.id = pf.feature_id
		WHERE pf.project_id = $1 ORDER BY f.name`, p.ID)
	if err != nil {
		return fmt.Errorf("load project features: %w", err)
	}
	return nil
}

// joinNames runs a single-column name query and collects the results.
func (s *ProjectStore) joinNames(query string, id uuid.UUID) ([]string, error) {
	rows, err := s.db.Query(query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
