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

// ServiceStore manages the services page entries and their technology links.
type ServiceStore struct {
	db *sql.DB
}

// NewServiceStore returns a new ServiceStore.
func NewServiceStore(db *sql.DB) *ServiceStore {
	return &ServiceStore{db: db}
}

const serviceColumns = `id, slug, name, description, sort_order, created_at, updated_at`

// scanService scans a row into a Service struct.
func scanService(scanner interface{ Scan(...any) error }) (*models.Service, error) {
	var sv models.Service
	err := scanner.Scan(&sv.ID, &sv.Slug, &sv.Name, &sv.Description, &sv.SortOrder, &sv.CreatedAt, &sv.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &sv, nil
}

// List returns all services ordered for display, technology names loaded.
func (s *ServiceStore) List() ([]models.Service, error) {
	rows, err := s.db.Query(`SELECT ` + serviceColumns + ` FROM services ORDER BY sort_order, name`)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()

	var items []models.Service
	for rows.Next() {
		sv, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		items = append(items, *sv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range items {
		if err := s.loadTechnologies(&items[i]); err != nil {
			return nil, err
		}
	}
	return items, nil
}

// FindBySlug retrieves a service by its slug, technology names loaded.
func (s *ServiceStore) FindBySlug(slug string) (*models.Service, error) {
	row := s.db.QueryRow(`SELECT `+serviceColumns+` FROM services WHERE slug = $1`, slug)
	sv, err := scanService(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("service %q: %w", slug, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find service by slug: %w", err)
	}
	if err := s.loadTechnologies(sv); err != nil {
		return nil, err
	}
	return sv, nil
}

// Upsert creates the service if its slug is new, otherwise updates the
// mutable attributes. The bool reports whether a row was created.
func (s *ServiceStore) Upsert(sv *models.Service) (*models.Service, bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRow(`SELECT `+serviceColumns+` FROM services WHERE slug = $1 FOR UPDATE`, sv.Slug)
	existing, err := scanService(row)
	switch {
	case err == sql.ErrNoRows:
		row = tx.QueryRow(`
			INSERT INTO services (slug, name, description, sort_order)
			VALUES ($1, $2, $3, $4)
			RETURNING `+serviceColumns,
			sv.Slug, sv.Name, sv.Description, sv.SortOrder,
		)
		created, err := scanService(row)
		if isUniqueViolation(err) {
			return nil, false, fmt.Errorf("service %q: %w", sv.Slug, ErrDuplicateKey)
		}
		if err != nil {
			return nil, false, fmt.Errorf("upsert insert service: %w", err)
		}
		if err := tx.Commit(); err != nil {
			return nil, false, fmt.Errorf("upsert commit: %w", err)
		}
		return created, true, nil

	case err != nil:
		return nil, false, fmt.Errorf("upsert find service: %w", err)
	}

	row = tx.QueryRow(`
		UPDATE services SET name = $1, description = $2, sort_order = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING `+serviceColumns,
		sv.Name, sv.Description, sv.SortOrder, existing.ID,
	)
	updated, err := scanService(row)
	if err != nil {
		return nil, false, fmt.Errorf("upsert update service: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("upsert commit: %w", err)
	}
	return updated, false, nil
}

// Delete removes a service. Technology links cascade.
func (s *ServiceStore) Delete(id uuid.UUID) error {
	res, err := s.db.Exec(`DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete service: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete service: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("service %s: %w", id, ErrNotFound)
	}
	return nil
}

// SyncTechnologies replaces the service's technology links with the given
// target set. Same locking and skip semantics as project syncs.
func (s *ServiceStore) SyncTechnologies(serviceID uuid.UUID, technologyNames []string) (*SyncResult, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var locked uuid.UUID
	err = tx.QueryRow(`SELECT id FROM services WHERE id = $1 FOR UPDATE`, serviceID).Scan(&locked)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("service %s: %w", serviceID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("lock service: %w", err)
	}

	result, err := syncJoins(tx, serviceID, "service technology", technologyNames,
		`DELETE FROM service_technologies WHERE service_id = $1`,
		`SELECT id FROM technologies WHERE name = $1`,
		`INSERT INTO service_technologies (service_id, technology_id) VALUES ($1, $2)`,
	)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("sync technologies commit: %w", err)
	}
	return result, nil
}

// loadTechnologies populates a service's technology names.
func (s *ServiceStore) loadTechnologies(sv *models.Service) error {
	rows, err := s.db.Query(`
		SELECT t.name FROM service_technologies st
		JOIN technologies t ON t.id = st.technology_id
		WHERE st.service_id = $1 ORDER BY t.name`, sv.ID)
	if err != nil {
		return fmt.Errorf("load service technologies: %w", err)
	}
	defer rows.Close()

	sv.Technologies = nil
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("scan service technology: %w", err)
		}
		sv.Technologies = append(sv.Technologies, name)
	}
	return rows.Err()
}
