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

// TeamStore manages team member profiles.
type TeamStore struct {
	db *sql.DB
}

// NewTeamStore returns a new TeamStore.
func NewTeamStore(db *sql.DB) *TeamStore {
	return &TeamStore{db: db}
}

const teamColumns = `id, name, role, bio, photo_url, position`

// scanTeamMember scans a row into a TeamMember struct.
func scanTeamMember(scanner interface{ Scan(...any) error }) (*models.TeamMember, error) {
	var m models.TeamMember
	err := scanner.Scan(&m.ID, &m.Name, &m.Role, &m.Bio, &m.PhotoURL, &m.Position)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// List returns all team members in display order.
func (s *TeamStore) List() ([]models.TeamMember, error) {
	rows, err := s.db.Query(`SELECT ` + teamColumns + ` FROM team_members ORDER BY position, name`)
	if err != nil {
		return nil, fmt.Errorf("list team members: %w", err)
	}
	defer rows.Close()

	var items []models.TeamMember
	for rows.Next() {
		m, err := scanTeamMember(rows)
		if err != nil {
			return nil, fmt.Errorf("scan team member: %w", err)
		}
		items = append(items, *m)
	}
	return items, rows.Err()
}

// Upsert creates or updates a team member by name. The bool reports
// whether a row was created.
func (s *TeamStore) Upsert(m *models.TeamMember) (*models.TeamMember, bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRow(`SELECT `+teamColumns+` FROM team_members WHERE name = $1 FOR UPDATE`, m.Name)
	existing, err := scanTeamMember(row)
	switch {
	case err == sql.ErrNoRows:
		row = tx.QueryRow(`
			INSERT INTO team_members (name, role, bio, photo_url, position)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING `+teamColumns,
			m.Name, m.Role, m.Bio, m.PhotoURL, m.Position,
		)
		created, err := scanTeamMember(row)
		if isUniqueViolation(err) {
			return nil, false, fmt.Errorf("team member %q: %w", m.Name, ErrDuplicateKey)
		}
		if err != nil {
			return nil, false, fmt.Errorf("upsert insert team member: %w", err)
		}
		if err := tx.Commit(); err != nil {
			return nil, false, fmt.Errorf("upsert commit: %w", err)
		}
		return created, true, nil

	case err != nil:
		return nil, false, fmt.Errorf("upsert find team member: %w", err)
	}

	row = tx.QueryRow(`
		UPDATE team_members SET role = $1, bio = $2, photo_url = $3, position = $4
		WHERE id = $5
		RETURNING `+teamColumns,
		m.Role, m.Bio, m.PhotoURL, m.Position, existing.ID,
	)
	updated, err := scanTeamMember(row)
	if err != nil {
		return nil, false, fmt.Errorf("upsert update team member: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("upsert commit: %w", err)
	}
	return updated, false, nil
}

// Delete removes a team member by id.
func (s *TeamStore) Delete(id uuid.UUID) error {
	res, err := s.db.Exec(`DELETE FROM team_members WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete team member: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete team member: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("team member %s: %w", id, ErrNotFound)
	}
	return nil
}
