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

// ContactStore manages inbound contact form messages.
type ContactStore struct {
	db *sql.DB
}

// NewContactStore returns a new ContactStore.
func NewContactStore(db *sql.DB) *ContactStore {
	return &ContactStore{db: db}
}

const contactColumns = `id, name, email, subject, body, is_read, created_at`

// scanContactMessage scans a row into a ContactMessage struct.
func scanContactMessage(scanner interface{ Scan(...any) error }) (*models.ContactMessage, error) {
	var m models.ContactMessage
	err := scanner.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Body, &m.Read, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create stores a new message and returns it with the generated id.
func (s *ContactStore) Create(m *models.ContactMessage) (*models.ContactMessage, error) {
	row := s.db.QueryRow(`
		INSERT INTO contact_messages (name, email, subject, body)
		VALUES ($1, $2, $3, $4)
		RETURNING `+contactColumns,
		m.Name, m.Email, m.Subject, m.Body,
	)
	result, err := scanContactMessage(row)
	if err != nil {
		return nil, fmt.Errorf("create contact message: %w", err)
	}
	return result, nil
}

// List returns messages newest first. With unreadOnly set, read messages
// are excluded.
func (s *ContactStore) List(unreadOnly bool) ([]models.ContactMessage, error) {
	query := `SELECT ` + contactColumns + ` FROM contact_messages ORDER BY created_at DESC`
	if unreadOnly {
		query = `SELECT ` + contactColumns + ` FROM contact_messages WHERE NOT is_read ORDER BY created_at DESC`
	}

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}
	defer rows.Close()

	var items []models.ContactMessage
	for rows.Next() {
		m, err := scanContactMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contact message: %w", err)
		}
		items = append(items, *m)
	}
	return items, rows.Err()
}

// MarkRead flags a message as handled.
func (s *ContactStore) MarkRead(id uuid.UUID) error {
	res, err := s.db.Exec(`UPDATE contact_messages SET is_read = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark contact message read: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark contact message read: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("contact message %s: %w", id, ErrNotFound)
	}
	return nil
}

// Delete removes a message by id.
func (s *ContactStore) Delete(id uuid.UUID) error {
	res, err := s.db.Exec(`DELETE FROM contact_messages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete contact message: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete contact message: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("contact message %s: %w", id, ErrNotFound)
	}
	return nil
}

// CountUnread returns the number of unhandled messages.
func (s *ContactStore) CountUnread() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM contact_messages WHERE NOT is_read`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count unread messages: %w", err)
	}
	return count, nil
}
