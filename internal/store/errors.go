// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store contains all database access for foliocms: one store struct
// per entity family plus the typed domain failures they return. Callers
// inspect failures with errors.Is / errors.As, never by matching message text.
package store

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is returned when an operation targets a primary or natural
// key with no matching row.
var ErrNotFound = errors.New("not found")

// ErrDuplicateKey is returned when a create or upsert collides with an
// existing natural key, typically under a concurrent-writer race.
var ErrDuplicateKey = errors.New("duplicate key")

// ConflictError refuses a parent delete while dependent rows exist.
// The count is taken live from the child table inside the delete
// transaction, never from a cached counter.
type ConflictError struct {
	Entity         string
	ID             string
	DependentCount int
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %q has %d dependent record(s)", e.Entity, e.ID, e.DependentCount)
}

// SyncResult reports the outcome of a join-table synchronization.
// Skipped lists target natural keys that did not resolve to an existing
// row; a non-empty Skipped is a partial success, not an error.
type SyncResult struct {
	Linked  int      `json:"linked"`
	Skipped []string `json:"skipped,omitempty"`
}

// CountResult is the per-row outcome of a counter recalculation batch.
// A failed row carries its error here; it does not abort the batch.
type CountResult struct {
	ID       string `json:"id"`
	NewCount int    `json:"new_count"`
	Err      error  `json:"-"`
}

// isUniqueViolation reports whether err is a PostgreSQL unique-constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// isForeignKeyViolation reports whether err is a PostgreSQL foreign-key
// violation (SQLSTATE 23503). Surfaces when a write references a parent
// row that does not exist.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
