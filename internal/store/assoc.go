// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// assoc.go holds the join-table synchronizer shared by the project,
// service, and blog stores. A sync replaces the join rows of one owner
// with exactly the resolved target set: clear, then re-insert. Callers
// must run it inside a transaction that already holds a FOR UPDATE lock
// on the owner row; that lock is what serializes concurrent syncs on the
// same owner and keeps the transient empty join set invisible to readers.
package store

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// syncJoins replaces the join rows for ownerID with the resolved ids of
// keys. deleteSQL takes the owner id; resolveSQL maps one natural key to
// its id; insertSQL takes (owner id, resolved id). Keys that do not
// resolve are skipped and reported, not fatal. Duplicate keys in the
// target set collapse to one join row.
func syncJoins(tx *sql.Tx, ownerID any, relation string, keys []string, deleteSQL, resolveSQL, insertSQL string) (*SyncResult, error) {
	if _, err := tx.Exec(deleteSQL, ownerID); err != nil {
		return nil, fmt.Errorf("clear %s joins: %w", relation, err)
	}

	res := &SyncResult{}
	seen := make(map[string]bool, len(keys))
	for _, key := range keys {
		if seen[key] {
			continue
		}
		seen[key] = true

		var refID uuid.UUID
		err := tx.QueryRow(resolveSQL, key).Scan(&refID)
		if err == sql.ErrNoRows {
			slog.Warn("association target not found, skipping",
				"relation", relation,
				"owner", fmt.Sprint(ownerID),
				"key", key,
			)
			res.Skipped = append(res.Skipped, key)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("resolve %s %q: %w", relation, key, err)
		}

		if _, err := tx.Exec(insertSQL, ownerID, refID); err != nil {
			return nil, fmt.Errorf("link %s %q: %w", relation, key, err)
		}
		res.Linked++
	}
	return res, nil
}

// mergeSyncResults combines per-relation outcomes into one payload.
func mergeSyncResults(results ...*SyncResult) *SyncResult {
	merged := &SyncResult{}
	for _, r := range results {
		merged.Linked += r.Linked
		merged.Skipped = append(merged.Skipped, r.Skipped...)
	}
	return merged
}
