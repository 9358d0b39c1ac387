// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"foliocms/internal/models"
)

// StatsStore computes the dashboard snapshot. Every value is a live count;
// the denormalized counters on categories are deliberately not used here.
type StatsStore struct {
	db *sql.DB
}

// NewStatsStore returns a new StatsStore.
func NewStatsStore(db *sql.DB) *StatsStore {
	return &StatsStore{db: db}
}

// Snapshot counts rows across all content tables.
func (s *StatsStore) Snapshot() (*models.SiteStats, error) {
	stats := &models.SiteStats{}
	counts := []struct {
		query string
		dest  *int
	}{
		{`SELECT COUNT(*) FROM categories`, &stats.Categories},
		{`SELECT COUNT(*) FROM projects`, &stats.Projects},
		{`SELECT COUNT(*) FROM technologies`, &stats.Technologies},
		{`SELECT COUNT(*) FROM features`, &stats.Features},
		{`SELECT COUNT(*) FROM services`, &stats.Services},
		{`SELECT COUNT(*) FROM faq_items`, &stats.FAQItems},
		{`SELECT COUNT(*) FROM blog_posts`, &stats.BlogPosts},
		{`SELECT COUNT(*) FROM team_members`, &stats.TeamMembers},
		{`SELECT COUNT(*) FROM contact_messages WHERE NOT is_read`, &stats.UnreadMessages},
	}

	for _, c := range counts {
		if err := s.db.QueryRow(c.query).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("stats snapshot: %w", err)
		}
	}
	return stats, nil
}

// Ping verifies the store handle is usable. Exposed for the health endpoint.
func (s *StatsStore) Ping() error {
	var one int
	if err := s.db.QueryRow(`SELECT 1`).Scan(&one); err != nil {
		return fmt.Errorf("stats ping: %w", err)
	}
	return nil
}
