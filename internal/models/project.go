// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Project is a portfolio case study. Every project belongs to exactly one
// Category; the slug is derived from the title and unique site-wide.
type Project struct {
	ID         uuid.UUID `json:"id"`
	CategoryID string    `json:"category_id"`
	Title      string    `json:"title"`
	Slug       string    `json:"slug"`
	Summary    string    `json:"summary"`
	Body       string    `json:"body"`
	Featured   bool      `json:"featured"`
	SortOrder  int       `json:"sort_order"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Virtual fields populated by store methods.
	Metric       *ProjectMetric `json:"metric,omitempty"`
	Link         *ProjectLink   `json:"link,omitempty"`
	Images       []ProjectImage `json:"images,omitempty"`
	Technologies []string       `json:"technologies,omitempty"`
	Features     []string       `json:"features,omitempty"`
}

// ProjectMetric holds the headline numbers shown on a project card.
// At most one row per project.
type ProjectMetric struct {
	ProjectID   uuid.UUID `json:"-"`
	Users       string    `json:"users"`
	Performance string    `json:"performance"`
	Uptime      string    `json:"uptime"`
}

// ProjectLink holds the outbound URLs for a project. At most one row per project.
type ProjectLink struct {
	ProjectID    uuid.UUID `json:"-"`
	LiveURL      string    `json:"live_url"`
	RepoURL      string    `json:"repo_url"`
	CaseStudyURL string    `json:"case_study_url"`
}

// ProjectImage is one entry in a project's ordered gallery.
type ProjectImage struct {
	ID        uuid.UUID `json:"id"`
	ProjectID uuid.UUID `json:"-"`
	URL       string    `json:"url"`
	Alt       string    `json:"alt"`
	Position  int       `json:"position"`
}
