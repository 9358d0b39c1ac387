// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// BlogCategory is a blog taxonomy entry. Name is the unique natural key;
// the slug is derived from it.
//
// PostCount is denormalized like Category.ProjectCount and refreshed by
// BlogStore.RecalculatePostCounts.
type BlogCategory struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	PostCount int       `json:"post_count"`
}

// BlogTag is a free-form blog label. Name is the unique natural key.
type BlogTag struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// BlogPost is an article. Slug is unique; tags attach through a join table.
type BlogPost struct {
	ID             uuid.UUID  `json:"id"`
	BlogCategoryID uuid.UUID  `json:"blog_category_id"`
	Title          string     `json:"title"`
	Slug           string     `json:"slug"`
	Excerpt        string     `json:"excerpt"`
	Body           string     `json:"body"`
	Published      bool       `json:"published"`
	PublishedAt    *time.Time `json:"published_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	// Tags is populated by store methods from the join table.
	Tags []string `json:"tags,omitempty"`
}
