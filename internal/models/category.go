// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// Category is a top-level project grouping. The ID is the slug-form natural
// key ("web", "mobile", "design") chosen by the editor, not a surrogate.
//
// ProjectCount is a denormalized counter. It is refreshed only by
// CategoryStore.RecalculateCounts / RecalculateCount and may lag behind the
// projects table between recalculations.
type Category struct {
	ID           string    `json:"id"`
	Label        string    `json:"label"`
	ProjectCount int       `json:"project_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
