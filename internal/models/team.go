// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "github.com/google/uuid"

// TeamMember appears on the about page. Name is the unique natural key
// used by the seed upsert.
type TeamMember struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Role     string    `json:"role"`
	Bio      string    `json:"bio"`
	PhotoURL string    `json:"photo_url"`
	Position int       `json:"position"`
}
