// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// SiteStats is the dashboard snapshot. All values are live counts taken at
// query time, never cached counters.
type SiteStats struct {
	Categories     int `json:"categories"`
	Projects       int `json:"projects"`
	Technologies   int `json:"technologies"`
	Features       int `json:"features"`
	Services       int `json:"services"`
	FAQItems       int `json:"faq_items"`
	BlogPosts      int `json:"blog_posts"`
	TeamMembers    int `json:"team_members"`
	UnreadMessages int `json:"unread_messages"`
}
