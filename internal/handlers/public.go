// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"foliocms/internal/cache"
	"foliocms/internal/models"
	"foliocms/internal/store"
)

// Public groups the read-side HTTP handlers for the site frontend plus the
// contact form. Responses for the heaviest listings go through the Valkey
// response cache when one is configured.
type Public struct {
	categories   *store.CategoryStore
	projects     *store.ProjectStore
	technologies *store.TechnologyStore
	features     *store.FeatureStore
	services     *store.ServiceStore
	faq          *store.FAQStore
	blog         *store.BlogStore
	team         *store.TeamStore
	contacts     *store.ContactStore
	stats        *store.StatsStore
	respCache    *cache.ResponseCache // may be nil when Valkey is absent
}

// NewPublic creates a new Public handler group with the given dependencies.
// respCache may be nil if Valkey is not configured.
func NewPublic(
	categories *store.CategoryStore,
	projects *store.ProjectStore,
	technologies *store.TechnologyStore,
	features *store.FeatureStore,
	services *store.ServiceStore,
	faq *store.FAQStore,
	blog *store.BlogStore,
	team *store.TeamStore,
	contacts *store.ContactStore,
	stats *store.StatsStore,
	respCache *cache.ResponseCache,
) *Public {
	return &Public{
		categories:   categories,
		projects:     projects,
		technologies: technologies,
		features:     features,
		services:     services,
		faq:          faq,
		blog:         blog,
		team:         team,
		contacts:     contacts,
		stats:        stats,
		respCache:    respCache,
	}
}

// Health reports process liveness and database reachability.
func (p *Public) Health(w http.ResponseWriter, r *http.Request) {
	if err := p.stats.Ping(); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListCategories returns all project categories with their counters.
func (p *Public) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := p.categories.List()
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

// ListProjects returns all projects, optionally filtered by ?category=.
// The unfiltered and per-category listings are cached in Valkey.
func (p *Public) ListProjects(w http.ResponseWriter, r *http.Request) {
	key := cache.ProjectsKey()
	categoryID := r.URL.Query().Get("category")
	if categoryID != "" {
		key = cache.CategoryProjectsKey(categoryID)
	}

	if p.respCache != nil {
		if payload, ok := p.respCache.Get(r.Context(), key); ok {
			w.Header().Set("Content-Type", "application/json")
			w.Write(payload)
			return
		}
	}

	var (
		projects []models.Project
		err      error
	)
	if categoryID != "" {
		projects, err = p.projects.ListByCategory(categoryID)
	} else {
		projects, err = p.projects.List()
	}
	if err != nil {
		writeStoreError(w, err)
		return
	}

	if p.respCache != nil {
		if payload, err := json.Marshal(projects); err == nil {
			p.respCache.Set(r.Context(), key, payload)
		}
	}
	writeJSON(w, http.StatusOK, projects)
}

// GetProject returns a single project by slug, with sub-records and
// association names populated.
func (p *Public) GetProject(w http.ResponseWriter, r *http.Request) {
	project, err := p.projects.FindBySlug(chi.URLParam(r, "slug"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

// ListTechnologies returns the technology catalog.
func (p *Public) ListTechnologies(w http.ResponseWriter, r *http.Request) {
	technologies, err := p.technologies.List()
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, technologies)
}

// ListFeatures returns the feature catalog.
func (p *Public) ListFeatures(w http.ResponseWriter, r *http.Request) {
	features, err := p.features.List()
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, features)
}

// ListServices returns all services with their technology names.
func (p *Public) ListServices(w http.ResponseWriter, r *http.Request) {
	services, err := p.services.List()
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, services)
}

// GetService returns a single service by slug.
func (p *Public) GetService(w http.ResponseWriter, r *http.Request) {
	service, err := p.services.FindBySlug(chi.URLParam(r, "slug"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, service)
}

// ListFAQ returns FAQ categories with live item counts and the items,
// optionally restricted with ?category=.
func (p *Public) ListFAQ(w http.ResponseWriter, r *http.Request) {
	categories, err := p.faq.ListCategories()
	if err != nil {
		writeStoreError(w, err)
		return
	}
	items, err := p.faq.ListItems(r.URL.Query().Get("category"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"categories": categories,
		"items":      items,
	})
}

// ListFAQPopular returns the items flagged as popular, across categories.
func (p *Public) ListFAQPopular(w http.ResponseWriter, r *http.Request) {
	items, err := p.faq.ListPopular()
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// ListBlogCategories returns blog categories with their post counters.
func (p *Public) ListBlogCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := p.blog.ListCategories()
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

// ListBlogTags returns all blog tags.
func (p *Public) ListBlogTags(w http.ResponseWriter, r *http.Request) {
	tags, err := p.blog.ListTags()
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tags)
}

// ListBlogPosts returns published posts only; drafts stay admin-side.
func (p *Public) ListBlogPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := p.blog.ListPosts(true)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// GetBlogPost returns a single published post by slug. Unpublished posts
// are indistinguishable from missing ones here.
func (p *Public) GetBlogPost(w http.ResponseWriter, r *http.Request) {
	post, err := p.blog.FindPostBySlug(chi.URLParam(r, "slug"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if !post.Published {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// ListTeam returns team members in display order.
func (p *Public) ListTeam(w http.ResponseWriter, r *http.Request) {
	members, err := p.team.List()
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, members)
}

// CreateContactMessage accepts a contact form submission.
func (p *Public) CreateContactMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Subject string `json:"subject"`
		Body    string `json:"body"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := validateContactMessage(req.Name, req.Email, req.Subject, req.Body); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	created, err := p.contacts.Create(&models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Body:    req.Body,
	})
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}
