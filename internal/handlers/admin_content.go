// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"foliocms/internal/models"
	"foliocms/internal/slug"
)

// --- Services ---

// UpsertService creates or updates a service keyed on its slug.
func (a *Admin) UpsertService(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Slug        string `json:"slug"`
		Name        string `json:"name"`
		Description string `json:"description"`
		SortOrder   int    `json:"sort_order"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := validateName(req.Name); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	service, created, err := a.services.Upsert(&models.Service{
		Slug:        slug.GenerateOr(req.Slug, slug.Generate(req.Name)),
		Name:        req.Name,
		Description: req.Description,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if a.metrics != nil {
		a.metrics.RecordUpsert("services", created)
	}
	a.invalidateListings(r)

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, service)
}

// DeleteService removes a service and its technology links.
func (a *Admin) DeleteService(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id")
	if !ok {
		return
	}
	if err := a.services.Delete(id); err != nil {
		writeStoreError(w, err)
		return
	}
	a.invalidateListings(r)
	w.WriteHeader(http.StatusNoContent)
}

// SyncServiceTechnologies replaces a service's technology links with the
// given name set.
func (a *Admin) SyncServiceTechnologies(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		Technologies []string `json:"technologies"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := a.services.SyncTechnologies(id, req.Technologies)
	if err != nil {
		if a.metrics != nil {
			a.metrics.RecordSyncError("service_technologies")
		}
		writeStoreError(w, err)
		return
	}
	if a.metrics != nil {
		a.metrics.RecordSync("service_technologies", result.Linked, len(result.Skipped))
	}
	a.invalidateListings(r)
	writeJSON(w, http.StatusOK, result)
}

// --- FAQ ---

// UpsertFAQCategory creates or updates an FAQ category keyed on its id.
func (a *Admin) UpsertFAQCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
		Icon string `json:"icon"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	id := chi.URLParam(r, "id")
	if strings.TrimSpace(id) == "" || validateName(req.Name) != "" {
		writeError(w, http.StatusUnprocessableEntity, "id and name are required")
		return
	}

	category, created, err := a.faq.UpsertCategory(&models.FAQCategory{
		ID:   id,
		Name: req.Name,
		Icon: req.Icon,
	})
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if a.metrics != nil {
		a.metrics.RecordUpsert("faq_categories", created)
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, category)
}

// DeleteFAQCategory removes an FAQ category. Refused with 409 while items
// still reference it.
func (a *Admin) DeleteFAQCategory(w http.ResponseWriter, r *http.Request) {
	if err := a.faq.DeleteCategory(chi.URLParam(r, "id")); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpsertFAQItem creates or updates an FAQ item keyed on its numeric id.
func (a *Admin) UpsertFAQItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	var req struct {
		Category string `json:"category"`
		Question string `json:"question"`
		Answer   string `json:"answer"`
		Popular  bool   `json:"popular"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := validateFAQItem(req.Category, req.Question, req.Answer); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	item, created, err := a.faq.UpsertItem(&models.FAQItem{
		ID:       id,
		Category: req.Category,
		Question: req.Question,
		Answer:   req.Answer,
		Popular:  req.Popular,
	})
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if a.metrics != nil {
		a.metrics.RecordUpsert("faq_items", created)
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, item)
}

// DeleteFAQItem removes an FAQ item.
func (a *Admin) DeleteFAQItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if err := a.faq.DeleteItem(id); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Blog ---

// blogPostRequest is the JSON payload for blog post create and update.
type blogPostRequest struct {
	BlogCategoryID uuid.UUID `json:"blog_category_id"`
	Title          string    `json:"title"`
	Slug           string    `json:"slug"`
	Excerpt        string    `json:"excerpt"`
	Body           string    `json:"body"`
	Published      bool      `json:"published"`
	Tags           []string  `json:"tags"`
}

func (req *blogPostRequest) toModel() *models.BlogPost {
	return &models.BlogPost{
		BlogCategoryID: req.BlogCategoryID,
		Title:          req.Title,
		Slug:           slug.GenerateOr(req.Slug, slug.Generate(req.Title)),
		Excerpt:        req.Excerpt,
		Body:           req.Body,
		Published:      req.Published,
	}
}

// UpsertBlogCategory ensures a blog category exists, keyed on name.
func (a *Admin) UpsertBlogCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := validateName(req.Name); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	category, created, err := a.blog.UpsertCategory(req.Name)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if a.metrics != nil {
		a.metrics.RecordUpsert("blog_categories", created)
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, category)
}

// UpsertBlogTag ensures a blog tag exists, keyed on name.
func (a *Admin) UpsertBlogTag(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := validateName(req.Name); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	tag, created, err := a.blog.UpsertTag(req.Name)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if a.metrics != nil {
		a.metrics.RecordUpsert("blog_tags", created)
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, tag)
}

// ListAllBlogPosts returns every post including drafts, for the admin UI.
func (a *Admin) ListAllBlogPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := a.blog.ListPosts(false)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// CreateBlogPost inserts a post, then syncs its tags.
func (a *Admin) CreateBlogPost(w http.ResponseWriter, r *http.Request) {
	var req blogPostRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Title) == "" || req.BlogCategoryID == uuid.Nil {
		writeError(w, http.StatusUnprocessableEntity, "title and blog_category_id are required")
		return
	}

	created, err := a.blog.CreatePost(req.toModel())
	if err != nil {
		writeStoreError(w, err)
		return
	}

	result, err := a.blog.SyncPostTags(created.ID, req.Tags)
	if err != nil {
		if a.metrics != nil {
			a.metrics.RecordSyncError("blog_post_tags")
		}
		writeStoreError(w, err)
		return
	}
	if a.metrics != nil {
		a.metrics.RecordSync("blog_post_tags", result.Linked, len(result.Skipped))
	}
	a.invalidateListings(r)

	if full, err := a.blog.FindPostBySlug(created.Slug); err == nil {
		created = full
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"post":    created,
		"skipped": result.Skipped,
	})
}

// UpdateBlogPost rewrites a post's fields and tag links.
func (a *Admin) UpdateBlogPost(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id")
	if !ok {
		return
	}

	var req blogPostRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Title) == "" || req.BlogCategoryID == uuid.Nil {
		writeError(w, http.StatusUnprocessableEntity, "title and blog_category_id are required")
		return
	}

	post := req.toModel()
	post.ID = id

	updated, err := a.blog.UpdatePost(post)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	result, err := a.blog.SyncPostTags(updated.ID, req.Tags)
	if err != nil {
		if a.metrics != nil {
			a.metrics.RecordSyncError("blog_post_tags")
		}
		writeStoreError(w, err)
		return
	}
	if a.metrics != nil {
		a.metrics.RecordSync("blog_post_tags", result.Linked, len(result.Skipped))
	}
	a.invalidateListings(r)

	if full, err := a.blog.FindPostBySlug(updated.Slug); err == nil {
		updated = full
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"post":    updated,
		"skipped": result.Skipped,
	})
}

// DeleteBlogPost removes a post; its tag links cascade.
func (a *Admin) DeleteBlogPost(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id")
	if !ok {
		return
	}
	if err := a.blog.DeletePost(id); err != nil {
		writeStoreError(w, err)
		return
	}
	a.invalidateListings(r)
	w.WriteHeader(http.StatusNoContent)
}

// RecalculateBlogPostCounts refreshes every blog category's post counter.
func (a *Admin) RecalculateBlogPostCounts(w http.ResponseWriter, r *http.Request) {
	results, err := a.blog.RecalculatePostCounts()
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeRecalcResults(w, r, a, "blog_categories", results)
}

// --- Team ---

// UpsertTeamMember creates or updates a team member keyed on name.
func (a *Admin) UpsertTeamMember(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Role     string `json:"role"`
		Bio      string `json:"bio"`
		PhotoURL string `json:"photo_url"`
		Position int    `json:"position"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := validateName(req.Name); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	member, created, err := a.team.Upsert(&models.TeamMember{
		Name:     req.Name,
		Role:     req.Role,
		Bio:      req.Bio,
		PhotoURL: req.PhotoURL,
		Position: req.Position,
	})
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if a.metrics != nil {
		a.metrics.RecordUpsert("team_members", created)
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, member)
}

// DeleteTeamMember removes a team member.
func (a *Admin) DeleteTeamMember(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id")
	if !ok {
		return
	}
	if err := a.team.Delete(id); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
