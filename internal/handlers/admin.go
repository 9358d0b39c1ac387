// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"foliocms/internal/cache"
	"foliocms/internal/database"
	"foliocms/internal/metrics"
	"foliocms/internal/store"
)

// Admin groups all content-management HTTP handlers and their dependencies.
type Admin struct {
	db           *sql.DB
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
	respCache    *cache.ResponseCache    // may be nil when Valkey is absent
	metrics      *metrics.ContentMetrics // may be nil in tests
}

// NewAdmin creates a new Admin handler group with the given dependencies.
// respCache and m may be nil.
func NewAdmin(
	db *sql.DB,
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
	m *metrics.ContentMetrics,
) *Admin {
	return &Admin{
		db:           db,
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
		metrics:      m,
	}
}

// invalidateListings clears every cached public listing. Mutations call this
// rather than tracking which listing a change touches.
func (a *Admin) invalidateListings(r *http.Request) {
	if a.respCache != nil {
		a.respCache.InvalidateAll(r.Context())
	}
}

// parseUUIDParam reads a chi URL parameter as a UUID. On failure it writes
// a 404 and returns false: a malformed id can never name an existing row.
func parseUUIDParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		writeError(w, http.StatusNotFound, "not found")
		return uuid.Nil, false
	}
	return id, true
}

// --- Categories ---

// CreateCategory creates a project category with an editor-chosen slug id.
func (a *Admin) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID    string `json:"id"`
		Label string `json:"label"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := validateCategory(req.ID, req.Label); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	created, err := a.categories.Create(req.ID, req.Label)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	a.invalidateListings(r)
	writeJSON(w, http.StatusCreated, created)
}

// UpsertCategory creates or updates a category keyed on its id.
func (a *Admin) UpsertCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Label string `json:"label"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	id := chi.URLParam(r, "id")
	if msg := validateCategory(id, req.Label); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	category, created, err := a.categories.Upsert(id, req.Label)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if a.metrics != nil {
		a.metrics.RecordUpsert("categories", created)
	}
	a.invalidateListings(r)

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, category)
}

// DeleteCategory removes a category. Refused with 409 and the live
// dependent count while projects still reference it.
func (a *Admin) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := a.categories.Delete(id); err != nil {
		var conflict *store.ConflictError
		if a.metrics != nil && errors.As(err, &conflict) {
			a.metrics.RecordDeleteConflict("categories")
		}
		writeStoreError(w, err)
		return
	}
	a.invalidateListings(r)
	w.WriteHeader(http.StatusNoContent)
}

// RecalculateCategoryCounts refreshes every category's project counter from
// the projects table. Per-row failures are reported, not fatal.
func (a *Admin) RecalculateCategoryCounts(w http.ResponseWriter, r *http.Request) {
	results, err := a.categories.RecalculateCounts()
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeRecalcResults(w, r, a, "categories", results)
}

// --- Dashboard ---

// Stats returns the live dashboard snapshot, cached briefly in Valkey.
func (a *Admin) Stats(w http.ResponseWriter, r *http.Request) {
	if a.respCache != nil {
		if payload, ok := a.respCache.Get(r.Context(), cache.StatsKey()); ok {
			w.Header().Set("Content-Type", "application/json")
			w.Write(payload)
			return
		}
	}

	snapshot, err := a.stats.Snapshot()
	if err != nil {
		writeStoreError(w, err)
		return
	}

	if a.respCache != nil {
		if payload, err := json.Marshal(snapshot); err == nil {
			a.respCache.Set(r.Context(), cache.StatsKey(), payload)
		}
	}
	writeJSON(w, http.StatusOK, snapshot)
}

// Seed replays the baseline site content through the store upserts.
func (a *Admin) Seed(w http.ResponseWriter, r *http.Request) {
	if err := database.Seed(a.db); err != nil {
		slog.Error("seed failed", "error", err)
		writeError(w, http.StatusInternalServerError, "seed failed")
		return
	}
	a.invalidateListings(r)
	writeJSON(w, http.StatusOK, map[string]string{"status": "seeded"})
}

// --- Contact messages ---

// ListMessages returns contact messages, newest first. ?unread=true
// restricts to unread ones.
func (a *Admin) ListMessages(w http.ResponseWriter, r *http.Request) {
	unreadOnly := r.URL.Query().Get("unread") == "true"
	messages, err := a.contacts.List(unreadOnly)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

// MarkMessageRead flags a contact message as handled.
func (a *Admin) MarkMessageRead(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id")
	if !ok {
		return
	}
	if err := a.contacts.MarkRead(id); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteMessage removes a contact message.
func (a *Admin) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id")
	if !ok {
		return
	}
	if err := a.contacts.Delete(id); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeRecalcResults reports a recalculation batch: per-row outcomes plus
// updated/failed totals. Metrics and cache invalidation happen here so the
// two recalculation endpoints stay symmetric.
func writeRecalcResults(w http.ResponseWriter, r *http.Request, a *Admin, entity string, results []store.CountResult) {
	type rowResult struct {
		ID       string `json:"id"`
		NewCount int    `json:"new_count"`
		Error    string `json:"error,omitempty"`
	}

	rows := make([]rowResult, 0, len(results))
	var failed int
	for _, res := range results {
		row := rowResult{ID: res.ID, NewCount: res.NewCount}
		if res.Err != nil {
			row.Error = res.Err.Error()
			failed++
		}
		rows = append(rows, row)
	}

	if a.metrics != nil {
		a.metrics.RecordRecalc(entity, len(results)-failed, failed)
	}
	a.invalidateListings(r)

	writeJSON(w, http.StatusOK, map[string]any{
		"results": rows,
		"updated": len(results) - failed,
		"failed":  failed,
	})
}
