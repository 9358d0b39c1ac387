// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"foliocms/internal/models"
	"foliocms/internal/slug"
)

// projectRequest is the JSON payload for project create and update. The
// sub-records and association name lists describe the full desired state.
type projectRequest struct {
	CategoryID   string                `json:"category_id"`
	Title        string                `json:"title"`
	Slug         string                `json:"slug"`
	Summary      string                `json:"summary"`
	Body         string                `json:"body"`
	Featured     bool                  `json:"featured"`
	SortOrder    int                   `json:"sort_order"`
	Metric       *models.ProjectMetric `json:"metric"`
	Link         *models.ProjectLink   `json:"link"`
	Images       []models.ProjectImage `json:"images"`
	Technologies []string              `json:"technologies"`
	Features     []string              `json:"features"`
}

func (req *projectRequest) toModel() *models.Project {
	return &models.Project{
		CategoryID: req.CategoryID,
		Title:      req.Title,
		Slug:       slug.GenerateOr(req.Slug, slug.Generate(req.Title)),
		Summary:    req.Summary,
		Body:       req.Body,
		Featured:   req.Featured,
		SortOrder:  req.SortOrder,
		Metric:     req.Metric,
		Link:       req.Link,
		Images:     req.Images,
	}
}

// CreateProject inserts a project with its sub-records, then syncs its
// technology and feature associations. Unresolvable names come back in
// the skipped array rather than failing the create.
func (a *Admin) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := validateProject(req.Title, req.CategoryID, req.Summary, req.Body); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	created, err := a.projects.Create(req.toModel())
	if err != nil {
		writeStoreError(w, err)
		return
	}

	result, err := a.projects.SyncAssociations(created.ID, req.Technologies, req.Features)
	if err != nil {
		if a.metrics != nil {
			a.metrics.RecordSyncError("project_associations")
		}
		writeStoreError(w, err)
		return
	}
	if a.metrics != nil {
		a.metrics.RecordSync("project_associations", result.Linked, len(result.Skipped))
	}
	a.invalidateListings(r)

	created, err = a.projects.FindByID(created.ID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"project": created,
		"skipped": result.Skipped,
	})
}

// UpdateProject rewrites a project's scalar fields, sub-records and
// associations from the request payload.
func (a *Admin) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id")
	if !ok {
		return
	}

	var req projectRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := validateProject(req.Title, req.CategoryID, req.Summary, req.Body); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	project := req.toModel()
	project.ID = id

	updated, err := a.projects.Update(project)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	result, err := a.projects.SyncAssociations(updated.ID, req.Technologies, req.Features)
	if err != nil {
		if a.metrics != nil {
			a.metrics.RecordSyncError("project_associations")
		}
		writeStoreError(w, err)
		return
	}
	if a.metrics != nil {
		a.metrics.RecordSync("project_associations", result.Linked, len(result.Skipped))
	}
	a.invalidateListings(r)

	updated, err = a.projects.FindByID(updated.ID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"project": updated,
		"skipped": result.Skipped,
	})
}

// DeleteProject removes a project and everything it owns.
func (a *Admin) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id")
	if !ok {
		return
	}
	if err := a.projects.Delete(id); err != nil {
		writeStoreError(w, err)
		return
	}
	a.invalidateListings(r)
	w.WriteHeader(http.StatusNoContent)
}

// SyncProjectAssociations replaces the project's technology and feature
// links with the given name sets. A partial success (some names skipped)
// is still a 200.
func (a *Admin) SyncProjectAssociations(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		Technologies []string `json:"technologies"`
		Features     []string `json:"features"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := a.projects.SyncAssociations(id, req.Technologies, req.Features)
	if err != nil {
		if a.metrics != nil {
			a.metrics.RecordSyncError("project_associations")
		}
		writeStoreError(w, err)
		return
	}
	if a.metrics != nil {
		a.metrics.RecordSync("project_associations", result.Linked, len(result.Skipped))
	}
	a.invalidateListings(r)
	writeJSON(w, http.StatusOK, result)
}

// UpsertTechnology ensures a catalog technology exists, keyed on name.
func (a *Admin) UpsertTechnology(w http.ResponseWriter, r *http.Request) {
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

	tech, created, err := a.technologies.UpsertByName(req.Name)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if a.metrics != nil {
		a.metrics.RecordUpsert("technologies", created)
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, tech)
}

// UpsertFeature ensures a catalog feature exists, keyed on name.
func (a *Admin) UpsertFeature(w http.ResponseWriter, r *http.Request) {
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

	feature, created, err := a.features.UpsertByName(req.Name)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if a.metrics != nil {
		a.metrics.RecordUpsert("features", created)
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, feature)
}
