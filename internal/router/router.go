// Package router sets up all HTTP routes and middleware chains for the
// FolioCMS API. It organizes routes into public and admin groups.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"foliocms/internal/handlers"
	"foliocms/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. registry may be nil to skip /metrics.
func New(public *handlers.Public, admin *handlers.Admin, registry *prometheus.Registry) chi.Router {
	r := chi.NewRouter()

	// Global middleware applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	r.Get("/health", public.Health)

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	// Public read API plus the contact form.
	r.Route("/api", func(r chi.Router) {
		r.Get("/categories", public.ListCategories)
		r.Get("/projects", public.ListProjects)
		r.Get("/projects/{slug}", public.GetProject)
		r.Get("/technologies", public.ListTechnologies)
		r.Get("/features", public.ListFeatures)
		r.Get("/services", public.ListServices)
		r.Get("/services/{slug}", public.GetService)
		r.Get("/faq", public.ListFAQ)
		r.Get("/faq/popular", public.ListFAQPopular)
		r.Get("/blog/categories", public.ListBlogCategories)
		r.Get("/blog/tags", public.ListBlogTags)
		r.Get("/blog/posts", public.ListBlogPosts)
		r.Get("/blog/posts/{slug}", public.GetBlogPost)
		r.Get("/team", public.ListTeam)
		r.Post("/contact", public.CreateContactMessage)

		// Admin mutations. Deployments put this behind a reverse proxy
		// that handles access control.
		r.Route("/admin", func(r chi.Router) {
			r.Get("/stats", admin.Stats)
			r.Post("/seed", admin.Seed)

			r.Route("/categories", func(r chi.Router) {
				r.Post("/", admin.CreateCategory)
				r.Put("/{id}", admin.UpsertCategory)
				r.Delete("/{id}", admin.DeleteCategory)
				r.Post("/recalculate", admin.RecalculateCategoryCounts)
			})

			r.Route("/projects", func(r chi.Router) {
				r.Post("/", admin.CreateProject)
				r.Put("/{id}", admin.UpdateProject)
				r.Delete("/{id}", admin.DeleteProject)
				r.Put("/{id}/associations", admin.SyncProjectAssociations)
			})

			r.Post("/technologies", admin.UpsertTechnology)
			r.Post("/features", admin.UpsertFeature)

			r.Route("/services", func(r chi.Router) {
				r.Post("/", admin.UpsertService)
				r.Delete("/{id}", admin.DeleteService)
				r.Put("/{id}/technologies", admin.SyncServiceTechnologies)
			})

			r.Route("/faq", func(r chi.Router) {
				r.Put("/categories/{id}", admin.UpsertFAQCategory)
				r.Delete("/categories/{id}", admin.DeleteFAQCategory)
				r.Put("/items/{id}", admin.UpsertFAQItem)
				r.Delete("/items/{id}", admin.DeleteFAQItem)
			})

			r.Route("/blog", func(r chi.Router) {
				r.Post("/categories", admin.UpsertBlogCategory)
				r.Post("/categories/recalculate", admin.RecalculateBlogPostCounts)
				r.Post("/tags", admin.UpsertBlogTag)
				r.Get("/posts", admin.ListAllBlogPosts)
				r.Post("/posts", admin.CreateBlogPost)
				r.Put("/posts/{id}", admin.UpdateBlogPost)
				r.Delete("/posts/{id}", admin.DeleteBlogPost)
			})

			r.Route("/team", func(r chi.Router) {
				r.Post("/", admin.UpsertTeamMember)
				r.Delete("/{id}", admin.DeleteTeamMember)
			})

			r.Route("/messages", func(r chi.Router) {
				r.Get("/", admin.ListMessages)
				r.Post("/{id}/read", admin.MarkMessageRead)
				r.Delete("/{id}", admin.DeleteMessage)
			})
		})
	})

	return r
}
