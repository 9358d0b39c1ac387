// Package main is the entry point for the FolioCMS API server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"foliocms/internal/cache"
	"foliocms/internal/config"
	"foliocms/internal/database"
	"foliocms/internal/handlers"
	"foliocms/internal/metrics"
	"foliocms/internal/router"
	"foliocms/internal/store"
)

func main() {
	// Structured logger, text handler on stdout.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed baseline content in development. Idempotent: everything goes
	// through natural-key upserts.
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey. The response cache is optional: a missing cache
	// degrades to hitting Postgres on every read.
	var respCache *cache.ResponseCache
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Warn("valkey unavailable, response caching disabled", "error", err)
	} else {
		defer valkeyClient.Close()
		respCache = cache.NewResponseCache(valkeyClient, cache.DefaultResponseTTL)
	}

	// Prometheus registry and content metrics, exported on /metrics.
	registry := prometheus.NewRegistry()
	contentMetrics, err := metrics.NewContentMetrics(registry)
	if err != nil {
		slog.Error("failed to register metrics", "error", err)
		os.Exit(1)
	}

	// Initialize data stores.
	categoryStore := store.NewCategoryStore(db)
	projectStore := store.NewProjectStore(db)
	technologyStore := store.NewTechnologyStore(db)
	featureStore := store.NewFeatureStore(db)
	serviceStore := store.NewServiceStore(db)
	faqStore := store.NewFAQStore(db)
	blogStore := store.NewBlogStore(db)
	teamStore := store.NewTeamStore(db)
	contactStore := store.NewContactStore(db)
	statsStore := store.NewStatsStore(db)

	// Create handler groups with their dependencies.
	publicHandlers := handlers.NewPublic(
		categoryStore, projectStore, technologyStore, featureStore,
		serviceStore, faqStore, blogStore, teamStore, contactStore,
		statsStore, respCache,
	)
	adminHandlers := handlers.NewAdmin(
		db, categoryStore, projectStore, technologyStore, featureStore,
		serviceStore, faqStore, blogStore, teamStore, contactStore,
		statsStore, respCache, contentMetrics,
	)

	// Set up the Chi router with all middleware and routes.
	r := router.New(publicHandlers, adminHandlers, registry)

	// Create the HTTP server with sensible timeouts.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
