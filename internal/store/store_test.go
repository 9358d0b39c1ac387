// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store_test

import (
	"database/sql"
	"os"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"foliocms/internal/database"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "foliocms")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "foliocms")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped. A cleanup
// function is registered to close the connection when the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := testDSN()
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	// Run migrations to ensure the schema is current.
	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	// Downgrade goose global state.
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// cleanCategories removes test categories by id. Call in t.Cleanup().
func cleanCategories(t *testing.T, db *sql.DB, ids ...string) {
	t.Helper()
	for _, id := range ids {
		db.Exec("DELETE FROM categories WHERE id = $1", id)
	}
}

// cleanProjects removes test projects by slug. Call in t.Cleanup().
func cleanProjects(t *testing.T, db *sql.DB, slugs ...string) {
	t.Helper()
	for _, slug := range slugs {
		db.Exec("DELETE FROM projects WHERE slug = $1", slug)
	}
}

// cleanTechnologies removes test technologies by name. Call in t.Cleanup().
func cleanTechnologies(t *testing.T, db *sql.DB, names ...string) {
	t.Helper()
	for _, name := range names {
		db.Exec("DELETE FROM technologies WHERE name = $1", name)
	}
}

// cleanFeatures removes test features by name. Call in t.Cleanup().
func cleanFeatures(t *testing.T, db *sql.DB, names ...string) {
	t.Helper()
	for _, name := range names {
		db.Exec("DELETE FROM features WHERE name = $1", name)
	}
}

// cleanServices removes test services by slug. Call in t.Cleanup().
func cleanServices(t *testing.T, db *sql.DB, slugs ...string) {
	t.Helper()
	for _, slug := range slugs {
		db.Exec("DELETE FROM services WHERE slug = $1", slug)
	}
}

// cleanFAQ removes test FAQ items and categories. Call in t.Cleanup().
func cleanFAQ(t *testing.T, db *sql.DB, categoryIDs ...string) {
	t.Helper()
	for _, id := range categoryIDs {
		db.Exec("DELETE FROM faq_items WHERE category = $1", id)
		db.Exec("DELETE FROM faq_categories WHERE id = $1", id)
	}
}

// cleanBlog removes test blog posts, categories and tags by natural key.
// Call in t.Cleanup().
func cleanBlog(t *testing.T, db *sql.DB, postSlugs, categoryNames, tagNames []string) {
	t.Helper()
	for _, slug := range postSlugs {
		db.Exec("DELETE FROM blog_posts WHERE slug = $1", slug)
	}
	for _, name := range categoryNames {
		db.Exec("DELETE FROM blog_categories WHERE name = $1", name)
	}
	for _, name := range tagNames {
		db.Exec("DELETE FROM blog_tags WHERE name = $1", name)
	}
}

// cleanTeam removes test team members by name. Call in t.Cleanup().
func cleanTeam(t *testing.T, db *sql.DB, names ...string) {
	t.Helper()
	for _, name := range names {
		db.Exec("DELETE FROM team_members WHERE name = $1", name)
	}
}
