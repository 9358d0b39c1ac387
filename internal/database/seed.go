package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"foliocms/internal/models"
	"foliocms/internal/store"
)

// Seed populates the database with the baseline site content: project
// categories, the technology and feature catalogs, services, FAQ entries
// and team members. Everything goes through the store upserts keyed on
// natural keys, so running Seed repeatedly converges on the same state
// without duplicating rows.
func Seed(db *sql.DB) error {
	if err := seedCategories(db); err != nil {
		return err
	}
	if err := seedCatalogs(db); err != nil {
		return err
	}
	if err := seedServices(db); err != nil {
		return err
	}
	if err := seedFAQ(db); err != nil {
		return err
	}
	if err := seedBlogTaxonomy(db); err != nil {
		return err
	}
	if err := seedTeam(db); err != nil {
		return err
	}

	slog.Info("database seeded")
	return nil
}

func seedCategories(db *sql.DB) error {
	categories := store.NewCategoryStore(db)

	for _, c := range []struct{ id, label string }{
		{"web", "Web Applications"},
		{"mobile", "Mobile Apps"},
		{"cloud", "Cloud & DevOps"},
		{"design", "Design"},
	} {
		if _, _, err := categories.Upsert(c.id, c.label); err != nil {
			return fmt.Errorf("seed category %s: %w", c.id, err)
		}
	}
	return nil
}

func seedCatalogs(db *sql.DB) error {
	technologies := store.NewTechnologyStore(db)
	features := store.NewFeatureStore(db)

	for _, name := range []string{
		"Go", "PostgreSQL", "Valkey", "TypeScript", "React", "Vue",
		"Kubernetes", "Terraform", "Swift", "Kotlin",
	} {
		if _, _, err := technologies.UpsertByName(name); err != nil {
			return fmt.Errorf("seed technology %s: %w", name, err)
		}
	}

	for _, name := range []string{
		"Real-time updates", "Offline support", "Role-based access",
		"Full-text search", "Multi-language",
	} {
		if _, _, err := features.UpsertByName(name); err != nil {
			return fmt.Errorf("seed feature %s: %w", name, err)
		}
	}
	return nil
}

func seedServices(db *sql.DB) error {
	services := store.NewServiceStore(db)

	for i, s := range []struct {
		slug, name, description string
		technologies            []string
	}{
		{
			slug:         "web-development",
			name:         "Web Development",
			description:  "Custom web applications built for scale and maintainability.",
			technologies: []string{"Go", "TypeScript", "React", "PostgreSQL"},
		},
		{
			slug:         "mobile-development",
			name:         "Mobile Development",
			description:  "Native and cross-platform apps for iOS and Android.",
			technologies: []string{"Swift", "Kotlin"},
		},
		{
			slug:         "cloud-infrastructure",
			name:         "Cloud & Infrastructure",
			description:  "Infrastructure as code, CI/CD pipelines and managed deployments.",
			technologies: []string{"Kubernetes", "Terraform", "Go"},
		},
	} {
		svc, _, err := services.Upsert(&models.Service{
			Slug:        s.slug,
			Name:        s.name,
			Description: s.description,
			SortOrder:   i,
		})
		if err != nil {
			return fmt.Errorf("seed service %s: %w", s.slug, err)
		}
		if _, err := services.SyncTechnologies(svc.ID, s.technologies); err != nil {
			return fmt.Errorf("seed service %s technologies: %w", s.slug, err)
		}
	}
	return nil
}

func seedFAQ(db *sql.DB) error {
	faq := store.NewFAQStore(db)

	for _, c := range []models.FAQCategory{
		{ID: "general", Name: "General", Icon: "info"},
		{ID: "process", Name: "Process", Icon: "workflow"},
		{ID: "pricing", Name: "Pricing", Icon: "credit-card"},
	} {
		if _, _, err := faq.UpsertCategory(&c); err != nil {
			return fmt.Errorf("seed faq category %s: %w", c.ID, err)
		}
	}

	for _, item := range []models.FAQItem{
		{ID: 1, Category: "general", Question: "What kind of projects do you take on?", Answer: "Web and mobile applications, from greenfield builds to rescues of existing systems.", Popular: true},
		{ID: 2, Category: "general", Question: "Do you work with remote teams?", Answer: "Yes, most of our engagements are fully remote."},
		{ID: 3, Category: "process", Question: "How does a project start?", Answer: "With a short discovery phase: we map the problem, agree on scope and set milestones.", Popular: true},
		{ID: 4, Category: "process", Question: "How often do we get updates?", Answer: "Weekly demos plus a shared board you can check at any time."},
		{ID: 5, Category: "pricing", Question: "How do you price projects?", Answer: "Fixed price for well-defined scope, time and materials for ongoing work."},
	} {
		if _, _, err := faq.UpsertItem(&item); err != nil {
			return fmt.Errorf("seed faq item %d: %w", item.ID, err)
		}
	}
	return nil
}

func seedBlogTaxonomy(db *sql.DB) error {
	blog := store.NewBlogStore(db)

	for _, name := range []string{"Engineering", "Design", "Company News"} {
		if _, _, err := blog.UpsertCategory(name); err != nil {
			return fmt.Errorf("seed blog category %s: %w", name, err)
		}
	}

	for _, name := range []string{"golang", "postgres", "frontend", "devops"} {
		if _, _, err := blog.UpsertTag(name); err != nil {
			return fmt.Errorf("seed blog tag %s: %w", name, err)
		}
	}
	return nil
}

func seedTeam(db *sql.DB) error {
	team := store.NewTeamStore(db)

	for i, m := range []struct{ name, role, bio string }{
		{"Ana Pavel", "Founder & Lead Engineer", "Builds backends and keeps the lights on."},
		{"Radu Ciobanu", "Product Designer", "Turns vague ideas into shippable interfaces."},
		{"Ioana Marin", "Full-stack Engineer", "Equally at home in Go and TypeScript."},
	} {
		if _, _, err := team.Upsert(&models.TeamMember{
			Name:     m.name,
			Role:     m.role,
			Bio:      m.bio,
			Position: i,
		}); err != nil {
			return fmt.Errorf("seed team member %s: %w", m.name, err)
		}
	}
	return nil
}
