package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// DefaultAdminPassword is the initial admin secret. Operators are expected
// to rotate it through the admin panel on first login.
const DefaultAdminPassword = "changeme"

// corePages are created on first run so the public site has content to
// serve before an editor touches the admin panel.
var corePages = []struct {
	Slug  string
	Title string
	Body  string
}{
	{
		Slug:  "about",
		Title: "About Us",
		Body:  "We organize pilgrimage trips to holy places. Edit this page in the admin panel.",
	},
	{
		Slug:  "how-to-join",
		Title: "How to Join a Trip",
		Body:  "Pick an upcoming trip, send us a message through the contact form, and we will get back to you with the details.",
	},
}

// Seed creates initial data in the database: the admin secret record and
// the core informational pages. Safe to call on every startup.
func Seed(ctx context.Context, db *sql.DB) error {
	queries := New(db)

	if err := seedAdminSecret(ctx, queries); err != nil {
		return err
	}
	return seedCorePages(ctx, queries)
}

func seedAdminSecret(ctx context.Context, queries *Queries) error {
	_, err := queries.GetSetting(ctx)
	if err == nil {
		return nil
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("checking for admin secret: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing default password: %w", err)
	}

	setting, err := queries.CreateSetting(ctx, CreateSettingParams{
		Secret:    string(hash),
		UpdatedAt: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("creating admin secret: %w", err)
	}

	slog.Info("created default admin secret",
		"id", setting.ID,
		"password", DefaultAdminPassword,
	)
	return nil
}

func seedCorePages(ctx context.Context, queries *Queries) error {
	now := time.Now()
	for _, p := range corePages {
		_, err := queries.GetPageBySlug(ctx, p.Slug)
		if err == nil {
			continue
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("checking for page %q: %w", p.Slug, err)
		}

		if _, err := queries.CreatePage(ctx, CreatePageParams{
			Slug:      p.Slug,
			Title:     p.Title,
			Body:      p.Body,
			CreatedAt: now,
			UpdatedAt: now,
		}); err != nil {
			return fmt.Errorf("creating page %q: %w", p.Slug, err)
		}
		slog.Info("created core page", "slug", p.Slug)
	}
	return nil
}
