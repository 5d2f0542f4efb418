package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	_ "modernc.org/sqlite"

	"palomnyk-go/internal/auth"
	"palomnyk-go/internal/middleware"
	"palomnyk-go/internal/store"
	"palomnyk-go/internal/uploader"
)

const testAdminPassword = "test-password-123"

// testDB creates an in-memory SQLite database with the full schema.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("enabling foreign keys: %v", err)
	}

	schema := `
		CREATE TABLE settings (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			secret TEXT NOT NULL,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			start_date DATETIME NOT NULL,
			end_date DATETIME,
			location TEXT NOT NULL DEFAULT '',
			price REAL NOT NULL DEFAULT 0,
			currency TEXT NOT NULL DEFAULT 'UAH',
			status TEXT NOT NULL DEFAULT 'upcoming',
			cover_url TEXT NOT NULL DEFAULT '',
			schedule TEXT NOT NULL DEFAULT '[]',
			included TEXT NOT NULL DEFAULT '[]',
			excluded TEXT NOT NULL DEFAULT '[]',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE galleries (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			event_id INTEGER REFERENCES events(id) ON DELETE SET NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE gallery_images (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			gallery_id INTEGER NOT NULL REFERENCES galleries(id) ON DELETE CASCADE,
			url TEXT NOT NULL,
			public_id TEXT NOT NULL DEFAULT '',
			alt TEXT NOT NULL DEFAULT '',
			position INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE contacts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			phone TEXT NOT NULL DEFAULT '',
			subject TEXT NOT NULL DEFAULT '',
			message TEXT NOT NULL,
			is_read INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE pages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			slug TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			body TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE testimonials (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			author TEXT NOT NULL,
			location TEXT NOT NULL DEFAULT '',
			text TEXT NOT NULL,
			rating INTEGER,
			is_published INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE audit_log (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level TEXT NOT NULL,
			category TEXT NOT NULL,
			message TEXT NOT NULL,
			metadata TEXT NOT NULL DEFAULT '{}',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	hash, err := auth.HashPassword(testAdminPassword)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if _, err := store.New(db).CreateSetting(context.Background(), store.CreateSettingParams{
		Secret:    hash,
		UpdatedAt: time.Now(),
	}); err != nil {
		t.Fatalf("CreateSetting: %v", err)
	}

	return db
}

// testEnv bundles the router and its backing handler for request tests.
type testEnv struct {
	db      *sql.DB
	handler *Handler
	router  chi.Router
	secrets *auth.SecretService
}

// newTestEnv wires the full route table, minus CSRF, against an in-memory
// database.
func newTestEnv(t *testing.T, storage *uploader.Client) *testEnv {
	t.Helper()

	db := testDB(t)
	if storage == nil {
		storage = uploader.New(uploader.Config{})
	}
	logins := middleware.NewLoginProtection(middleware.LoginProtectionConfig{
		IPRateLimit: 1000,
		IPBurst:     1000,
	})
	h := NewHandler(db, storage, logins, true)
	secrets := auth.NewSecretService(db)

	r := chi.NewRouter()
	r.Get("/health", h.Health)
	r.Get("/api/status", h.Status)

	r.Get("/api/events", h.ListEvents)
	r.Get("/api/events/{id}", h.GetEvent)
	r.Get("/api/galleries", h.ListGalleries)
	r.Get("/api/galleries/{id}", h.GetGallery)
	r.Get("/api/pages", h.ListPages)
	r.Get("/api/pages/{slug}", h.GetPageBySlug)
	r.Get("/api/testimonials", h.ListTestimonials(false))
	r.Post("/api/contact", h.SubmitContact)

	r.Group(func(r chi.Router) {
		r.Use(logins.Middleware())
		r.Post("/api/admin/login", h.Login)
	})
	r.Get("/api/admin/check-auth", h.CheckAuth)
	r.Post("/api/admin/logout", h.Logout)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdminCookie)
		r.Use(middleware.AdminAuth(secrets))

		r.Put("/api/admin/settings/password", h.ChangePassword)
		r.Get("/api/contact", h.ListContacts)
		r.Patch("/api/contact/{id}", h.MarkContactRead)
		r.Delete("/api/contact/{id}", h.DeleteContact)
		r.Get("/api/admin/testimonials", h.ListTestimonials(true))
		r.Get("/api/admin/audit", h.ListAuditEntries)
		r.Post("/api/upload", h.Upload)

		r.Post("/api/events", h.CreateEvent)
		r.Put("/api/events/{id}", h.UpdateEvent)
		r.Delete("/api/events/{id}", h.DeleteEvent)

		r.Post("/api/galleries", h.CreateGallery)
		r.Put("/api/galleries/{id}", h.UpdateGallery)
		r.Delete("/api/galleries/{id}", h.DeleteGallery)
		r.Post("/api/galleries/{id}/images", h.AddGalleryImage)
		r.Delete("/api/galleries/{id}/images/{imageID}", h.DeleteGalleryImage)

		r.Post("/api/pages", h.CreatePage)
		r.Put("/api/pages/{id}", h.UpdatePage)
		r.Delete("/api/pages/{id}", h.DeletePage)

		r.Post("/api/testimonials", h.CreateTestimonial)
		r.Put("/api/testimonials/{id}", h.UpdateTestimonial)
		r.Delete("/api/testimonials/{id}", h.DeleteTestimonial)
	})

	return &testEnv{db: db, handler: h, router: r, secrets: secrets}
}

// adminCookie returns a cookie carrying the current stored hash.
func (e *testEnv) adminCookie(t *testing.T) *http.Cookie {
	t.Helper()

	hash, err := e.secrets.CurrentHash(context.Background())
	if err != nil {
		t.Fatalf("CurrentHash: %v", err)
	}
	return &http.Cookie{Name: auth.CookieName, Value: hash}
}

// do executes a JSON request against the router.
func (e *testEnv) do(t *testing.T, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshaling body: %v", err)
		}
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// decodeData unmarshals the "data" field of a response envelope into dst.
func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding envelope: %v (body: %s)", err, rec.Body.String())
	}
	if err := json.Unmarshal(envelope.Data, dst); err != nil {
		t.Fatalf("decoding data: %v (body: %s)", err, rec.Body.String())
	}
}
