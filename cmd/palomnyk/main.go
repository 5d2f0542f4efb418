package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"palomnyk-go/internal/auth"
	"palomnyk-go/internal/config"
	"palomnyk-go/internal/handler"
	"palomnyk-go/internal/logging"
	"palomnyk-go/internal/middleware"
	"palomnyk-go/internal/store"
	"palomnyk-go/internal/uploader"
	"palomnyk-go/internal/version"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "palomnyk - pilgrimage trips backend\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PLMK_SECRET_KEY         CSRF signing key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PLMK_DB_PATH            SQLite database path (default: ./data/palomnyk.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PLMK_SERVER_PORT        Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PLMK_ENV                Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PLMK_STORAGE_URL        Image storage service endpoint (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PLMK_STORAGE_API_KEY    Image storage API key\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PLMK_STORAGE_API_SECRET Image storage API secret\n")
	}

	flag.Parse()

	if *showVersion {
		_, _ = fmt.Printf("palomnyk %s\n", version.Version)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Ensure data directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Upgrade logger to mirror WARN and ERROR records into the audit log
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(logging.NewAuditLogHandler(textHandler, db))
	slog.SetDefault(logger)
	slog.Info("audit log integration enabled", "min_level", "warn")

	if err := store.Seed(context.Background(), db); err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}

	storage := uploader.New(uploader.Config{
		BaseURL:   cfg.StorageUploadURL,
		APIKey:    cfg.StorageAPIKey,
		APISecret: cfg.StorageAPISecret,
		Folder:    cfg.StorageFolder,
	})
	if storage.Configured() {
		slog.Info("image storage configured", "url", cfg.StorageUploadURL)
	} else {
		slog.Warn("image storage not configured, uploads disabled")
	}

	logins := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	h := handler.NewHandler(db, storage, logins, cfg.IsDevelopment())

	r := buildRouter(h, db, logins, cfg)

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

func buildRouter(h *handler.Handler, db *sql.DB, logins *middleware.LoginProtection, cfg *config.Config) chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))

	secrets := auth.NewSecretService(db)
	csrfProtect := middleware.CSRF(middleware.DefaultCSRFConfig([]byte(cfg.SecretKey), cfg.IsDevelopment()))

	r.Get("/health", h.Health)
	r.Get("/api/status", h.Status)

	// Public catalog
	r.Get("/api/events", h.ListEvents)
	r.Get("/api/events/{id}", h.GetEvent)
	r.Get("/api/galleries", h.ListGalleries)
	r.Get("/api/galleries/{id}", h.GetGallery)
	r.Get("/api/pages", h.ListPages)
	r.Get("/api/pages/{slug}", h.GetPageBySlug)
	r.Get("/api/testimonials", h.ListTestimonials(false))
	r.Post("/api/contact", h.SubmitContact)

	// Admin session endpoints
	r.Group(func(r chi.Router) {
		r.Use(logins.Middleware())
		r.Post("/api/admin/login", h.Login)
	})
	r.Get("/api/admin/check-auth", h.CheckAuth)
	r.Post("/api/admin/logout", h.Logout)

	// Admin panel: presence prefilter, full cookie validation, CSRF
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdminCookie)
		r.Use(middleware.AdminAuth(secrets))
		r.Use(csrfProtect)

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

	return r
}
