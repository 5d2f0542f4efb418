package logging

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"

	_ "modernc.org/sqlite"

	"palomnyk-go/internal/model"
	"palomnyk-go/internal/store"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	schema := `
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
	return db
}

func testLogger(db *sql.DB) *slog.Logger {
	inner := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(NewAuditLogHandler(inner, db))
}

func auditEntries(t *testing.T, db *sql.DB) []store.AuditEntry {
	t.Helper()
	entries, err := store.New(db).ListAuditEntries(context.Background(), 100)
	if err != nil {
		t.Fatalf("ListAuditEntries: %v", err)
	}
	return entries
}

func TestWarnAndErrorAreMirrored(t *testing.T) {
	db := testDB(t)
	logger := testLogger(db)

	logger.Warn("login failed", "ip", "203.0.113.9")
	logger.Error("upload rejected", "reason", "too large")

	entries := auditEntries(t, db)
	if len(entries) != 2 {
		t.Fatalf("audit entries = %d, want 2", len(entries))
	}
}

func TestInfoIsNotMirrored(t *testing.T) {
	db := testDB(t)
	logger := testLogger(db)

	logger.Info("server started")

	if entries := auditEntries(t, db); len(entries) != 0 {
		t.Errorf("INFO record mirrored into audit log: %d entries", len(entries))
	}
}

func TestLevelAndCategoryMapping(t *testing.T) {
	db := testDB(t)
	logger := testLogger(db)

	logger.Error("login failed", "ip", "203.0.113.9")

	entries := auditEntries(t, db)
	if len(entries) != 1 {
		t.Fatalf("audit entries = %d, want 1", len(entries))
	}
	e := entries[0]
	if e.Level != model.AuditLevelError {
		t.Errorf("Level = %q, want %q", e.Level, model.AuditLevelError)
	}
	if e.Category != model.AuditCategoryAuth {
		t.Errorf("Category = %q, want %q", e.Category, model.AuditCategoryAuth)
	}
}

func TestExplicitCategoryAttr(t *testing.T) {
	db := testDB(t)
	logger := testLogger(db)

	logger.Warn("something odd", "category", model.AuditCategoryMedia)

	entries := auditEntries(t, db)
	if len(entries) != 1 {
		t.Fatalf("audit entries = %d, want 1", len(entries))
	}
	if entries[0].Category != model.AuditCategoryMedia {
		t.Errorf("Category = %q, want %q", entries[0].Category, model.AuditCategoryMedia)
	}
}

func TestMetadataCapturesAttrs(t *testing.T) {
	db := testDB(t)
	logger := testLogger(db)

	logger.Warn("login failed", "ip", "203.0.113.9")

	entries := auditEntries(t, db)
	if len(entries) != 1 {
		t.Fatalf("audit entries = %d, want 1", len(entries))
	}
	if entries[0].Metadata != `{"ip":"203.0.113.9"}` {
		t.Errorf("Metadata = %q", entries[0].Metadata)
	}
}
