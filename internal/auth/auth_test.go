package auth

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"palomnyk-go/internal/store"
)

// testDB creates an in-memory SQLite database with the settings table.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	schema := `
		CREATE TABLE settings (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			secret TEXT NOT NULL,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

func seedSecret(t *testing.T, db *sql.DB, password string) string {
	t.Helper()

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	_, err = store.New(db).CreateSetting(context.Background(), store.CreateSettingParams{
		Secret:    hash,
		UpdatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("CreateSetting: %v", err)
	}
	return hash
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("pilgrim-road")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Errorf("hash %q does not look like bcrypt", hash)
	}

	ok, err := CheckPassword("pilgrim-road", hash)
	if err != nil {
		t.Fatalf("CheckPassword: %v", err)
	}
	if !ok {
		t.Error("correct password rejected")
	}

	ok, err = CheckPassword("wrong", hash)
	if err != nil {
		t.Fatalf("CheckPassword (wrong): %v", err)
	}
	if ok {
		t.Error("wrong password accepted")
	}
}

func TestCheckPasswordMalformedHash(t *testing.T) {
	_, err := CheckPassword("anything", "not-a-bcrypt-hash")
	if err == nil {
		t.Error("expected error for malformed hash")
	}
}

func TestVerify(t *testing.T) {
	db := testDB(t)
	seedSecret(t, db, "correct horse")
	svc := NewSecretService(db)
	ctx := context.Background()

	ok, err := svc.Verify(ctx, "correct horse")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Error("correct phrase rejected")
	}

	ok, err = svc.Verify(ctx, "battery staple")
	if err != nil {
		t.Fatalf("Verify (wrong): %v", err)
	}
	if ok {
		t.Error("wrong phrase accepted")
	}
}

func TestVerifyNoSecretFailsClosed(t *testing.T) {
	db := testDB(t)
	svc := NewSecretService(db)

	ok, err := svc.Verify(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if ok {
		t.Error("verification succeeded with no secret configured")
	}
}

func TestMatches(t *testing.T) {
	db := testDB(t)
	hash := seedSecret(t, db, "correct horse")
	svc := NewSecretService(db)
	ctx := context.Background()

	if !svc.Matches(ctx, hash) {
		t.Error("stored hash should match")
	}
	if svc.Matches(ctx, "") {
		t.Error("empty candidate should not match")
	}
	if svc.Matches(ctx, hash+"x") {
		t.Error("tampered candidate should not match")
	}
}

func TestMatchesFailsClosedOnStorageError(t *testing.T) {
	db := testDB(t)
	hash := seedSecret(t, db, "correct horse")
	svc := NewSecretService(db)
	db.Close()

	if svc.Matches(context.Background(), hash) {
		t.Error("match succeeded against a closed database")
	}
}

func TestRotate(t *testing.T) {
	db := testDB(t)
	oldHash := seedSecret(t, db, "old password")
	svc := NewSecretService(db)
	ctx := context.Background()

	newHash, err := svc.Rotate(ctx, "old password", "new password")
	if err != nil {
		t.Fatalf("Rotate: %v", err)
	}
	if newHash == oldHash {
		t.Error("rotation did not change the hash")
	}

	// Old cookie values are now invalid, the new hash is the session value.
	if svc.Matches(ctx, oldHash) {
		t.Error("old hash still matches after rotation")
	}
	if !svc.Matches(ctx, newHash) {
		t.Error("new hash does not match after rotation")
	}

	ok, err := svc.Verify(ctx, "new password")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Error("new password rejected after rotation")
	}
}

func TestRotateWrongCurrent(t *testing.T) {
	db := testDB(t)
	seedSecret(t, db, "old password")
	svc := NewSecretService(db)

	_, err := svc.Rotate(context.Background(), "not the password", "new password")
	if !errors.Is(err, ErrBadCredentials) {
		t.Errorf("Rotate = %v, want ErrBadCredentials", err)
	}
}

func TestRotateConcurrentLoser(t *testing.T) {
	db := testDB(t)
	seedSecret(t, db, "old password")
	svc := NewSecretService(db)
	ctx := context.Background()

	setting, err := store.New(db).GetSetting(ctx)
	if err != nil {
		t.Fatalf("GetSetting: %v", err)
	}

	// Simulate a rotation landing between verify and write.
	winner, err := HashPassword("winner password")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	n, err := store.New(db).RotateSetting(ctx, store.RotateSettingParams{
		Secret:    winner,
		UpdatedAt: time.Now(),
		ID:        setting.ID,
		OldSecret: setting.Secret,
	})
	if err != nil || n != 1 {
		t.Fatalf("RotateSetting: n=%d err=%v", n, err)
	}

	_, err = svc.Rotate(ctx, "old password", "loser password")
	if !errors.Is(err, ErrBadCredentials) && !errors.Is(err, ErrSecretRotated) {
		t.Errorf("Rotate after concurrent win = %v, want credential or rotation error", err)
	}

	if !svc.Matches(ctx, winner) {
		t.Error("winner's hash should remain the stored secret")
	}
}

func TestCookieRoundTrip(t *testing.T) {
	rec := httptest.NewRecorder()
	IssueCookie(rec, "$2a$10$hashvalue", false)

	res := rec.Result()
	cookies := res.Cookies()
	if len(cookies) != 1 {
		t.Fatalf("got %d cookies, want 1", len(cookies))
	}
	c := cookies[0]
	if c.Name != CookieName {
		t.Errorf("Name = %q, want %q", c.Name, CookieName)
	}
	if c.Value != "$2a$10$hashvalue" {
		t.Errorf("Value = %q", c.Value)
	}
	if !c.HttpOnly {
		t.Error("cookie should be HttpOnly")
	}
	if !c.Secure {
		t.Error("cookie should be Secure outside development")
	}
	if c.SameSite != http.SameSiteStrictMode {
		t.Errorf("SameSite = %v, want Strict", c.SameSite)
	}
	if c.MaxAge != int(CookieMaxAge.Seconds()) {
		t.Errorf("MaxAge = %d, want %d", c.MaxAge, int(CookieMaxAge.Seconds()))
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(c)
	if got := CookieValue(req); got != "$2a$10$hashvalue" {
		t.Errorf("CookieValue = %q", got)
	}
}

func TestCookieDevelopmentNotSecure(t *testing.T) {
	rec := httptest.NewRecorder()
	IssueCookie(rec, "hash", true)

	c := rec.Result().Cookies()[0]
	if c.Secure {
		t.Error("development cookie should not require HTTPS")
	}
}

func TestClearCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	ClearCookie(rec, false)

	c := rec.Result().Cookies()[0]
	if c.Value != "" {
		t.Errorf("cleared cookie value = %q, want empty", c.Value)
	}
	if c.MaxAge != -1 {
		t.Errorf("cleared cookie MaxAge = %d, want -1", c.MaxAge)
	}
}

func TestCookieValueAbsent(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := CookieValue(req); got != "" {
		t.Errorf("CookieValue with no cookie = %q, want empty", got)
	}
}
