package auth

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"palomnyk-go/internal/store"
)

// ErrNoSecret indicates that no admin secret has been seeded. Verification
// against a missing secret fails closed; cookie issuance reports it as a
// configuration error instead.
var ErrNoSecret = errors.New("auth: no admin secret configured")

// ErrSecretRotated indicates the stored secret changed between verification
// and rotation (a concurrent rotation won the compare-and-swap).
var ErrSecretRotated = errors.New("auth: secret changed concurrently")

// SecretService verifies and rotates the single shared admin secret.
type SecretService struct {
	queries *store.Queries
}

// NewSecretService creates a SecretService backed by the given database.
func NewSecretService(db *sql.DB) *SecretService {
	return &SecretService{queries: store.New(db)}
}

// CurrentHash returns the stored bcrypt hash of the admin secret.
// Returns ErrNoSecret if no record exists.
func (s *SecretService) CurrentHash(ctx context.Context) (string, error) {
	setting, err := s.queries.GetSetting(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNoSecret
		}
		return "", fmt.Errorf("reading admin secret: %w", err)
	}
	return setting.Secret, nil
}

// Verify reports whether the submitted plaintext phrase matches the stored
// secret. A missing secret record and any storage error both fail closed.
func (s *SecretService) Verify(ctx context.Context, phrase string) (bool, error) {
	hash, err := s.CurrentHash(ctx)
	if err != nil {
		if errors.Is(err, ErrNoSecret) {
			return false, nil
		}
		return false, err
	}
	return CheckPassword(phrase, hash)
}

// Matches reports whether a candidate value (typically a cookie value)
// byte-equals the current stored hash. Any error is treated as no match.
func (s *SecretService) Matches(ctx context.Context, candidate string) bool {
	if candidate == "" {
		return false
	}
	hash, err := s.CurrentHash(ctx)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(hash)) == 1
}

// Rotate replaces the admin secret with the bcrypt hash of newPhrase after
// verifying currentPhrase against the stored hash. The write is guarded by
// a compare-and-swap on the verified hash: if another rotation lands in
// between, Rotate returns ErrSecretRotated and performs no write.
// On success the new hash is returned so the caller can re-issue the
// session cookie in the same response.
func (s *SecretService) Rotate(ctx context.Context, currentPhrase, newPhrase string) (string, error) {
	setting, err := s.queries.GetSetting(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNoSecret
		}
		return "", fmt.Errorf("reading admin secret: %w", err)
	}

	ok, err := CheckPassword(currentPhrase, setting.Secret)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrBadCredentials
	}

	newHash, err := HashPassword(newPhrase)
	if err != nil {
		return "", err
	}

	updated, err := s.queries.RotateSetting(ctx, store.RotateSettingParams{
		Secret:    newHash,
		UpdatedAt: time.Now(),
		ID:        setting.ID,
		OldSecret: setting.Secret,
	})
	if err != nil {
		return "", fmt.Errorf("rotating admin secret: %w", err)
	}
	if updated == 0 {
		return "", ErrSecretRotated
	}

	return newHash, nil
}

// ErrBadCredentials indicates the submitted current phrase did not verify.
var ErrBadCredentials = errors.New("auth: incorrect password")
