package middleware

import (
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"

	"palomnyk-go/internal/auth"
)

// RequireAdminCookie rejects requests that do not carry the admin session
// cookie at all. It is a cheap prefilter in front of AdminAuth so absent
// cookies never reach the database.
func RequireAdminCookie(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth.CookieValue(r) == "" {
			WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "Authentication required", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// AdminAuth creates middleware that validates the admin session cookie
// against the stored secret hash. The cookie value must byte-equal the
// current hash; anything else, including a storage failure, is rejected.
func AdminAuth(svc *auth.SecretService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			candidate := auth.CookieValue(r)
			if candidate == "" {
				WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "Authentication required", nil)
				return
			}

			hash, err := svc.CurrentHash(r.Context())
			if err != nil {
				if !errors.Is(err, auth.ErrNoSecret) {
					slog.Error("failed to load admin secret", "error", err)
				}
				WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "Authentication required", nil)
				return
			}

			if subtle.ConstantTimeCompare([]byte(candidate), []byte(hash)) != 1 {
				WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "Session is no longer valid", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
