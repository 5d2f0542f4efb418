package auth

import (
	"net/http"
	"time"
)

// CookieName is the admin session cookie. Its value is the current bcrypt
// hash of the admin secret; a request is authenticated iff the cookie value
// byte-equals the stored hash. Rotating the secret therefore invalidates
// every outstanding cookie at once.
const CookieName = "admin_auth"

// CookieMaxAge is the session cookie lifetime.
const CookieMaxAge = 24 * time.Hour

// IssueCookie sets the admin session cookie carrying the given hash.
// The cookie is HttpOnly and SameSite=Strict; Secure is relaxed only in
// development so local HTTP testing works.
func IssueCookie(w http.ResponseWriter, hash string, isDevelopment bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    hash,
		Path:     "/",
		MaxAge:   int(CookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   !isDevelopment,
		SameSite: http.SameSiteStrictMode,
	})
}

// ClearCookie expires the admin session cookie.
func ClearCookie(w http.ResponseWriter, isDevelopment bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   !isDevelopment,
		SameSite: http.SameSiteStrictMode,
	})
}

// CookieValue extracts the admin session cookie value from a request.
// Returns "" when the cookie is absent.
func CookieValue(r *http.Request) string {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return c.Value
}
