package handler

import (
	"net/http"

	"palomnyk-go/internal/version"
)

// Health handles GET /health. It reports readiness including database
// connectivity.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.db.PingContext(r.Context()); err != nil {
		WriteError(w, http.StatusServiceUnavailable, "unavailable", "Database is not reachable", nil)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Status handles GET /api/status with version information.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, map[string]string{
		"name":    "palomnyk",
		"version": version.Version,
	}, nil)
}
