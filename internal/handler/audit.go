package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"
)

// DefaultAuditLimit bounds GET /api/admin/audit when no limit is given.
const DefaultAuditLimit = 100

// AuditEntryResponse represents one audit log record.
type AuditEntryResponse struct {
	ID        int64     `json:"id"`
	Level     string    `json:"level"`
	Category  string    `json:"category"`
	Message   string    `json:"message"`
	Metadata  string    `json:"metadata"`
	CreatedAt time.Time `json:"created_at"`
}

// ListAuditEntries handles GET /api/admin/audit.
func (h *Handler) ListAuditEntries(w http.ResponseWriter, r *http.Request) {
	limit := int64(DefaultAuditLimit)
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil || n < 1 || n > 1000 {
			WriteBadRequest(w, "Invalid limit", nil)
			return
		}
		limit = n
	}

	entries, err := h.queries.ListAuditEntries(r.Context(), limit)
	if err != nil {
		slog.Error("failed to list audit entries", "error", err)
		WriteInternalError(w, "Failed to list audit entries")
		return
	}

	responses := make([]AuditEntryResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, AuditEntryResponse{
			ID:        e.ID,
			Level:     e.Level,
			Category:  e.Category,
			Message:   e.Message,
			Metadata:  e.Metadata,
			CreatedAt: e.CreatedAt,
		})
	}

	WriteSuccess(w, responses, &Meta{Total: int64(len(responses))})
}
