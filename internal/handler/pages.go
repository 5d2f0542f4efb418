package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"palomnyk-go/internal/model"
	"palomnyk-go/internal/store"
	"palomnyk-go/internal/util"
)

// PageResponse represents an informational page. Body is the stored
// markdown source; BodyHTML is the rendered, sanitized output.
type PageResponse struct {
	ID        int64     `json:"id"`
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	BodyHTML  string    `json:"body_html,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreatePageRequest is the request body for creating a page.
type CreatePageRequest struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// UpdatePageRequest is the request body for updating a page.
type UpdatePageRequest struct {
	Slug  *string `json:"slug,omitempty"`
	Title *string `json:"title,omitempty"`
	Body  *string `json:"body,omitempty"`
}

func storePageToResponse(p store.Page, renderBody bool) PageResponse {
	resp := PageResponse{
		ID:        p.ID,
		Slug:      p.Slug,
		Title:     p.Title,
		Body:      p.Body,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if renderBody {
		html, err := model.RenderMarkdown(p.Body)
		if err != nil {
			slog.Error("failed to render page body", "error", err, "slug", p.Slug)
		} else {
			resp.BodyHTML = html
		}
	}
	return resp
}

// ListPages handles GET /api/pages.
func (h *Handler) ListPages(w http.ResponseWriter, r *http.Request) {
	pages, err := h.queries.ListPages(r.Context())
	if err != nil {
		slog.Error("failed to list pages", "error", err)
		WriteInternalError(w, "Failed to list pages")
		return
	}

	responses := make([]PageResponse, 0, len(pages))
	for _, p := range pages {
		responses = append(responses, storePageToResponse(p, false))
	}

	WriteSuccess(w, responses, &Meta{Total: int64(len(responses))})
}

// GetPageBySlug handles GET /api/pages/{slug}. The body is rendered to
// HTML for the public site.
func (h *Handler) GetPageBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if !util.IsValidSlug(slug) {
		WriteBadRequest(w, "Invalid slug", nil)
		return
	}

	page, err := h.queries.GetPageBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Page not found")
			return
		}
		slog.Error("failed to get page", "error", err, "slug", slug)
		WriteInternalError(w, "Failed to get page")
		return
	}

	WriteSuccess(w, storePageToResponse(page, true), nil)
}

// CreatePage handles POST /api/pages (admin). An empty slug is derived
// from the title.
func (h *Handler) CreatePage(w http.ResponseWriter, r *http.Request) {
	var req CreatePageRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "Invalid request body", nil)
		return
	}
	if req.Title == "" {
		WriteBadRequest(w, "Title is required", nil)
		return
	}

	slug := req.Slug
	if slug == "" {
		slug = util.Slugify(req.Title)
	}
	if !util.IsValidSlug(slug) {
		WriteBadRequest(w, "Invalid slug", nil)
		return
	}

	taken, err := h.queries.PageSlugExists(r.Context(), store.PageSlugExistsParams{Slug: slug, ID: 0})
	if err != nil {
		slog.Error("failed to check slug", "error", err)
		WriteInternalError(w, "Failed to create page")
		return
	}
	if taken > 0 {
		WriteError(w, http.StatusConflict, "conflict", "Slug is already in use", nil)
		return
	}

	now := time.Now()
	page, err := h.queries.CreatePage(r.Context(), store.CreatePageParams{
		Slug:      slug,
		Title:     req.Title,
		Body:      req.Body,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		slog.Error("failed to create page", "error", err)
		WriteInternalError(w, "Failed to create page")
		return
	}

	WriteCreated(w, storePageToResponse(page, false))
}

// UpdatePage handles PUT /api/pages/{id} (admin).
func (h *Handler) UpdatePage(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid page ID", nil)
		return
	}

	page, err := h.queries.GetPageByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Page not found")
			return
		}
		slog.Error("failed to get page", "error", err, "id", id)
		WriteInternalError(w, "Failed to get page")
		return
	}

	var req UpdatePageRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	params := store.UpdatePageParams{
		Slug:      page.Slug,
		Title:     page.Title,
		Body:      page.Body,
		UpdatedAt: time.Now(),
		ID:        page.ID,
	}

	if req.Slug != nil {
		if !util.IsValidSlug(*req.Slug) {
			WriteBadRequest(w, "Invalid slug", nil)
			return
		}
		taken, err := h.queries.PageSlugExists(r.Context(), store.PageSlugExistsParams{
			Slug: *req.Slug, ID: page.ID,
		})
		if err != nil {
			slog.Error("failed to check slug", "error", err)
			WriteInternalError(w, "Failed to update page")
			return
		}
		if taken > 0 {
			WriteError(w, http.StatusConflict, "conflict", "Slug is already in use", nil)
			return
		}
		params.Slug = *req.Slug
	}
	if req.Title != nil {
		if *req.Title == "" {
			WriteBadRequest(w, "Title cannot be empty", nil)
			return
		}
		params.Title = *req.Title
	}
	if req.Body != nil {
		params.Body = *req.Body
	}

	updated, err := h.queries.UpdatePage(r.Context(), params)
	if err != nil {
		slog.Error("failed to update page", "error", err, "id", id)
		WriteInternalError(w, "Failed to update page")
		return
	}

	WriteSuccess(w, storePageToResponse(updated, false), nil)
}

// DeletePage handles DELETE /api/pages/{id} (admin).
func (h *Handler) DeletePage(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid page ID", nil)
		return
	}

	if _, err := h.queries.GetPageByID(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Page not found")
			return
		}
		slog.Error("failed to get page", "error", err, "id", id)
		WriteInternalError(w, "Failed to get page")
		return
	}

	if err := h.queries.DeletePage(r.Context(), id); err != nil {
		slog.Error("failed to delete page", "error", err, "id", id)
		WriteInternalError(w, "Failed to delete page")
		return
	}

	WriteSuccess(w, map[string]bool{"deleted": true}, nil)
}
