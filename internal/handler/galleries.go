package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"palomnyk-go/internal/store"
)

// GalleryImageResponse represents one gallery image.
type GalleryImageResponse struct {
	ID       int64  `json:"id"`
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
	Alt      string `json:"alt,omitempty"`
	Position int64  `json:"position"`
}

// GalleryResponse represents a gallery with its images.
type GalleryResponse struct {
	ID          int64                  `json:"id"`
	Title       string                 `json:"title"`
	Description string                 `json:"description,omitempty"`
	EventID     *int64                 `json:"event_id,omitempty"`
	Images      []GalleryImageResponse `json:"images"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// GalleryImageRequest describes an image when creating a gallery or adding
// an image.
type GalleryImageRequest struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
	Alt      string `json:"alt"`
	Position int64  `json:"position"`
}

// CreateGalleryRequest is the request body for creating a gallery.
type CreateGalleryRequest struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	EventID     *int64                `json:"event_id,omitempty"`
	Images      []GalleryImageRequest `json:"images"`
}

// UpdateGalleryRequest is the request body for updating gallery metadata.
type UpdateGalleryRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	EventID     *int64  `json:"event_id,omitempty"`
	DetachEvent bool    `json:"detach_event,omitempty"`
}

func storeImageToResponse(img store.GalleryImage) GalleryImageResponse {
	return GalleryImageResponse{
		ID:       img.ID,
		URL:      img.Url,
		PublicID: img.PublicID,
		Alt:      img.Alt,
		Position: img.Position,
	}
}

func (h *Handler) galleryToResponse(r *http.Request, g store.Gallery) (GalleryResponse, error) {
	images, err := h.queries.ListGalleryImages(r.Context(), g.ID)
	if err != nil {
		return GalleryResponse{}, err
	}

	resp := GalleryResponse{
		ID:          g.ID,
		Title:       g.Title,
		Description: g.Description,
		Images:      make([]GalleryImageResponse, 0, len(images)),
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
	if g.EventID.Valid {
		resp.EventID = &g.EventID.Int64
	}
	for _, img := range images {
		resp.Images = append(resp.Images, storeImageToResponse(img))
	}
	return resp, nil
}

// ListGalleries handles GET /api/galleries.
func (h *Handler) ListGalleries(w http.ResponseWriter, r *http.Request) {
	galleries, err := h.queries.ListGalleries(r.Context())
	if err != nil {
		slog.Error("failed to list galleries", "error", err)
		WriteInternalError(w, "Failed to list galleries")
		return
	}

	responses := make([]GalleryResponse, 0, len(galleries))
	for _, g := range galleries {
		resp, err := h.galleryToResponse(r, g)
		if err != nil {
			slog.Error("failed to load gallery images", "error", err, "gallery_id", g.ID)
			WriteInternalError(w, "Failed to list galleries")
			return
		}
		responses = append(responses, resp)
	}

	WriteSuccess(w, responses, &Meta{Total: int64(len(responses))})
}

// GetGallery handles GET /api/galleries/{id}.
func (h *Handler) GetGallery(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid gallery ID", nil)
		return
	}

	gallery, err := h.queries.GetGalleryByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Gallery not found")
			return
		}
		slog.Error("failed to get gallery", "error", err, "id", id)
		WriteInternalError(w, "Failed to get gallery")
		return
	}

	resp, err := h.galleryToResponse(r, gallery)
	if err != nil {
		slog.Error("failed to load gallery images", "error", err, "gallery_id", id)
		WriteInternalError(w, "Failed to get gallery")
		return
	}

	WriteSuccess(w, resp, nil)
}

// CreateGallery handles POST /api/galleries (admin). The gallery and its
// initial images are inserted in one transaction.
func (h *Handler) CreateGallery(w http.ResponseWriter, r *http.Request) {
	var req CreateGalleryRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "Invalid request body", nil)
		return
	}
	if req.Title == "" {
		WriteBadRequest(w, "Title is required", nil)
		return
	}
	for i, img := range req.Images {
		if img.URL == "" {
			WriteBadRequest(w, "Image URL is required", map[string]string{
				"index": strconv.Itoa(i),
			})
			return
		}
	}

	var eventID sql.NullInt64
	if req.EventID != nil {
		if _, err := h.queries.GetEventByID(r.Context(), *req.EventID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				WriteBadRequest(w, "Referenced event does not exist", nil)
				return
			}
			slog.Error("failed to check event", "error", err)
			WriteInternalError(w, "Failed to create gallery")
			return
		}
		eventID = sql.NullInt64{Int64: *req.EventID, Valid: true}
	}

	tx, err := h.db.BeginTx(r.Context(), nil)
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		WriteInternalError(w, "Failed to create gallery")
		return
	}
	defer func() { _ = tx.Rollback() }()

	qtx := h.queries.WithTx(tx)
	now := time.Now()

	gallery, err := qtx.CreateGallery(r.Context(), store.CreateGalleryParams{
		Title:       req.Title,
		Description: req.Description,
		EventID:     eventID,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		slog.Error("failed to create gallery", "error", err)
		WriteInternalError(w, "Failed to create gallery")
		return
	}

	for i, img := range req.Images {
		position := img.Position
		if position == 0 {
			position = int64(i)
		}
		if _, err := qtx.CreateGalleryImage(r.Context(), store.CreateGalleryImageParams{
			GalleryID: gallery.ID,
			Url:       img.URL,
			PublicID:  img.PublicID,
			Alt:       img.Alt,
			Position:  position,
			CreatedAt: now,
		}); err != nil {
			slog.Error("failed to create gallery image", "error", err)
			WriteInternalError(w, "Failed to create gallery")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit gallery", "error", err)
		WriteInternalError(w, "Failed to create gallery")
		return
	}

	resp, err := h.galleryToResponse(r, gallery)
	if err != nil {
		slog.Error("failed to load gallery images", "error", err, "gallery_id", gallery.ID)
		WriteInternalError(w, "Failed to create gallery")
		return
	}

	WriteCreated(w, resp)
}

// UpdateGallery handles PUT /api/galleries/{id} (admin).
func (h *Handler) UpdateGallery(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid gallery ID", nil)
		return
	}

	gallery, err := h.queries.GetGalleryByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Gallery not found")
			return
		}
		slog.Error("failed to get gallery", "error", err, "id", id)
		WriteInternalError(w, "Failed to get gallery")
		return
	}

	var req UpdateGalleryRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	params := store.UpdateGalleryParams{
		Title:       gallery.Title,
		Description: gallery.Description,
		EventID:     gallery.EventID,
		UpdatedAt:   time.Now(),
		ID:          gallery.ID,
	}

	if req.Title != nil {
		if *req.Title == "" {
			WriteBadRequest(w, "Title cannot be empty", nil)
			return
		}
		params.Title = *req.Title
	}
	if req.Description != nil {
		params.Description = *req.Description
	}
	if req.DetachEvent {
		params.EventID = sql.NullInt64{}
	} else if req.EventID != nil {
		if _, err := h.queries.GetEventByID(r.Context(), *req.EventID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				WriteBadRequest(w, "Referenced event does not exist", nil)
				return
			}
			slog.Error("failed to check event", "error", err)
			WriteInternalError(w, "Failed to update gallery")
			return
		}
		params.EventID = sql.NullInt64{Int64: *req.EventID, Valid: true}
	}

	updated, err := h.queries.UpdateGallery(r.Context(), params)
	if err != nil {
		slog.Error("failed to update gallery", "error", err, "id", id)
		WriteInternalError(w, "Failed to update gallery")
		return
	}

	resp, err := h.galleryToResponse(r, updated)
	if err != nil {
		slog.Error("failed to load gallery images", "error", err, "gallery_id", id)
		WriteInternalError(w, "Failed to update gallery")
		return
	}

	WriteSuccess(w, resp, nil)
}

// DeleteGallery handles DELETE /api/galleries/{id} (admin). Images go with
// the gallery.
func (h *Handler) DeleteGallery(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid gallery ID", nil)
		return
	}

	if _, err := h.queries.GetGalleryByID(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Gallery not found")
			return
		}
		slog.Error("failed to get gallery", "error", err, "id", id)
		WriteInternalError(w, "Failed to get gallery")
		return
	}

	if err := h.queries.DeleteGallery(r.Context(), id); err != nil {
		slog.Error("failed to delete gallery", "error", err, "id", id)
		WriteInternalError(w, "Failed to delete gallery")
		return
	}

	WriteSuccess(w, map[string]bool{"deleted": true}, nil)
}

// AddGalleryImage handles POST /api/galleries/{id}/images (admin).
func (h *Handler) AddGalleryImage(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid gallery ID", nil)
		return
	}

	if _, err := h.queries.GetGalleryByID(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Gallery not found")
			return
		}
		slog.Error("failed to get gallery", "error", err, "id", id)
		WriteInternalError(w, "Failed to get gallery")
		return
	}

	var req GalleryImageRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "Invalid request body", nil)
		return
	}
	if req.URL == "" {
		WriteBadRequest(w, "Image URL is required", nil)
		return
	}

	img, err := h.queries.CreateGalleryImage(r.Context(), store.CreateGalleryImageParams{
		GalleryID: id,
		Url:       req.URL,
		PublicID:  req.PublicID,
		Alt:       req.Alt,
		Position:  req.Position,
		CreatedAt: time.Now(),
	})
	if err != nil {
		slog.Error("failed to add gallery image", "error", err, "gallery_id", id)
		WriteInternalError(w, "Failed to add image")
		return
	}

	WriteCreated(w, storeImageToResponse(img))
}

// DeleteGalleryImage handles DELETE /api/galleries/{id}/images/{imageID}
// (admin).
func (h *Handler) DeleteGalleryImage(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid gallery ID", nil)
		return
	}
	imageID, err := strconv.ParseInt(chi.URLParam(r, "imageID"), 10, 64)
	if err != nil {
		WriteBadRequest(w, "Invalid image ID", nil)
		return
	}

	if err := h.queries.DeleteGalleryImage(r.Context(), store.DeleteGalleryImageParams{
		ID:        imageID,
		GalleryID: id,
	}); err != nil {
		slog.Error("failed to delete gallery image", "error", err, "gallery_id", id, "image_id", imageID)
		WriteInternalError(w, "Failed to delete image")
		return
	}

	WriteSuccess(w, map[string]bool{"deleted": true}, nil)
}
