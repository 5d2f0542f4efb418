package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"palomnyk-go/internal/model"
	"palomnyk-go/internal/store"
)

// TestimonialResponse represents a testimonial in API responses.
type TestimonialResponse struct {
	ID          int64     `json:"id"`
	Author      string    `json:"author"`
	Location    string    `json:"location,omitempty"`
	Text        string    `json:"text"`
	Rating      *int64    `json:"rating,omitempty"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateTestimonialRequest is the request body for creating a testimonial.
type CreateTestimonialRequest struct {
	Author      string `json:"author"`
	Location    string `json:"location"`
	Text        string `json:"text"`
	Rating      *int64 `json:"rating,omitempty"`
	IsPublished *bool  `json:"is_published,omitempty"`
}

// UpdateTestimonialRequest is the request body for updating a testimonial.
type UpdateTestimonialRequest struct {
	Author      *string `json:"author,omitempty"`
	Location    *string `json:"location,omitempty"`
	Text        *string `json:"text,omitempty"`
	Rating      *int64  `json:"rating,omitempty"`
	ClearRating bool    `json:"clear_rating,omitempty"`
	IsPublished *bool   `json:"is_published,omitempty"`
}

func storeTestimonialToResponse(t store.Testimonial) TestimonialResponse {
	resp := TestimonialResponse{
		ID:          t.ID,
		Author:      t.Author,
		Location:    t.Location,
		Text:        t.Text,
		IsPublished: t.IsPublished != 0,
		CreatedAt:   t.CreatedAt,
	}
	if t.Rating.Valid {
		resp.Rating = &t.Rating.Int64
	}
	return resp
}

func validRating(r int64) bool {
	return r >= model.MinRating && r <= model.MaxRating
}

// ListTestimonials handles GET /api/testimonials. The public route serves
// published entries only; the admin variant passes all=true.
func (h *Handler) ListTestimonials(all bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		testimonials, err := h.queries.ListTestimonials(r.Context(), !all)
		if err != nil {
			slog.Error("failed to list testimonials", "error", err)
			WriteInternalError(w, "Failed to list testimonials")
			return
		}

		responses := make([]TestimonialResponse, 0, len(testimonials))
		for _, t := range testimonials {
			responses = append(responses, storeTestimonialToResponse(t))
		}

		WriteSuccess(w, responses, &Meta{Total: int64(len(responses))})
	}
}

// CreateTestimonial handles POST /api/testimonials (admin).
func (h *Handler) CreateTestimonial(w http.ResponseWriter, r *http.Request) {
	var req CreateTestimonialRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "Invalid request body", nil)
		return
	}
	if req.Author == "" || req.Text == "" {
		WriteBadRequest(w, "Author and text are required", nil)
		return
	}

	var rating sql.NullInt64
	if req.Rating != nil {
		if !validRating(*req.Rating) {
			WriteBadRequest(w, "Rating must be between 1 and 5", nil)
			return
		}
		rating = sql.NullInt64{Int64: *req.Rating, Valid: true}
	}

	isPublished := int64(1)
	if req.IsPublished != nil && !*req.IsPublished {
		isPublished = 0
	}

	testimonial, err := h.queries.CreateTestimonial(r.Context(), store.CreateTestimonialParams{
		Author:      req.Author,
		Location:    req.Location,
		Text:        req.Text,
		Rating:      rating,
		IsPublished: isPublished,
		CreatedAt:   time.Now(),
	})
	if err != nil {
		slog.Error("failed to create testimonial", "error", err)
		WriteInternalError(w, "Failed to create testimonial")
		return
	}

	WriteCreated(w, storeTestimonialToResponse(testimonial))
}

// UpdateTestimonial handles PUT /api/testimonials/{id} (admin).
func (h *Handler) UpdateTestimonial(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid testimonial ID", nil)
		return
	}

	testimonial, err := h.queries.GetTestimonialByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Testimonial not found")
			return
		}
		slog.Error("failed to get testimonial", "error", err, "id", id)
		WriteInternalError(w, "Failed to get testimonial")
		return
	}

	var req UpdateTestimonialRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	params := store.UpdateTestimonialParams{
		Author:      testimonial.Author,
		Location:    testimonial.Location,
		Text:        testimonial.Text,
		Rating:      testimonial.Rating,
		IsPublished: testimonial.IsPublished,
		ID:          testimonial.ID,
	}

	if req.Author != nil {
		if *req.Author == "" {
			WriteBadRequest(w, "Author cannot be empty", nil)
			return
		}
		params.Author = *req.Author
	}
	if req.Location != nil {
		params.Location = *req.Location
	}
	if req.Text != nil {
		if *req.Text == "" {
			WriteBadRequest(w, "Text cannot be empty", nil)
			return
		}
		params.Text = *req.Text
	}
	if req.ClearRating {
		params.Rating = sql.NullInt64{}
	} else if req.Rating != nil {
		if !validRating(*req.Rating) {
			WriteBadRequest(w, "Rating must be between 1 and 5", nil)
			return
		}
		params.Rating = sql.NullInt64{Int64: *req.Rating, Valid: true}
	}
	if req.IsPublished != nil {
		params.IsPublished = 0
		if *req.IsPublished {
			params.IsPublished = 1
		}
	}

	updated, err := h.queries.UpdateTestimonial(r.Context(), params)
	if err != nil {
		slog.Error("failed to update testimonial", "error", err, "id", id)
		WriteInternalError(w, "Failed to update testimonial")
		return
	}

	WriteSuccess(w, storeTestimonialToResponse(updated), nil)
}

// DeleteTestimonial handles DELETE /api/testimonials/{id} (admin).
func (h *Handler) DeleteTestimonial(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid testimonial ID", nil)
		return
	}

	if _, err := h.queries.GetTestimonialByID(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Testimonial not found")
			return
		}
		slog.Error("failed to get testimonial", "error", err, "id", id)
		WriteInternalError(w, "Failed to get testimonial")
		return
	}

	if err := h.queries.DeleteTestimonial(r.Context(), id); err != nil {
		slog.Error("failed to delete testimonial", "error", err, "id", id)
		WriteInternalError(w, "Failed to delete testimonial")
		return
	}

	WriteSuccess(w, map[string]bool{"deleted": true}, nil)
}
