package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"palomnyk-go/internal/model"
	"palomnyk-go/internal/store"
)

// EventResponse represents a trip in API responses.
type EventResponse struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Location    string     `json:"location"`
	Price       float64    `json:"price"`
	Currency    string     `json:"currency"`
	Status      string     `json:"status"`
	CoverURL    string     `json:"cover_url,omitempty"`
	Schedule    []string   `json:"schedule"`
	Included    []string   `json:"included"`
	Excluded    []string   `json:"excluded"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CreateEventRequest is the request body for creating a trip.
type CreateEventRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	StartDate   string   `json:"start_date"`
	EndDate     *string  `json:"end_date,omitempty"`
	Location    string   `json:"location"`
	Price       float64  `json:"price"`
	Currency    string   `json:"currency"`
	Status      string   `json:"status"`
	CoverURL    string   `json:"cover_url"`
	Schedule    []string `json:"schedule"`
	Included    []string `json:"included"`
	Excluded    []string `json:"excluded"`
}

// UpdateEventRequest is the request body for updating a trip. Only the
// fields present are changed.
type UpdateEventRequest struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	StartDate   *string   `json:"start_date,omitempty"`
	EndDate     *string   `json:"end_date,omitempty"`
	Location    *string   `json:"location,omitempty"`
	Price       *float64  `json:"price,omitempty"`
	Currency    *string   `json:"currency,omitempty"`
	Status      *string   `json:"status,omitempty"`
	CoverURL    *string   `json:"cover_url,omitempty"`
	Schedule    *[]string `json:"schedule,omitempty"`
	Included    *[]string `json:"included,omitempty"`
	Excluded    *[]string `json:"excluded,omitempty"`
}

func decodeStringList(raw string) []string {
	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil || items == nil {
		return []string{}
	}
	return items
}

func encodeStringList(items []string) string {
	if items == nil {
		items = []string{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func storeEventToResponse(e store.Event) EventResponse {
	resp := EventResponse{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		StartDate:   e.StartDate,
		Location:    e.Location,
		Price:       e.Price,
		Currency:    e.Currency,
		Status:      e.Status,
		CoverURL:    e.CoverUrl,
		Schedule:    decodeStringList(e.Schedule),
		Included:    decodeStringList(e.Included),
		Excluded:    decodeStringList(e.Excluded),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
	if e.EndDate.Valid {
		resp.EndDate = &e.EndDate.Time
	}
	return resp
}

func parseEventDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// ListEvents handles GET /api/events. Supports status filtering and
// descending order via query parameters.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	status := r.URL.Query().Get("status")
	if status != "" && !model.ValidEventStatus(status) {
		WriteBadRequest(w, "Invalid status", nil)
		return
	}

	var events []store.Event
	var err error
	if status != "" {
		events, err = h.queries.ListEventsByStatus(ctx, status)
	} else {
		events, err = h.queries.ListEvents(ctx, r.URL.Query().Get("order") == "desc")
	}
	if err != nil {
		slog.Error("failed to list events", "error", err)
		WriteInternalError(w, "Failed to list events")
		return
	}

	responses := make([]EventResponse, 0, len(events))
	for _, e := range events {
		responses = append(responses, storeEventToResponse(e))
	}

	WriteSuccess(w, responses, &Meta{Total: int64(len(responses))})
}

// GetEvent handles GET /api/events/{id}.
func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid event ID", nil)
		return
	}

	event, err := h.queries.GetEventByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Event not found")
			return
		}
		slog.Error("failed to get event", "error", err, "id", id)
		WriteInternalError(w, "Failed to get event")
		return
	}

	WriteSuccess(w, storeEventToResponse(event), nil)
}

// CreateEvent handles POST /api/events (admin).
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	if req.Title == "" {
		WriteBadRequest(w, "Title is required", nil)
		return
	}
	if req.Description == "" {
		WriteBadRequest(w, "Description is required", nil)
		return
	}
	startDate, err := parseEventDate(req.StartDate)
	if err != nil {
		WriteBadRequest(w, "Invalid start date", nil)
		return
	}

	var endDate sql.NullTime
	if req.EndDate != nil && *req.EndDate != "" {
		t, err := parseEventDate(*req.EndDate)
		if err != nil {
			WriteBadRequest(w, "Invalid end date", nil)
			return
		}
		if t.Before(startDate) {
			WriteBadRequest(w, "End date precedes start date", nil)
			return
		}
		endDate = sql.NullTime{Time: t, Valid: true}
	}

	if req.Currency == "" {
		req.Currency = model.DefaultCurrency
	}
	if !model.ValidCurrency(req.Currency) {
		WriteBadRequest(w, "Invalid currency", nil)
		return
	}
	if req.Status == "" {
		req.Status = model.EventStatusUpcoming
	}
	if !model.ValidEventStatus(req.Status) {
		WriteBadRequest(w, "Invalid status", nil)
		return
	}
	if req.Price < 0 {
		WriteBadRequest(w, "Price cannot be negative", nil)
		return
	}

	now := time.Now()
	event, err := h.queries.CreateEvent(r.Context(), store.CreateEventParams{
		Title:       req.Title,
		Description: model.SanitizeHTML(req.Description),
		StartDate:   startDate,
		EndDate:     endDate,
		Location:    req.Location,
		Price:       req.Price,
		Currency:    req.Currency,
		Status:      req.Status,
		CoverUrl:    req.CoverURL,
		Schedule:    encodeStringList(req.Schedule),
		Included:    encodeStringList(req.Included),
		Excluded:    encodeStringList(req.Excluded),
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		slog.Error("failed to create event", "error", err)
		WriteInternalError(w, "Failed to create event")
		return
	}

	WriteCreated(w, storeEventToResponse(event))
}

// UpdateEvent handles PUT /api/events/{id} (admin).
func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid event ID", nil)
		return
	}

	event, err := h.queries.GetEventByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Event not found")
			return
		}
		slog.Error("failed to get event", "error", err, "id", id)
		WriteInternalError(w, "Failed to get event")
		return
	}

	var req UpdateEventRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	params := store.UpdateEventParams{
		Title:       event.Title,
		Description: event.Description,
		StartDate:   event.StartDate,
		EndDate:     event.EndDate,
		Location:    event.Location,
		Price:       event.Price,
		Currency:    event.Currency,
		Status:      event.Status,
		CoverUrl:    event.CoverUrl,
		Schedule:    event.Schedule,
		Included:    event.Included,
		Excluded:    event.Excluded,
		UpdatedAt:   time.Now(),
		ID:          event.ID,
	}

	if req.Title != nil {
		if *req.Title == "" {
			WriteBadRequest(w, "Title cannot be empty", nil)
			return
		}
		params.Title = *req.Title
	}
	if req.Description != nil {
		params.Description = model.SanitizeHTML(*req.Description)
	}
	if req.StartDate != nil {
		t, err := parseEventDate(*req.StartDate)
		if err != nil {
			WriteBadRequest(w, "Invalid start date", nil)
			return
		}
		params.StartDate = t
	}
	if req.EndDate != nil {
		if *req.EndDate == "" {
			params.EndDate = sql.NullTime{}
		} else {
			t, err := parseEventDate(*req.EndDate)
			if err != nil {
				WriteBadRequest(w, "Invalid end date", nil)
				return
			}
			params.EndDate = sql.NullTime{Time: t, Valid: true}
		}
	}
	if params.EndDate.Valid && params.EndDate.Time.Before(params.StartDate) {
		WriteBadRequest(w, "End date precedes start date", nil)
		return
	}
	if req.Location != nil {
		params.Location = *req.Location
	}
	if req.Price != nil {
		if *req.Price < 0 {
			WriteBadRequest(w, "Price cannot be negative", nil)
			return
		}
		params.Price = *req.Price
	}
	if req.Currency != nil {
		if !model.ValidCurrency(*req.Currency) {
			WriteBadRequest(w, "Invalid currency", nil)
			return
		}
		params.Currency = *req.Currency
	}
	if req.Status != nil {
		if !model.ValidEventStatus(*req.Status) {
			WriteBadRequest(w, "Invalid status", nil)
			return
		}
		params.Status = *req.Status
	}
	if req.CoverURL != nil {
		params.CoverUrl = *req.CoverURL
	}
	if req.Schedule != nil {
		params.Schedule = encodeStringList(*req.Schedule)
	}
	if req.Included != nil {
		params.Included = encodeStringList(*req.Included)
	}
	if req.Excluded != nil {
		params.Excluded = encodeStringList(*req.Excluded)
	}

	updated, err := h.queries.UpdateEvent(r.Context(), params)
	if err != nil {
		slog.Error("failed to update event", "error", err, "id", id)
		WriteInternalError(w, "Failed to update event")
		return
	}

	WriteSuccess(w, storeEventToResponse(updated), nil)
}

// DeleteEvent handles DELETE /api/events/{id} (admin). Galleries that
// reference the event are detached, not deleted.
func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid event ID", nil)
		return
	}

	if _, err := h.queries.GetEventByID(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Event not found")
			return
		}
		slog.Error("failed to get event", "error", err, "id", id)
		WriteInternalError(w, "Failed to get event")
		return
	}

	if err := h.queries.DeleteEvent(r.Context(), id); err != nil {
		slog.Error("failed to delete event", "error", err, "id", id)
		WriteInternalError(w, "Failed to delete event")
		return
	}

	WriteSuccess(w, map[string]bool{"deleted": true}, nil)
}
