package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"palomnyk-go/internal/model"
	"palomnyk-go/internal/store"
	"palomnyk-go/internal/util"
)

// MaxContactMessageLength bounds the contact-form message field.
const MaxContactMessageLength = 5000

// ContactResponse represents a contact message in admin responses.
type ContactResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Subject   string    `json:"subject,omitempty"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// SubmitContactRequest is the public contact-form body.
type SubmitContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func storeContactToResponse(c store.Contact) ContactResponse {
	return ContactResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Subject:   c.Subject,
		Message:   c.Message,
		IsRead:    c.IsRead != 0,
		CreatedAt: c.CreatedAt,
	}
}

// SubmitContact handles POST /api/contact (public).
func (h *Handler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var req SubmitContactRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Message = strings.TrimSpace(req.Message)

	details := map[string]string{}
	if req.Name == "" {
		details["name"] = "required"
	}
	if req.Phone == "" {
		details["phone"] = "required"
	}
	if req.Message == "" {
		details["message"] = "required"
	}
	if len(req.Message) > MaxContactMessageLength {
		details["message"] = "too long"
	}
	if req.Email == "" {
		details["email"] = "required"
	} else if _, err := mail.ParseAddress(req.Email); err != nil {
		details["email"] = "invalid"
	}
	if len(details) > 0 {
		WriteBadRequest(w, "Invalid contact submission", details)
		return
	}

	contact, err := h.queries.CreateContact(r.Context(), store.CreateContactParams{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Subject:   strings.TrimSpace(req.Subject),
		Message:   req.Message,
		CreatedAt: time.Now(),
	})
	if err != nil {
		slog.Error("failed to create contact", "error", err)
		WriteInternalError(w, "Failed to submit message")
		return
	}

	slog.Info("contact message received",
		"id", contact.ID,
		"ip", util.ClientIP(r),
		"category", model.AuditCategoryContact,
	)

	WriteCreated(w, map[string]int64{"id": contact.ID})
}

// ListContacts handles GET /api/contact (admin).
func (h *Handler) ListContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.queries.ListContacts(r.Context())
	if err != nil {
		slog.Error("failed to list contacts", "error", err)
		WriteInternalError(w, "Failed to list contacts")
		return
	}

	responses := make([]ContactResponse, 0, len(contacts))
	for _, c := range contacts {
		responses = append(responses, storeContactToResponse(c))
	}

	WriteSuccess(w, responses, &Meta{Total: int64(len(responses))})
}

// MarkContactRead handles PATCH /api/contact/{id} (admin).
func (h *Handler) MarkContactRead(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid contact ID", nil)
		return
	}

	contact, err := h.queries.MarkContactRead(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Contact not found")
			return
		}
		slog.Error("failed to mark contact read", "error", err, "id", id)
		WriteInternalError(w, "Failed to update contact")
		return
	}

	WriteSuccess(w, storeContactToResponse(contact), nil)
}

// DeleteContact handles DELETE /api/contact/{id} (admin).
func (h *Handler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid contact ID", nil)
		return
	}

	if _, err := h.queries.GetContactByID(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Contact not found")
			return
		}
		slog.Error("failed to get contact", "error", err, "id", id)
		WriteInternalError(w, "Failed to get contact")
		return
	}

	if err := h.queries.DeleteContact(r.Context(), id); err != nil {
		slog.Error("failed to delete contact", "error", err, "id", id)
		WriteInternalError(w, "Failed to delete contact")
		return
	}

	WriteSuccess(w, map[string]bool{"deleted": true}, nil)
}
