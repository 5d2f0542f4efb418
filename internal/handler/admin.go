package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"unicode/utf8"

	"palomnyk-go/internal/auth"
	"palomnyk-go/internal/model"
	"palomnyk-go/internal/util"
)

// MinPasswordLength applies when rotating the admin secret.
const MinPasswordLength = 8

// LoginRequest is the request body for POST /api/admin/login.
type LoginRequest struct {
	Password string `json:"password"`
}

// ChangePasswordRequest is the request body for PUT /api/admin/settings/password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// Login handles POST /api/admin/login. On success the session cookie is
// set to the stored secret hash.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "Invalid request body", nil)
		return
	}
	if req.Password == "" {
		WriteBadRequest(w, "Password is required", nil)
		return
	}

	ip := util.ClientIP(r)

	ok, err := h.secrets.Verify(r.Context(), req.Password)
	if err != nil {
		slog.Error("login verification failed", "error", err, "category", model.AuditCategoryAuth)
		WriteInternalError(w, "Failed to verify credentials")
		return
	}
	if !ok {
		if locked, d := h.logins.RecordFailedAttempt(ip); locked {
			slog.Warn("login failed, IP locked out", "ip", ip, "duration", d)
			WriteError(w, http.StatusTooManyRequests, "locked_out",
				"Too many failed attempts. Try again later.", nil)
			return
		}
		slog.Warn("login failed", "ip", ip)
		WriteUnauthorized(w, "Incorrect password")
		return
	}

	hash, err := h.secrets.CurrentHash(r.Context())
	if err != nil {
		slog.Error("failed to load admin secret after login", "error", err)
		WriteInternalError(w, "Failed to establish session")
		return
	}

	h.logins.RecordSuccessfulLogin(ip)
	auth.IssueCookie(w, hash, h.isDev)
	slog.Info("admin login", "ip", ip)

	WriteSuccess(w, map[string]bool{"authenticated": true}, nil)
}

// Logout handles POST /api/admin/logout.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearCookie(w, h.isDev)
	WriteSuccess(w, map[string]bool{"authenticated": false}, nil)
}

// CheckAuth handles GET /api/admin/check-auth. A request whose cookie does
// not match the current stored hash gets a plain 401.
func (h *Handler) CheckAuth(w http.ResponseWriter, r *http.Request) {
	if !h.secrets.Matches(r.Context(), auth.CookieValue(r)) {
		WriteUnauthorized(w, "Not authenticated")
		return
	}
	WriteSuccess(w, map[string]bool{"authenticated": true}, nil)
}

// ChangePassword handles PUT /api/admin/settings/password. Rotation
// invalidates every outstanding session cookie; the caller gets a fresh one.
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req ChangePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "Invalid request body", nil)
		return
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		WriteBadRequest(w, "Current and new passwords are required", nil)
		return
	}
	if utf8.RuneCountInString(req.NewPassword) < MinPasswordLength {
		WriteBadRequest(w, "New password is too short", map[string]string{
			"min_length": strconv.Itoa(MinPasswordLength),
		})
		return
	}

	newHash, err := h.secrets.Rotate(r.Context(), req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrBadCredentials):
			WriteBadRequest(w, "Current password is incorrect", nil)
		case errors.Is(err, auth.ErrSecretRotated):
			WriteError(w, http.StatusConflict, "conflict",
				"Password was changed by another session. Log in again.", nil)
		default:
			slog.Error("password rotation failed", "error", err)
			WriteInternalError(w, "Failed to change password")
		}
		return
	}

	auth.IssueCookie(w, newHash, h.isDev)
	slog.Warn("admin password changed", "ip", util.ClientIP(r), "category", model.AuditCategoryAuth)

	WriteSuccess(w, map[string]bool{"changed": true}, nil)
}
