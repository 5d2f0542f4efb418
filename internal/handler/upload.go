package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"palomnyk-go/internal/model"
	"palomnyk-go/internal/uploader"
)

// Upload handles POST /api/upload (admin). The image is pushed to the
// external storage service together with a generated thumbnail.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if !h.storage.Configured() {
		WriteError(w, http.StatusServiceUnavailable, "unavailable",
			"Image storage is not configured", nil)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, uploader.MaxUploadSize+1<<20)
	if err := r.ParseMultipartForm(uploader.MaxUploadSize); err != nil {
		WriteBadRequest(w, "Invalid multipart form", nil)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteBadRequest(w, "Missing file field", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, uploader.MaxUploadSize+1))
	if err != nil {
		slog.Error("failed to read upload", "error", err)
		WriteInternalError(w, "Failed to read upload")
		return
	}
	if len(data) > uploader.MaxUploadSize {
		WriteBadRequest(w, "Image exceeds the maximum upload size", nil)
		return
	}

	result, err := h.storage.Upload(r.Context(), header.Filename, data)
	if err != nil {
		if errors.Is(err, uploader.ErrStorage) {
			slog.Error("storage service failure",
				"error", err,
				"category", model.AuditCategoryMedia,
			)
			WriteInternalError(w, "Failed to store image")
			return
		}
		slog.Warn("upload rejected",
			"error", err,
			"filename", header.Filename,
			"category", model.AuditCategoryMedia,
		)
		WriteBadRequest(w, "Failed to process image", nil)
		return
	}

	slog.Info("image uploaded",
		"public_id", result.PublicID,
		"category", model.AuditCategoryMedia,
	)

	WriteSuccess(w, result, nil)
}
