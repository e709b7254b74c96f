package http

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/presensia/attendance-portal-go/internal/handler/http/response"
	"github.com/presensia/attendance-portal-go/internal/service/file"
)

type FileHandler interface {
	ServeCapture(w http.ResponseWriter, r *http.Request)
}

type fileHandlerImpl struct {
	fileService file.FileService
}

func NewFileHandler(fileService file.FileService) FileHandler {
	return &fileHandlerImpl{
		fileService: fileService,
	}
}

// ServeCapture streams a stored attendance capture to the reviewing admin.
// Captures are always re-encoded as JPEG on upload.
func (h *fileHandlerImpl) ServeCapture(w http.ResponseWriter, r *http.Request) {
	path := chi.URLParam(r, "*")
	if path == "" {
		response.BadRequest(w, "File path is required", nil)
		return
	}

	reader, err := h.fileService.DownloadFile(r.Context(), path)
	if err != nil {
		response.NotFound(w, "File not found")
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "private, max-age=300")
	if _, err := io.Copy(w, reader); err != nil {
		slog.Error("Failed to stream capture", "path", path, "error", err)
	}
}
