package handlers

import (
	"encoding/json"
	"errors"
	"image"
	"image/jpeg"
	"log/slog"
	"net/http"

	"github.com/ned-tools/fai-report/internal/document"
	"github.com/ned-tools/fai-report/internal/models"
	"github.com/ned-tools/fai-report/internal/session"
	"github.com/ned-tools/fai-report/internal/storage"
)

// Options tunes the HTTP form layer
type Options struct {
	MaxUploadBytes int64
	Filename       string
	PreviewQuality int
}

type Handler struct {
	sessionStore *storage.SessionStore
	opts         Options
}

func New(store *storage.SessionStore, opts Options) *Handler {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 10 * 1024 * 1024
	}
	if opts.Filename == "" {
		opts.Filename = document.DefaultFilename
	}
	if opts.PreviewQuality <= 0 {
		opts.PreviewQuality = 85
	}
	return &Handler{
		sessionStore: store,
		opts:         opts,
	}
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	h.writeJSONStatus(w, http.StatusOK, data)
}

func (h *Handler) writeJSONStatus(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	if code >= http.StatusInternalServerError {
		slog.Error(message)
	} else {
		slog.Warn(message, "status", code)
	}
	http.Error(w, message, code)
}

// writeCommandError maps a failed session command to an HTTP status.
// emptyMessage is shown to the user when nothing was selected.
func (h *Handler) writeCommandError(w http.ResponseWriter, err error, emptyMessage string) {
	var decodeErr *models.DecodeError
	switch {
	case errors.As(err, &decodeErr):
		h.writeError(w, "Could not read image: "+decodeErr.Err.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrEmptySelection):
		h.writeError(w, emptyMessage, http.StatusUnprocessableEntity)
	case errors.Is(err, models.ErrUnknownCategory),
		errors.Is(err, models.ErrSlotOutOfRange),
		errors.Is(err, models.ErrSlotEmpty),
		errors.Is(err, models.ErrEntryOutOfRange):
		h.writeError(w, err.Error(), http.StatusNotFound)
	default:
		h.writeError(w, "Internal error: "+err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) writeJPEG(w http.ResponseWriter, img image.Image) {
	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "no-store")
	if err := jpeg.Encode(w, img, &jpeg.Options{Quality: h.opts.PreviewQuality}); err != nil {
		slog.Error("Unable to encode JPEG response", "err", err)
	}
}

// Session helpers
func (h *Handler) getSessionOrError(w http.ResponseWriter, sessionID string) (*session.Session, bool) {
	sess, exists := h.sessionStore.Get(sessionID)
	if !exists {
		h.writeError(w, "Session not found", http.StatusNotFound)
		return nil, false
	}
	return sess, true
}
