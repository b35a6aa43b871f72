package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/ned-tools/fai-report/internal/models"
)

// multipartOverhead is the room left for part headers and boundaries on top of
// the upload limit
const multipartOverhead = 64 * 1024

// slotFromRequest parses the {category}/{slot} path segments
func slotFromRequest(r *http.Request) (models.Category, int, error) {
	name, err := url.PathUnescape(chi.URLParam(r, "category"))
	if err != nil {
		return "", 0, fmt.Errorf("%w: %v", models.ErrUnknownCategory, err)
	}
	category, err := models.ParseCategory(name)
	if err != nil {
		return "", 0, err
	}

	slot, err := strconv.Atoi(chi.URLParam(r, "slot"))
	if err != nil {
		return "", 0, fmt.Errorf("%w: %q", models.ErrSlotOutOfRange, chi.URLParam(r, "slot"))
	}
	if err := models.ValidateSlot(category, slot); err != nil {
		return "", 0, err
	}
	return category, slot, nil
}

// HandleCapture stores an uploaded or camera-captured photo in a slot
func (h *Handler) HandleCapture(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.getSessionOrError(w, chi.URLParam(r, "sessionID"))
	if !ok {
		return
	}

	category, slot, err := slotFromRequest(r)
	if err != nil {
		h.writeCommandError(w, err, "")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.opts.MaxUploadBytes+multipartOverhead)

	file, _, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeError(w, fmt.Sprintf("File too large (max %d bytes)", h.opts.MaxUploadBytes), http.StatusRequestEntityTooLarge)
			return
		}
		file, _, err = r.FormFile("files")
		if err != nil {
			h.writeError(w, "Failed to read file: "+err.Error(), http.StatusBadRequest)
			return
		}
	}
	defer file.Close()

	fileData, err := io.ReadAll(io.LimitReader(file, h.opts.MaxUploadBytes+1))
	if err != nil {
		h.writeError(w, "Failed to read file contents: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if int64(len(fileData)) > h.opts.MaxUploadBytes {
		h.writeError(w, fmt.Sprintf("File too large (max %d bytes)", h.opts.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	img, err := sess.Capture(category, slot, bytes.NewReader(fileData))
	if err != nil {
		h.writeCommandError(w, err, "")
		return
	}

	h.writeJSON(w, models.SlotSummary{
		Category: category,
		Slot:     slot,
		Width:    img.Width(),
		Height:   img.Height(),
		Sequence: img.Sequence,
	})
}

// HandlePhoto returns the prepared photo of a slot as JPEG
func (h *Handler) HandlePhoto(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.getSessionOrError(w, chi.URLParam(r, "sessionID"))
	if !ok {
		return
	}

	category, slot, err := slotFromRequest(r)
	if err != nil {
		h.writeCommandError(w, err, "")
		return
	}

	img, err := sess.Photo(category, slot)
	if err != nil {
		h.writeCommandError(w, err, "")
		return
	}
	h.writeJPEG(w, img.Pixels)
}
