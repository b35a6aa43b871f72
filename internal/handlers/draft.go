package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/ned-tools/fai-report/internal/models"
	"github.com/ned-tools/fai-report/internal/session"
)

const (
	msgNoPhotos   = "Please take/upload at least one photo."
	msgNoSelected = "No images selected for PDF."
)

func entryIndex(r *http.Request) (int, error) {
	n, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		return 0, models.ErrEntryOutOfRange
	}
	return n, nil
}

// HandleBuildDraft rebuilds the draft from the current photo slots
func (h *Handler) HandleBuildDraft(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.getSessionOrError(w, chi.URLParam(r, "sessionID"))
	if !ok {
		return
	}

	draft, err := sess.BuildDraft()
	if err != nil {
		h.writeCommandError(w, err, msgNoPhotos)
		return
	}
	h.writeJSON(w, draft)
}

// HandleEditEntry toggles inclusion or relabels one draft entry
func (h *Handler) HandleEditEntry(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.getSessionOrError(w, chi.URLParam(r, "sessionID"))
	if !ok {
		return
	}

	index, err := entryIndex(r)
	if err != nil {
		h.writeCommandError(w, err, "")
		return
	}

	var edit session.Edit
	if err := json.NewDecoder(r.Body).Decode(&edit); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	entry, err := sess.EditEntry(index, edit)
	if err != nil {
		h.writeCommandError(w, err, "")
		return
	}
	h.writeJSON(w, entry)
}

// HandlePreview renders the captioned page of one draft entry
func (h *Handler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.getSessionOrError(w, chi.URLParam(r, "sessionID"))
	if !ok {
		return
	}

	index, err := entryIndex(r)
	if err != nil {
		h.writeCommandError(w, err, "")
		return
	}

	page, err := sess.Preview(index)
	if err != nil {
		h.writeCommandError(w, err, "")
		return
	}
	h.writeJPEG(w, page)
}
