package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ned-tools/fai-report/internal/models"
)

func (h *Handler) HandleSessions(w http.ResponseWriter, r *http.Request) {
	sessions := h.sessionStore.GetAll()
	sessionList := make([]models.SessionSummary, 0, len(sessions))
	for _, sess := range sessions {
		sessionList = append(sessionList, sess.Summary())
	}
	h.writeJSON(w, sessionList)
}

func (h *Handler) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	sess := h.sessionStore.Create()
	slog.Info("Session created", "session_id", sess.ID)
	h.writeJSONStatus(w, http.StatusCreated, sess.Summary())
}

func (h *Handler) HandleSessionDetail(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.getSessionOrError(w, chi.URLParam(r, "sessionID"))
	if !ok {
		return
	}
	h.writeJSON(w, sess.Summary())
}

func (h *Handler) HandleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if !h.sessionStore.Delete(sessionID) {
		h.writeError(w, "Session not found", http.StatusNotFound)
		return
	}
	slog.Info("Session ended", "session_id", sessionID)
	w.WriteHeader(http.StatusNoContent)
}

// HandleReset starts a new report in an existing session
func (h *Handler) HandleReset(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.getSessionOrError(w, chi.URLParam(r, "sessionID"))
	if !ok {
		return
	}
	sess.Reset()
	h.writeJSON(w, sess.Summary())
}

func (h *Handler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, map[string]any{
		"categories":         models.Categories,
		"slots_per_category": models.SlotsPerCategory,
	})
}
