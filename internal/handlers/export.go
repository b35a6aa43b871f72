package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/ned-tools/fai-report/internal/document"
	"github.com/ned-tools/fai-report/internal/models"
)

// ExportRequest carries the cover page fields of a report. Date is
// YYYY-MM-DD; empty means today.
type ExportRequest struct {
	Description     string `json:"description"`
	KMATXPartNumber string `json:"kmatx_part_number"`
	HALBXPartNumber string `json:"halbx_part_number"`
	SalesOrder      string `json:"sales_order"`
	Date            string `json:"date"`
}

// Metadata validates the request and converts it for the generator
func (req ExportRequest) Metadata(now time.Time) (models.ReportMetadata, error) {
	meta := models.ReportMetadata{
		Description:     req.Description,
		KMATXPartNumber: req.KMATXPartNumber,
		HALBXPartNumber: req.HALBXPartNumber,
		SalesOrder:      req.SalesOrder,
	}

	date, err := models.ParseReportDate(req.Date, now)
	if err != nil {
		return meta, err
	}
	meta.ReportDate = date
	return meta, nil
}

// HandleExport renders the report and sends it as a download
func (h *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.getSessionOrError(w, chi.URLParam(r, "sessionID"))
	if !ok {
		return
	}

	var req ExportRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
			return
		}
	}

	meta, err := req.Metadata(time.Now())
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	pages, err := sess.Export(meta, &buf)
	if err != nil {
		h.writeCommandError(w, err, msgNoSelected)
		return
	}

	slog.Info("Sending report", "session_id", sess.ID, "pages", pages, "bytes", buf.Len())

	w.Header().Set("Content-Type", document.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", h.opts.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Error("Unable to write report", "session_id", sess.ID, "err", err)
	}
}
