package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Routes wires every endpoint of the report form
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/healthcheck", h.HandleHealthcheck)
	r.Get("/", h.HandleStatic)
	r.Get("/static/*", h.HandleStatic)

	r.Route("/api", func(r chi.Router) {
		r.Get("/categories", h.HandleCategories)

		r.Route("/sessions", func(r chi.Router) {
			r.Get("/", h.HandleSessions)
			r.Post("/", h.HandleCreateSession)

			r.Route("/{sessionID}", func(r chi.Router) {
				r.Get("/", h.HandleSessionDetail)
				r.Delete("/", h.HandleDeleteSession)
				r.Post("/reset", h.HandleReset)

				r.Put("/photos/{category}/{slot}", h.HandleCapture)
				r.Get("/photos/{category}/{slot}", h.HandlePhoto)

				r.Post("/draft", h.HandleBuildDraft)
				r.Patch("/draft/{index}", h.HandleEditEntry)
				r.Get("/draft/{index}/preview", h.HandlePreview)

				r.Post("/export", h.HandleExport)
			})
		})
	})

	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		if r.URL.Path == "/healthcheck" {
			return
		}
		slog.Debug("Request served",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
		)
	})
}
