package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ned-tools/fai-report/internal/handlers"
	"github.com/ned-tools/fai-report/internal/storage"
	"github.com/spf13/cobra"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start web server for the report form",
		Long: `Starts the report form on the specified port.

The form lets you capture or upload photos for each category, review and
relabel them in a final draft, and download the finished PDF report.`,
		Example: `  # Start server on default port 8888
  fai-report serve

  # Start server on custom port
  fai-report serve --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			parts := newComponents(cfg)
			store := storage.New(parts.newSession)

			handler := handlers.New(store, handlers.Options{
				MaxUploadBytes: cfg.Upload.MaxBytes,
				Filename:       cfg.Document.Filename,
			})

			addr := ":" + cfg.Server.Port
			server := &http.Server{
				Addr:              addr,
				Handler:           handler.Routes(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Report form available", "addr", addr, "url", "http://localhost"+addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				// Give server 5 seconds to shut down gracefully
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringP("port", "p", "8888", "Port to listen on")
	_ = opts.v.BindPFlag("server.port", cmd.Flags().Lookup("port"))

	return cmd
}
