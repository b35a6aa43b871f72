package cmd

import (
	"log/slog"

	"github.com/ned-tools/fai-report/internal/config"
	"github.com/ned-tools/fai-report/internal/document"
	"github.com/ned-tools/fai-report/internal/fonts"
	"github.com/ned-tools/fai-report/internal/images"
	"github.com/ned-tools/fai-report/internal/render"
	"github.com/ned-tools/fai-report/internal/report"
	"github.com/ned-tools/fai-report/internal/session"
)

// components are the document engine pieces built from configuration.
// They hold no per-report state and are shared by all sessions.
type components struct {
	preparer  *images.Preparer
	generator *report.Generator
}

func newComponents(cfg *config.Config) *components {
	family := fonts.Open(cfg.Fonts.Regular)
	slog.Info("Report renderer ready",
		"font", family.Source(),
		"max_edge", cfg.Images.MaxEdge,
		"resolution", cfg.Document.Resolution,
		"encoding", cfg.Document.Encoding,
	)

	return &components{
		preparer: images.NewPreparer(cfg.Images.MaxEdge),
		generator: report.NewGenerator(
			render.NewCaptionRenderer(family, cfg.Report.Footer),
			render.NewCoverComposer(family, cfg.Report.Title, cfg.Report.Footer),
			document.NewAssembler(cfg.DocumentOptions()),
		),
	}
}

func (c *components) newSession(id string) *session.Session {
	return session.New(id, c.preparer, c.generator)
}
