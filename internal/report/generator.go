// Package report turns a curated draft and its metadata into the final PDF.
package report

import (
	"fmt"
	"image"
	"io"
	"log/slog"

	"github.com/ned-tools/fai-report/internal/document"
	"github.com/ned-tools/fai-report/internal/models"
	"github.com/ned-tools/fai-report/internal/render"
)

// Generator composes, renders and assembles report documents. It holds no
// per-report state and may be shared by all sessions.
type Generator struct {
	Captions  *render.CaptionRenderer
	Cover     *render.CoverComposer
	Assembler *document.Assembler
}

// NewGenerator wires the page renderers to an assembler
func NewGenerator(captions *render.CaptionRenderer, cover *render.CoverComposer, assembler *document.Assembler) *Generator {
	return &Generator{
		Captions:  captions,
		Cover:     cover,
		Assembler: assembler,
	}
}

// Selected returns the included entries in draft order
func Selected(entries []models.DraftEntry) []models.DraftEntry {
	out := make([]models.DraftEntry, 0, len(entries))
	for _, e := range entries {
		if e.Include {
			out = append(out, e)
		}
	}
	return out
}

// Preview renders the captioned page of a single entry
func (g *Generator) Preview(entry models.DraftEntry) *image.NRGBA {
	return g.Captions.Render(entry.Image.Pixels, entry.Label)
}

// Generate writes the report for meta and the included entries to w and
// returns the number of pages written. When no entry is included it returns
// models.ErrEmptySelection and writes nothing.
func (g *Generator) Generate(meta models.ReportMetadata, entries []models.DraftEntry, w io.Writer) (int, error) {
	selected := Selected(entries)
	if len(selected) == 0 {
		return 0, models.ErrEmptySelection
	}

	cover := g.Cover.Compose(meta)

	pages := make([]image.Image, 0, len(selected))
	for _, e := range selected {
		if e.Image == nil || e.Image.Pixels == nil {
			return 0, fmt.Errorf("draft entry %q has no image", e.Label)
		}
		pages = append(pages, g.Captions.Render(e.Image.Pixels, e.Label))
	}

	doc, err := g.Assembler.Assemble(cover, pages)
	if err != nil {
		return 0, err
	}
	data, err := g.Assembler.ProduceBytes(doc)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize report: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return 0, fmt.Errorf("failed to write report: %w", err)
	}

	slog.Info("Report generated", "pages", len(doc.Pages), "photos", len(selected), "bytes", len(data), "sales_order", meta.SalesOrder)
	return len(doc.Pages), nil
}
