// Package document assembles rendered pages into a single PDF.
package document

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"time"

	"codeberg.org/go-pdf/fpdf"
	"github.com/ned-tools/fai-report/internal/models"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

const (
	// ContentType is what the output sink advertises for serialized documents.
	ContentType = "application/pdf"
	// DefaultFilename is the download name of the report.
	DefaultFilename = "NED_FAI_Report.pdf"

	DefaultResolution  = 300
	DefaultJPEGQuality = 95

	pointsPerInch = 72
)

// Encoding is how page rasters are embedded in the PDF
type Encoding string

const (
	EncodingJPEG Encoding = "jpeg"
	EncodingPNG  Encoding = "png"
)

// Epoch is stamped as creation date when no other date is supplied, so
// identical input produces identical bytes.
var Epoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

func init() {
	// pdfcpu would otherwise create a config directory under the user's home.
	api.DisableConfigDir()
}

// Options controls assembly and serialization
type Options struct {
	// Resolution in dots per inch; a page of w pixels is w*72/Resolution points wide.
	Resolution  float64
	Encoding    Encoding
	JPEGQuality int
	// Optimize runs pdfcpu's structural optimizer over the written file. The
	// optimizer stamps a fresh file ID, so optimized output is not byte-stable.
	Optimize bool
	// AllowCoverOnly lets Assemble produce a document with no photo pages.
	AllowCoverOnly bool
	Title          string
	Created        time.Time
}

// DefaultOptions returns the settings used by the report form
func DefaultOptions() Options {
	return Options{
		Resolution:  DefaultResolution,
		Encoding:    EncodingJPEG,
		JPEGQuality: DefaultJPEGQuality,
		Optimize:    true,
		Title:       "NED FAI Report",
		Created:     Epoch,
	}
}

// Document is an ordered list of pages; page 0 is the cover
type Document struct {
	Pages []image.Image
}

// Assembler orders pages and writes them out as a PDF
type Assembler struct {
	opts Options
}

// NewAssembler creates an Assembler, filling unset options with defaults
func NewAssembler(opts Options) *Assembler {
	def := DefaultOptions()
	if opts.Resolution <= 0 {
		opts.Resolution = def.Resolution
	}
	if opts.Encoding == "" {
		opts.Encoding = def.Encoding
	}
	if opts.JPEGQuality <= 0 || opts.JPEGQuality > 100 {
		opts.JPEGQuality = def.JPEGQuality
	}
	if opts.Created.IsZero() {
		opts.Created = def.Created
	}
	return &Assembler{opts: opts}
}

// Options returns the effective options
func (a *Assembler) Options() Options {
	return a.opts
}

// Assemble puts cover first followed by pages in their given order
func (a *Assembler) Assemble(cover image.Image, pages []image.Image) (*Document, error) {
	if cover == nil {
		return nil, fmt.Errorf("cover page is required")
	}
	if len(pages) == 0 && !a.opts.AllowCoverOnly {
		return nil, models.ErrEmptySelection
	}

	doc := &Document{Pages: make([]image.Image, 0, len(pages)+1)}
	doc.Pages = append(doc.Pages, cover)
	doc.Pages = append(doc.Pages, pages...)
	return doc, nil
}

// Serialize writes doc to w as one PDF. Nothing is written if encoding fails.
func (a *Assembler) Serialize(doc *Document, w io.Writer) error {
	raw, err := a.write(doc)
	if err != nil {
		return err
	}

	if !a.opts.Optimize {
		_, err := w.Write(raw)
		return err
	}

	var out bytes.Buffer
	if err := api.Optimize(bytes.NewReader(raw), &out, pdfcpuConfig()); err != nil {
		return fmt.Errorf("failed to optimize PDF: %w", err)
	}
	slog.Debug("Optimized PDF", "pages", len(doc.Pages), "before_bytes", len(raw), "after_bytes", out.Len())

	_, err = w.Write(out.Bytes())
	return err
}

// ProduceBytes serializes doc into memory
func (a *Assembler) ProduceBytes(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := a.Serialize(doc, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (a *Assembler) write(doc *Document) ([]byte, error) {
	if doc == nil || len(doc.Pages) == 0 {
		return nil, fmt.Errorf("document has no pages")
	}

	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetCompression(true)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(a.opts.Created)
	pdf.SetModificationDate(a.opts.Created)
	pdf.SetTitle(a.opts.Title, true)
	pdf.SetCreator("fai-report", false)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)

	for i, page := range doc.Pages {
		data, imageType, err := a.encode(page)
		if err != nil {
			return nil, fmt.Errorf("failed to encode page %d: %w", i+1, err)
		}

		size := a.pageSize(page.Bounds())
		pdf.AddPageFormat("P", size)

		name := fmt.Sprintf("page%03d", i)
		opts := fpdf.ImageOptions{ImageType: imageType, ReadDpi: false}
		pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
		pdf.ImageOptions(name, 0, 0, size.Wd, size.Ht, false, opts, 0, "")
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("failed to build PDF: %w", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// pageSize converts a raster size to points at the configured resolution
func (a *Assembler) pageSize(b image.Rectangle) fpdf.SizeType {
	scale := pointsPerInch / a.opts.Resolution
	return fpdf.SizeType{
		Wd: float64(b.Dx()) * scale,
		Ht: float64(b.Dy()) * scale,
	}
}

func (a *Assembler) encode(page image.Image) ([]byte, string, error) {
	var buf bytes.Buffer
	switch a.opts.Encoding {
	case EncodingPNG:
		if err := png.Encode(&buf, page); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "PNG", nil
	case EncodingJPEG:
		if err := jpeg.Encode(&buf, page, &jpeg.Options{Quality: a.opts.JPEGQuality}); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "JPG", nil
	default:
		return nil, "", fmt.Errorf("unsupported page encoding: %s", a.opts.Encoding)
	}
}

// PageCount reads a serialized document back and counts its pages
func PageCount(rs io.ReadSeeker) (int, error) {
	return api.PageCount(rs, pdfcpuConfig())
}

func pdfcpuConfig() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}
