package images

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"

	"github.com/disintegration/imaging"
	"github.com/ned-tools/fai-report/internal/models"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DefaultMaxEdge keeps text-heavy label photos legible while bounding memory.
const DefaultMaxEdge = 3000

// Preparer normalizes captured photos before they enter a report
type Preparer struct {
	// MaxEdge is the ceiling for the longer side in pixels. Zero disables resizing.
	MaxEdge int
}

// NewPreparer creates a Preparer with the given long-edge ceiling
func NewPreparer(maxEdge int) *Preparer {
	return &Preparer{MaxEdge: maxEdge}
}

// Prepare decodes a raw capture, applies its EXIF orientation and normalizes it.
// Malformed input yields a *models.DecodeError.
func (p *Preparer) Prepare(r io.Reader) (*image.NRGBA, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, &models.DecodeError{Err: err}
	}

	b := img.Bounds()
	if b.Empty() {
		return nil, &models.DecodeError{Err: fmt.Errorf("image has no pixels (%dx%d)", b.Dx(), b.Dy())}
	}

	return p.Normalize(img), nil
}

// Normalize bounds the longer edge to MaxEdge and converts img to opaque RGB.
// The result never aliases img, and normalizing an already normalized image
// returns an identical copy.
func (p *Preparer) Normalize(img image.Image) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	var out *image.NRGBA
	if nw, nh, ok := p.targetSize(w, h); ok {
		slog.Debug("Downscaling photo", "from_width", w, "from_height", h, "to_width", nw, "to_height", nh)
		out = imaging.Resize(img, nw, nh, imaging.Lanczos)
	} else {
		out = imaging.Clone(img)
	}

	dropAlpha(out)
	return out
}

// targetSize reports the downscaled dimensions for a w x h image, or ok=false
// when the image already fits.
func (p *Preparer) targetSize(w, h int) (int, int, bool) {
	if p.MaxEdge <= 0 {
		return w, h, false
	}

	long, short := w, h
	if h > w {
		long, short = h, w
	}
	if long <= p.MaxEdge {
		return w, h, false
	}

	scale := float64(p.MaxEdge) / float64(long)
	scaled := max(int(float64(short)*scale), 1)

	if w >= h {
		return p.MaxEdge, scaled, true
	}
	return scaled, p.MaxEdge, true
}

// dropAlpha discards transparency the same way an RGBA to RGB mode change does:
// the stored color channels are kept and every pixel becomes fully opaque.
func dropAlpha(img *image.NRGBA) {
	b := img.Bounds()
	for y := 0; y < b.Dy(); y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+b.Dx()*4]
		for i := 3; i < len(row); i += 4 {
			row[i] = 0xff
		}
	}
}
