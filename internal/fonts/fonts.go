// Package fonts loads the report typeface and falls back to the built-in Go
// font when the preferred TrueType file is not available.
package fonts

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/ned-tools/fai-report/internal/models"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FallbackName identifies the built-in font in logs
const FallbackName = "goregular"

// Family is a parsed typeface that hands out faces at any point size.
// Faces are not safe for concurrent use, so callers get a fresh face per call.
type Family struct {
	font   *opentype.Font
	source string
}

// Open loads the TrueType or OpenType file at path. A missing or unreadable
// file is not an error for the caller: the built-in font is used instead.
func Open(path string) *Family {
	if path != "" {
		f, err := Parse(path)
		if err == nil {
			slog.Debug("Loaded report font", "path", path)
			return f
		}
		slog.Warn("Preferred font unavailable, using built-in font", "path", path, "fallback", FallbackName, "err", err)
	}
	return Builtin()
}

// Parse loads a font file without falling back
func Parse(path string) (*Family, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrResourceUnavailable, err)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", models.ErrResourceUnavailable, path, err)
	}
	return &Family{font: f, source: path}, nil
}

// Builtin returns the Go regular font bundled with golang.org/x/image
func Builtin() *Family {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		// goregular.TTF is compiled in, so this only fails on a broken build.
		panic(fmt.Sprintf("parse built-in font: %v", err))
	}
	return &Family{font: f, source: FallbackName}
}

// Source is the file path the family was loaded from, or FallbackName
func (f *Family) Source() string {
	return f.source
}

// Face returns a new face at size pixels (72 DPI, so points equal pixels)
func (f *Family) Face(size float64) font.Face {
	face, err := opentype.NewFace(f.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		// NewFace only fails for non-positive sizes, which are constants here.
		panic(fmt.Sprintf("create %.1fpx face from %s: %v", size, f.source, err))
	}
	return face
}
