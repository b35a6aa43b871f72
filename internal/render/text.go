// Package render rasterizes the report pages: the metadata cover page and one
// captioned page per selected photo.
package render

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

var (
	ink   color.Color = color.Black
	muted color.Color = color.Gray{Y: 128}
	paper color.Color = color.White
)

// Anchor selects which point of the text a TextLine position refers to
type Anchor int

const (
	// AnchorLeftTop places the left edge of the advance box and the ascender line at (X, Y).
	AnchorLeftTop Anchor = iota
	// AnchorMiddle centers the advance box horizontally and the ascender to descender span vertically on (X, Y).
	AnchorMiddle
)

// textSize returns the rounded advance width and the ink height of s
func textSize(face font.Face, s string) (int, int) {
	bounds, advance := font.BoundString(face, s)
	return advance.Round(), (bounds.Max.Y - bounds.Min.Y).Ceil()
}

// drawText renders s on dst with its reference point at (x, y)
func drawText(dst draw.Image, face font.Face, c color.Color, x, y int, anchor Anchor, s string) {
	m := face.Metrics()
	dot := fixed.P(x, y)

	switch anchor {
	case AnchorMiddle:
		dot.X -= font.MeasureString(face, s) / 2
		dot.Y += (m.Ascent - m.Descent) / 2
	default:
		dot.Y += m.Ascent
	}

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  dot,
	}
	d.DrawString(s)
}

// centerOffset floors like integer division of a possibly negative span
func centerOffset(outer, inner int) int {
	diff := outer - inner
	if diff >= 0 {
		return diff / 2
	}
	return -((-diff + 1) / 2)
}
