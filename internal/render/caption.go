package render

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/ned-tools/fai-report/internal/fonts"
)

const (
	LabelSize      = 32
	FooterSize     = 20
	CaptionPadding = 20
	FooterGap      = 10
)

// CaptionRenderer adds a caption bar with a title and the report footer below a photo
type CaptionRenderer struct {
	Fonts  *fonts.Family
	Footer string
}

// NewCaptionRenderer creates a CaptionRenderer
func NewCaptionRenderer(family *fonts.Family, footer string) *CaptionRenderer {
	return &CaptionRenderer{Fonts: family, Footer: footer}
}

// BarHeight is the height of the caption bar Render appends for label
func (r *CaptionRenderer) BarHeight(label string) int {
	_, labelH := textSize(r.Fonts.Face(LabelSize), label)
	_, footerH := textSize(r.Fonts.Face(FooterSize), r.Footer)
	return labelH + footerH + 2*CaptionPadding + FooterGap
}

// Render returns a new page: img at the top left, then a white bar holding
// label and the footer, each centered on the image width. img is not modified.
func (r *CaptionRenderer) Render(img image.Image, label string) *image.NRGBA {
	labelFace := r.Fonts.Face(LabelSize)
	footerFace := r.Fonts.Face(FooterSize)

	labelW, labelH := textSize(labelFace, label)
	footerW, footerH := textSize(footerFace, r.Footer)
	bar := labelH + footerH + 2*CaptionPadding + FooterGap

	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	page := imaging.New(w, h+bar, paper)
	page = imaging.Paste(page, img, image.Pt(0, 0))

	drawText(page, labelFace, ink, centerOffset(w, labelW), h+CaptionPadding, AnchorLeftTop, label)
	drawText(page, footerFace, muted, centerOffset(w, footerW), h+CaptionPadding+labelH+FooterGap, AnchorLeftTop, r.Footer)

	return page
}
