package render

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/disintegration/imaging"
	"github.com/ned-tools/fai-report/internal/fonts"
	"github.com/ned-tools/fai-report/internal/models"
	"golang.org/x/image/font"
)

const (
	CoverWidth  = 1020
	CoverHeight = 850

	// DescriptionColumns is the wrap width of the description, in characters.
	DescriptionColumns = 60
	DescriptionStep    = 34
	FieldStep          = 50

	TitleSize       = 56
	FieldSize       = 30
	DescriptionSize = 26
	CoverFooterSize = 18

	// DateLayout prints dates as "07 Mar 2026".
	DateLayout = "02 Jan 2006"
)

// LineKind tags the role of a laid out cover line
type LineKind int

const (
	LineTitle LineKind = iota
	LineDescriptionLabel
	LineDescription
	LineField
	LineFooter
)

// TextLine is one positioned piece of cover text
type TextLine struct {
	Kind   LineKind
	Text   string
	X, Y   int
	Size   float64
	Anchor Anchor
	Color  color.Color
}

// CoverComposer lays out report metadata on a fixed size cover page
type CoverComposer struct {
	Fonts  *fonts.Family
	Title  string
	Footer string
}

// NewCoverComposer creates a CoverComposer
func NewCoverComposer(family *fonts.Family, title, footer string) *CoverComposer {
	return &CoverComposer{Fonts: family, Title: title, Footer: footer}
}

// Layout positions every cover line. Lines are not checked against the page
// height; anything past the bottom edge is clipped when drawn.
func (c *CoverComposer) Layout(meta models.ReportMetadata) []TextLine {
	lines := make([]TextLine, 0, 8)
	add := func(kind LineKind, text string, x, y int, size float64) {
		anchor := AnchorLeftTop
		col := ink
		switch kind {
		case LineTitle:
			anchor = AnchorMiddle
		case LineFooter:
			anchor = AnchorMiddle
			col = muted
		}
		lines = append(lines, TextLine{Kind: kind, Text: text, X: x, Y: y, Size: size, Anchor: anchor, Color: col})
	}

	y := 90
	add(LineTitle, c.Title, CoverWidth/2, y, TitleSize)
	y += 90
	add(LineDescriptionLabel, "Description:", 60, y, FieldSize)
	y += 45
	for _, line := range Wrap(meta.Description, DescriptionColumns) {
		add(LineDescription, line, 80, y, DescriptionSize)
		y += DescriptionStep
	}
	y += 30

	fields := []string{
		fmt.Sprintf("KMATX Part Number : %s", meta.KMATXPartNumber),
		fmt.Sprintf("HALBX Part Number : %s", meta.HALBXPartNumber),
		fmt.Sprintf("Sales Order : %s", meta.SalesOrder),
		fmt.Sprintf("Date : %s", FormatDate(meta.ReportDate)),
	}
	for i, f := range fields {
		if i > 0 {
			y += FieldStep
		}
		add(LineField, f, 60, y, FieldSize)
	}

	add(LineFooter, c.Footer, CoverWidth/2, CoverHeight-35, CoverFooterSize)
	return lines
}

// Compose draws the cover page for meta
func (c *CoverComposer) Compose(meta models.ReportMetadata) *image.NRGBA {
	page := imaging.New(CoverWidth, CoverHeight, paper)

	faces := map[float64]font.Face{}
	for _, line := range c.Layout(meta) {
		face, ok := faces[line.Size]
		if !ok {
			face = c.Fonts.Face(line.Size)
			faces[line.Size] = face
		}
		drawText(page, face, line.Color, line.X, line.Y, line.Anchor, line.Text)
	}

	return page
}

// FormatDate renders a report date, or nothing for the zero time
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}
