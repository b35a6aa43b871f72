package models

import (
	"fmt"
	"image"
	"time"
)

// ReportMetadata holds the free-text fields printed on the cover page
type ReportMetadata struct {
	Description     string    `json:"description" yaml:"description"`
	KMATXPartNumber string    `json:"kmatx_part_number" yaml:"kmatx_part_number"`
	HALBXPartNumber string    `json:"halbx_part_number" yaml:"halbx_part_number"`
	SalesOrder      string    `json:"sales_order" yaml:"sales_order"`
	ReportDate      time.Time `json:"report_date" yaml:"report_date"`
}

// PreparedImage is an orientation-corrected, size-bounded, opaque RGB photo.
// Pixels must not be modified once the image has been stored in a slot.
type PreparedImage struct {
	Pixels *image.NRGBA
	// Sequence is the capture order within the owning session, starting at 1.
	Sequence int
}

// Width returns the pixel width of the prepared image
func (p *PreparedImage) Width() int {
	return p.Pixels.Bounds().Dx()
}

// Height returns the pixel height of the prepared image
func (p *PreparedImage) Height() int {
	return p.Pixels.Bounds().Dy()
}

// DraftEntry is one editable row of the final draft
type DraftEntry struct {
	Include  bool           `json:"include"`
	Label    string         `json:"label"`
	Category Category       `json:"category"`
	Slot     int            `json:"slot"`
	Image    *PreparedImage `json:"-"`
}

// SlotSummary describes a filled photo slot without its pixels
type SlotSummary struct {
	Category Category `json:"category"`
	Slot     int      `json:"slot"`
	Width    int      `json:"width"`
	Height   int      `json:"height"`
	Sequence int      `json:"sequence"`
}

// SessionSummary is the JSON view of a report session
type SessionSummary struct {
	ID           string        `json:"id"`
	Slots        []SlotSummary `json:"slots"`
	Draft        []DraftEntry  `json:"draft"`
	PreviewReady bool          `json:"preview_ready"`
	CreatedAt    time.Time     `json:"created_at"`
}

// ReportDateLayout is the form and manifest input format of ReportDate
const ReportDateLayout = time.DateOnly

// ParseReportDate reads a YYYY-MM-DD date. An empty value means the day of now.
func ParseReportDate(value string, now time.Time) (time.Time, error) {
	if value == "" {
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location()), nil
	}
	date, err := time.Parse(ReportDateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return date, nil
}
