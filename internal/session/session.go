// Package session holds the per-user state of one report: photo slots, the
// editable draft and the commands the form layer invokes on them.
package session

import (
	"fmt"
	"image"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/ned-tools/fai-report/internal/models"
)

// Preparer normalizes a raw capture
type Preparer interface {
	Prepare(r io.Reader) (*image.NRGBA, error)
}

// Exporter renders drafts into documents
type Exporter interface {
	Generate(meta models.ReportMetadata, entries []models.DraftEntry, w io.Writer) (int, error)
	Preview(entry models.DraftEntry) *image.NRGBA
}

// Edit changes one draft entry; nil fields are left as they are
type Edit struct {
	Include *bool   `json:"include,omitempty" yaml:"include,omitempty"`
	Label   *string `json:"label,omitempty" yaml:"label,omitempty"`
}

// Session is one report being put together. Commands on a session run one at
// a time; a failed command leaves slots and draft as they were.
type Session struct {
	ID        string
	CreatedAt time.Time

	preparer Preparer
	exporter Exporter

	mu           sync.Mutex
	slots        [][]*models.PreparedImage
	draft        []models.DraftEntry
	previewReady bool
	captures     int
}

// New creates an empty session
func New(id string, preparer Preparer, exporter Exporter) *Session {
	s := &Session{
		ID:        id,
		CreatedAt: time.Now(),
		preparer:  preparer,
		exporter:  exporter,
	}
	s.resetLocked()
	return s
}

func (s *Session) resetLocked() {
	s.slots = make([][]*models.PreparedImage, len(models.Categories))
	for i := range s.slots {
		s.slots[i] = make([]*models.PreparedImage, models.SlotsPerCategory)
	}
	s.draft = nil
	s.previewReady = false
	s.captures = 0
}

// Reset starts a new report in the same session
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
	slog.Info("Session reset", "session_id", s.ID)
}

// Capture prepares a raw photo and stores it in the slot, replacing any
// earlier photo there. The draft is not touched.
func (s *Session) Capture(category models.Category, slot int, r io.Reader) (*models.PreparedImage, error) {
	if err := models.ValidateSlot(category, slot); err != nil {
		return nil, err
	}

	pixels, err := s.preparer.Prepare(r)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.captures++
	img := &models.PreparedImage{Pixels: pixels, Sequence: s.captures}
	s.slots[category.Index()][slot] = img

	slog.Info("Photo captured", "session_id", s.ID, "category", category, "slot", slot, "width", img.Width(), "height", img.Height())
	return img, nil
}

// Photo returns the prepared image held by a slot
func (s *Session) Photo(category models.Category, slot int) (*models.PreparedImage, error) {
	if err := models.ValidateSlot(category, slot); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	img := s.slots[category.Index()][slot]
	if img == nil {
		return nil, fmt.Errorf("%w: %s #%d", models.ErrSlotEmpty, category, slot)
	}
	return img, nil
}

// BuildDraft replaces the draft with one included entry per filled slot, in
// category then slot order, labelled with the category name. Earlier edits
// are discarded. With no photos at all it fails and keeps the old draft.
func (s *Session) BuildDraft() ([]models.DraftEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var draft []models.DraftEntry
	for ci, category := range models.Categories {
		for slot, img := range s.slots[ci] {
			if img == nil {
				continue
			}
			draft = append(draft, models.DraftEntry{
				Include:  true,
				Label:    string(category),
				Category: category,
				Slot:     slot,
				Image:    img,
			})
		}
	}

	if len(draft) == 0 {
		return nil, models.ErrEmptySelection
	}

	s.draft = draft
	s.previewReady = true

	slog.Info("Draft built", "session_id", s.ID, "entries", len(draft))
	return s.draftCopyLocked(), nil
}

// EditEntry applies e to the draft entry at index
func (s *Session) EditEntry(index int, e Edit) (models.DraftEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.draft) {
		return models.DraftEntry{}, fmt.Errorf("%w: %d (draft has %d entries)", models.ErrEntryOutOfRange, index, len(s.draft))
	}

	entry := &s.draft[index]
	if e.Include != nil {
		entry.Include = *e.Include
	}
	if e.Label != nil {
		entry.Label = *e.Label
	}
	return *entry, nil
}

// Draft returns a copy of the current draft
func (s *Session) Draft() []models.DraftEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draftCopyLocked()
}

func (s *Session) draftCopyLocked() []models.DraftEntry {
	if s.draft == nil {
		return nil
	}
	out := make([]models.DraftEntry, len(s.draft))
	copy(out, s.draft)
	return out
}

// PreviewReady reports whether a draft has been built since the last reset
func (s *Session) PreviewReady() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.previewReady
}

// Preview renders the captioned page of one draft entry as it would be exported
func (s *Session) Preview(index int) (*image.NRGBA, error) {
	s.mu.Lock()
	if index < 0 || index >= len(s.draft) {
		n := len(s.draft)
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %d (draft has %d entries)", models.ErrEntryOutOfRange, index, n)
	}
	entry := s.draft[index]
	s.mu.Unlock()

	return s.exporter.Preview(entry), nil
}

// Export writes the report for the included draft entries to w and returns
// the page count. Without any included entry nothing is written.
func (s *Session) Export(meta models.ReportMetadata, w io.Writer) (int, error) {
	draft := s.Draft()
	pages, err := s.exporter.Generate(meta, draft, w)
	if err != nil {
		return 0, err
	}
	slog.Info("Report exported", "session_id", s.ID, "pages", pages)
	return pages, nil
}

// Summary describes the session for the form layer
func (s *Session) Summary() models.SessionSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	summary := models.SessionSummary{
		ID:           s.ID,
		Slots:        []models.SlotSummary{},
		Draft:        s.draftCopyLocked(),
		PreviewReady: s.previewReady,
		CreatedAt:    s.CreatedAt,
	}
	if summary.Draft == nil {
		summary.Draft = []models.DraftEntry{}
	}

	for ci, category := range models.Categories {
		for slot, img := range s.slots[ci] {
			if img == nil {
				continue
			}
			summary.Slots = append(summary.Slots, models.SlotSummary{
				Category: category,
				Slot:     slot,
				Width:    img.Width(),
				Height:   img.Height(),
				Sequence: img.Sequence,
			})
		}
	}
	return summary
}
