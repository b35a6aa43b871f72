package session

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"testing"

	"github.com/ned-tools/fai-report/internal/document"
	"github.com/ned-tools/fai-report/internal/fonts"
	"github.com/ned-tools/fai-report/internal/images"
	"github.com/ned-tools/fai-report/internal/models"
	"github.com/ned-tools/fai-report/internal/render"
	"github.com/ned-tools/fai-report/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const footer = "Confidential – Internal Use Only"

// recordingExporter keeps the entries it was asked to export
type recordingExporter struct {
	exported []models.DraftEntry
}

func (r *recordingExporter) Generate(meta models.ReportMetadata, entries []models.DraftEntry, w io.Writer) (int, error) {
	selected := report.Selected(entries)
	if len(selected) == 0 {
		return 0, models.ErrEmptySelection
	}
	r.exported = selected
	return len(selected) + 1, nil
}

func (r *recordingExporter) Preview(entry models.DraftEntry) *image.NRGBA {
	return entry.Image.Pixels
}

func pngBytes(t *testing.T, w, h int, shade uint8) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: shade, G: shade, B: shade, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newRecordingSession() (*Session, *recordingExporter) {
	exp := &recordingExporter{}
	return New("test", images.NewPreparer(images.DefaultMaxEdge), exp), exp
}

func newRealSession() *Session {
	family := fonts.Builtin()
	opts := document.DefaultOptions()
	opts.Optimize = false
	gen := report.NewGenerator(
		render.NewCaptionRenderer(family, footer),
		render.NewCoverComposer(family, "NED FAI REPORT", footer),
		document.NewAssembler(opts),
	)
	return New("real", images.NewPreparer(images.DefaultMaxEdge), gen)
}

func TestSingleCPUPhotoScenario(t *testing.T) {
	s, exp := newRecordingSession()

	_, err := s.Capture("CPU", 0, bytes.NewReader(pngBytes(t, 64, 48, 10)))
	require.NoError(t, err)

	draft, err := s.BuildDraft()
	require.NoError(t, err)
	require.Len(t, draft, 1)
	assert.Equal(t, "CPU", draft[0].Label)
	assert.True(t, draft[0].Include)
	assert.True(t, s.PreviewReady())

	label := "CPU-Front"
	_, err = s.EditEntry(0, Edit{Label: &label})
	require.NoError(t, err)

	pages, err := s.Export(models.ReportMetadata{}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 2, pages)
	require.Len(t, exp.exported, 1)
	assert.Equal(t, "CPU-Front", exp.exported[0].Label)
}

func TestSingleCPUPhotoScenarioProducesPDF(t *testing.T) {
	s := newRealSession()

	_, err := s.Capture("CPU", 0, bytes.NewReader(pngBytes(t, 64, 48, 10)))
	require.NoError(t, err)
	_, err = s.BuildDraft()
	require.NoError(t, err)
	label := "CPU-Front"
	_, err = s.EditEntry(0, Edit{Label: &label})
	require.NoError(t, err)

	var buf bytes.Buffer
	pages, err := s.Export(models.ReportMetadata{Description: "scenario"}, &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, pages)

	n, err := document.PageCount(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestBuildDraftWithoutPhotos(t *testing.T) {
	s, _ := newRecordingSession()

	draft, err := s.BuildDraft()
	assert.True(t, errors.Is(err, models.ErrEmptySelection))
	assert.Nil(t, draft)
	assert.Nil(t, s.Draft())
	assert.False(t, s.PreviewReady())
}

func TestBuildDraftOrdersByCategoryThenSlot(t *testing.T) {
	s, _ := newRecordingSession()

	captures := []struct {
		category models.Category
		slot     int
	}{
		{"PSU", 1},
		{"Box Labels", 3},
		{"PSU", 0},
		{"Outer Carton Packaging", 4},
		{"Box Labels", 0},
	}
	for _, c := range captures {
		_, err := s.Capture(c.category, c.slot, bytes.NewReader(pngBytes(t, 8, 8, 1)))
		require.NoError(t, err)
	}

	draft, err := s.BuildDraft()
	require.NoError(t, err)

	want := []struct {
		category models.Category
		slot     int
	}{
		{"Outer Carton Packaging", 4},
		{"Box Labels", 0},
		{"Box Labels", 3},
		{"PSU", 0},
		{"PSU", 1},
	}
	require.Len(t, draft, len(want))
	for i, w := range want {
		assert.Equal(t, w.category, draft[i].Category)
		assert.Equal(t, w.slot, draft[i].Slot)
		assert.Equal(t, string(w.category), draft[i].Label)
	}
}

func TestRebuildDiscardsEdits(t *testing.T) {
	s, _ := newRecordingSession()
	for slot := 0; slot < 2; slot++ {
		_, err := s.Capture("Fan", slot, bytes.NewReader(pngBytes(t, 8, 8, uint8(slot))))
		require.NoError(t, err)
	}

	first, err := s.BuildDraft()
	require.NoError(t, err)

	exclude := false
	label := "Rear fan"
	_, err = s.EditEntry(1, Edit{Include: &exclude, Label: &label})
	require.NoError(t, err)
	assert.False(t, s.Draft()[1].Include)

	second, err := s.BuildDraft()
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Same(t, first[i].Image, second[i].Image)
		assert.Equal(t, first[i].Label, second[i].Label)
		assert.True(t, second[i].Include)
	}
}

func TestEditsDoNotTouchSlots(t *testing.T) {
	s, _ := newRecordingSession()
	captured, err := s.Capture("DIMM", 2, bytes.NewReader(pngBytes(t, 8, 8, 5)))
	require.NoError(t, err)
	_, err = s.BuildDraft()
	require.NoError(t, err)

	exclude := false
	_, err = s.EditEntry(0, Edit{Include: &exclude})
	require.NoError(t, err)

	photo, err := s.Photo("DIMM", 2)
	require.NoError(t, err)
	assert.Same(t, captured, photo)

	draft, err := s.BuildDraft()
	require.NoError(t, err)
	assert.True(t, draft[0].Include)
}

func TestRecaptureOverwritesSlot(t *testing.T) {
	s, _ := newRecordingSession()
	_, err := s.Capture("Drives", 0, bytes.NewReader(pngBytes(t, 8, 8, 1)))
	require.NoError(t, err)
	second, err := s.Capture("Drives", 0, bytes.NewReader(pngBytes(t, 16, 4, 2)))
	require.NoError(t, err)

	assert.Equal(t, 2, second.Sequence)
	photo, err := s.Photo("Drives", 0)
	require.NoError(t, err)
	assert.Equal(t, 16, photo.Width())

	draft, err := s.BuildDraft()
	require.NoError(t, err)
	assert.Len(t, draft, 1)
}

func TestFailedCaptureKeepsSlot(t *testing.T) {
	s, _ := newRecordingSession()
	original, err := s.Capture("Fan", 1, bytes.NewReader(pngBytes(t, 8, 8, 1)))
	require.NoError(t, err)

	_, err = s.Capture("Fan", 1, bytes.NewReader([]byte("garbage")))
	var decodeErr *models.DecodeError
	require.True(t, errors.As(err, &decodeErr))

	photo, err := s.Photo("Fan", 1)
	require.NoError(t, err)
	assert.Same(t, original, photo)
}

func TestCaptureValidatesSlot(t *testing.T) {
	s, _ := newRecordingSession()

	_, err := s.Capture("GPU", 0, bytes.NewReader(pngBytes(t, 8, 8, 1)))
	assert.True(t, errors.Is(err, models.ErrUnknownCategory))

	_, err = s.Capture("CPU", models.SlotsPerCategory, bytes.NewReader(pngBytes(t, 8, 8, 1)))
	assert.True(t, errors.Is(err, models.ErrSlotOutOfRange))
}

func TestPhotoEmptySlot(t *testing.T) {
	s, _ := newRecordingSession()
	_, err := s.Photo("CPU", 0)
	assert.True(t, errors.Is(err, models.ErrSlotEmpty))

	// slots are reported with the same 0-based index the caller used
	_, err = s.Photo("Drives", 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Drives #3")
}

func TestEditEntryOutOfRange(t *testing.T) {
	s, _ := newRecordingSession()
	label := "x"
	_, err := s.EditEntry(0, Edit{Label: &label})
	assert.True(t, errors.Is(err, models.ErrEntryOutOfRange))

	_, err = s.Preview(-1)
	assert.True(t, errors.Is(err, models.ErrEntryOutOfRange))
}

func TestExportWithNothingIncluded(t *testing.T) {
	s, exp := newRecordingSession()
	_, err := s.Capture("PSU", 0, bytes.NewReader(pngBytes(t, 8, 8, 1)))
	require.NoError(t, err)
	_, err = s.BuildDraft()
	require.NoError(t, err)

	exclude := false
	_, err = s.EditEntry(0, Edit{Include: &exclude})
	require.NoError(t, err)

	_, err = s.Export(models.ReportMetadata{}, io.Discard)
	assert.True(t, errors.Is(err, models.ErrEmptySelection))
	assert.Nil(t, exp.exported)
}

func TestExportWithoutDraft(t *testing.T) {
	s, _ := newRecordingSession()
	_, err := s.Capture("PSU", 0, bytes.NewReader(pngBytes(t, 8, 8, 1)))
	require.NoError(t, err)

	_, err = s.Export(models.ReportMetadata{}, io.Discard)
	assert.True(t, errors.Is(err, models.ErrEmptySelection))
}

func TestResetClearsEverything(t *testing.T) {
	s, _ := newRecordingSession()
	_, err := s.Capture("PSU", 0, bytes.NewReader(pngBytes(t, 8, 8, 1)))
	require.NoError(t, err)
	_, err = s.BuildDraft()
	require.NoError(t, err)

	s.Reset()

	assert.False(t, s.PreviewReady())
	assert.Empty(t, s.Draft())
	summary := s.Summary()
	assert.Empty(t, summary.Slots)
	_, err = s.BuildDraft()
	assert.True(t, errors.Is(err, models.ErrEmptySelection))
}

func TestSummaryListsFilledSlots(t *testing.T) {
	s, _ := newRecordingSession()
	_, err := s.Capture("Internal Wiring", 4, bytes.NewReader(pngBytes(t, 12, 6, 1)))
	require.NoError(t, err)

	summary := s.Summary()
	assert.Equal(t, "test", summary.ID)
	require.Len(t, summary.Slots, 1)
	assert.Equal(t, models.SlotSummary{Category: "Internal Wiring", Slot: 4, Width: 12, Height: 6, Sequence: 1}, summary.Slots[0])
	assert.NotNil(t, summary.Draft)
}
