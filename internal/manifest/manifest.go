// Package manifest reads the YAML description of an offline report: cover
// metadata plus the photo file for each slot and its draft edits.
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/ned-tools/fai-report/internal/models"
	"github.com/ned-tools/fai-report/internal/session"
	"gopkg.in/yaml.v3"
)

type Manifest struct {
	Report Report  `yaml:"report"`
	Photos []Photo `yaml:"photos"`

	// dir resolves relative photo paths.
	dir string
}

type Report struct {
	Description     string `yaml:"description"`
	KMATXPartNumber string `yaml:"kmatx_part_number"`
	HALBXPartNumber string `yaml:"halbx_part_number"`
	SalesOrder      string `yaml:"sales_order"`
	Date            string `yaml:"date"`
}

// Photo fills one slot. Label and Include edit the resulting draft entry.
type Photo struct {
	Category models.Category `yaml:"category"`
	Slot     int             `yaml:"slot"`
	Path     string          `yaml:"path"`
	Label    *string         `yaml:"label,omitempty"`
	Include  *bool           `yaml:"include,omitempty"`
}

// Load reads and validates a manifest file
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	return Parse(bytes.NewReader(data), filepath.Dir(path))
}

// Parse decodes a manifest; relative photo paths are taken from dir
func Parse(r io.Reader, dir string) (*Manifest, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("manifest is empty")
		}
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	m.dir = dir

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Manifest) Validate() error {
	if len(m.Photos) == 0 {
		return fmt.Errorf("manifest lists no photos: %w", models.ErrEmptySelection)
	}

	seen := make(map[string]int, len(m.Photos))
	for i, p := range m.Photos {
		if err := models.ValidateSlot(p.Category, p.Slot); err != nil {
			return fmt.Errorf("photo %d: %w", i+1, err)
		}
		if p.Path == "" {
			return fmt.Errorf("photo %d: path is required", i+1)
		}
		key := fmt.Sprintf("%s/%d", p.Category, p.Slot)
		if prev, dup := seen[key]; dup {
			return fmt.Errorf("photo %d: %s slot %d already used by photo %d", i+1, p.Category, p.Slot, prev)
		}
		seen[key] = i + 1
	}

	if _, err := models.ParseReportDate(m.Report.Date, time.Now()); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	return nil
}

// Metadata returns the cover page fields; a missing date means the day of now
func (m *Manifest) Metadata(now time.Time) (models.ReportMetadata, error) {
	date, err := models.ParseReportDate(m.Report.Date, now)
	if err != nil {
		return models.ReportMetadata{}, err
	}
	return models.ReportMetadata{
		Description:     m.Report.Description,
		KMATXPartNumber: m.Report.KMATXPartNumber,
		HALBXPartNumber: m.Report.HALBXPartNumber,
		SalesOrder:      m.Report.SalesOrder,
		ReportDate:      date,
	}, nil
}

// PhotoPath resolves the file of p
func (m *Manifest) PhotoPath(p Photo) string {
	if filepath.IsAbs(p.Path) || m.dir == "" {
		return p.Path
	}
	return filepath.Join(m.dir, p.Path)
}

// Capture loads every photo into its slot. done is called after each photo.
func (m *Manifest) Capture(sess *session.Session, done func(Photo)) error {
	for _, p := range m.Photos {
		if err := m.capture(sess, p); err != nil {
			return err
		}
		if done != nil {
			done(p)
		}
	}
	return nil
}

func (m *Manifest) capture(sess *session.Session, p Photo) error {
	path := m.PhotoPath(p)
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening photo: %w", err)
	}
	defer f.Close()

	if _, err := sess.Capture(p.Category, p.Slot, f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// ApplyEdits builds the draft and applies each photo's label and include
// settings to the entry that came from its slot
func (m *Manifest) ApplyEdits(sess *session.Session) ([]models.DraftEntry, error) {
	draft, err := sess.BuildDraft()
	if err != nil {
		return nil, err
	}

	for i, entry := range draft {
		p, ok := m.photoFor(entry.Category, entry.Slot)
		if !ok || (p.Label == nil && p.Include == nil) {
			continue
		}
		if _, err := sess.EditEntry(i, session.Edit{Include: p.Include, Label: p.Label}); err != nil {
			return nil, err
		}
	}
	return sess.Draft(), nil
}

func (m *Manifest) photoFor(category models.Category, slot int) (Photo, bool) {
	for _, p := range m.Photos {
		if p.Category == category && p.Slot == slot {
			return p, true
		}
	}
	return Photo{}, false
}
