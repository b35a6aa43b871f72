package cmd

import (
	"bytes"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/ned-tools/fai-report/internal/config"
	"github.com/ned-tools/fai-report/internal/document"
	"github.com/ned-tools/fai-report/internal/fonts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCategoriesCommand(t *testing.T) {
	out, err := run(t, "categories")
	require.NoError(t, err)
	assert.Contains(t, out, "Outer Carton Packaging")
	assert.Contains(t, out, "Internal Wiring")
	assert.Contains(t, out, "0-4")
}

func TestBuildCommand(t *testing.T) {
	dir := t.TempDir()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 64, 48))))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cpu.png"), buf.Bytes(), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fan.png"), buf.Bytes(), 0o644))

	manifestPath := filepath.Join(dir, "report.yaml")
	require.NoError(t, os.WriteFile(manifestPath, []byte(`
report:
  description: Test unit
  sales_order: SO-1
photos:
  - {category: CPU, slot: 0, path: cpu.png, label: CPU-Front}
  - {category: Fan, slot: 1, path: fan.png}
`), 0o644))

	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("fonts:\n  regular: \"\"\n"), 0o644))

	output := filepath.Join(dir, "out.pdf")
	out, err := run(t, "--config", cfgPath, "build", manifestPath, "--output", output)
	require.NoError(t, err)
	assert.Contains(t, out, "(3 pages)")

	f, err := os.Open(output)
	require.NoError(t, err)
	defer f.Close()
	pages, err := document.PageCount(f)
	require.NoError(t, err)
	assert.Equal(t, 3, pages)
}

func TestBuildCommandBadManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.yaml")
	require.NoError(t, os.WriteFile(path, []byte("photos: []\n"), 0o644))

	_, err := run(t, "build", path)
	require.Error(t, err)
}

func TestBadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("document:\n  encoding: gif\n"), 0o644))

	_, err := run(t, "--config", path, "categories")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "encoding")
}

func TestSetupLogging(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.LoggingConfig
		wantErr bool
	}{
		{"console info", config.LoggingConfig{Level: "info", Format: "console"}, false},
		{"json debug", config.LoggingConfig{Level: "debug", Format: "json"}, false},
		{"warn text", config.LoggingConfig{Level: "WARN", Format: "text"}, false},
		{"bad level", config.LoggingConfig{Level: "loud", Format: "console"}, true},
		{"bad format", config.LoggingConfig{Level: "info", Format: "xml"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := setupLogging(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("Expected error=%v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestNewComponentsLogsFontSource(t *testing.T) {
	var logs bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logs, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	cfg := config.Default()
	cfg.Fonts.Regular = filepath.Join(t.TempDir(), "missing.ttf")

	parts := newComponents(&cfg)
	require.NotNil(t, parts.generator)
	assert.Contains(t, logs.String(), "font="+fonts.FallbackName)

	sess := parts.newSession("logged")
	assert.Equal(t, "logged", sess.ID)
}
