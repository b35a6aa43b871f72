// Package config loads application settings from file, environment and flags.
package config

import (
	"fmt"
	"strings"

	"github.com/ned-tools/fai-report/internal/document"
	"github.com/ned-tools/fai-report/internal/images"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to environment overrides, e.g. FAI_SERVER_PORT
const EnvPrefix = "FAI"

// Config holds every setting of the report generator
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Upload   UploadConfig   `mapstructure:"upload"`
	Images   ImagesConfig   `mapstructure:"images"`
	Fonts    FontsConfig    `mapstructure:"fonts"`
	Document DocumentConfig `mapstructure:"document"`
	Report   ReportConfig   `mapstructure:"report"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type UploadConfig struct {
	MaxBytes int64 `mapstructure:"max_bytes"`
}

type ImagesConfig struct {
	MaxEdge int `mapstructure:"max_edge"`
}

type FontsConfig struct {
	// Regular is the preferred TrueType file; the built-in font is used when it is missing.
	Regular string `mapstructure:"regular"`
}

type DocumentConfig struct {
	Resolution  float64 `mapstructure:"resolution"`
	Encoding    string  `mapstructure:"encoding"`
	JPEGQuality int     `mapstructure:"jpeg_quality"`
	Optimize    bool    `mapstructure:"optimize"`
	Filename    string  `mapstructure:"filename"`
}

type ReportConfig struct {
	Title  string `mapstructure:"title"`
	Footer string `mapstructure:"footer"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		Server: ServerConfig{Port: "8888"},
		Upload: UploadConfig{MaxBytes: 10 * 1024 * 1024},
		Images: ImagesConfig{MaxEdge: images.DefaultMaxEdge},
		Fonts:  FontsConfig{Regular: "arial.ttf"},
		Document: DocumentConfig{
			Resolution:  document.DefaultResolution,
			Encoding:    string(document.EncodingJPEG),
			JPEGQuality: document.DefaultJPEGQuality,
			Optimize:    true,
			Filename:    document.DefaultFilename,
		},
		Report: ReportConfig{
			Title:  "NED FAI REPORT",
			Footer: "Confidential – Internal Use Only",
		},
		Logging: LoggingConfig{Level: "info", Format: "console"},
	}
}

// SetDefaults registers Default() with v so every key can be overridden
// from a config file or an FAI_ environment variable.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("upload.max_bytes", d.Upload.MaxBytes)
	v.SetDefault("images.max_edge", d.Images.MaxEdge)
	v.SetDefault("fonts.regular", d.Fonts.Regular)
	v.SetDefault("document.resolution", d.Document.Resolution)
	v.SetDefault("document.encoding", d.Document.Encoding)
	v.SetDefault("document.jpeg_quality", d.Document.JPEGQuality)
	v.SetDefault("document.optimize", d.Document.Optimize)
	v.SetDefault("document.filename", d.Document.Filename)
	v.SetDefault("report.title", d.Report.Title)
	v.SetDefault("report.footer", d.Report.Footer)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load reads the effective configuration out of v and validates it
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for values the generator cannot use
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if c.Upload.MaxBytes <= 0 {
		return fmt.Errorf("upload max bytes must be positive")
	}
	if c.Images.MaxEdge < 0 {
		return fmt.Errorf("image max edge cannot be negative")
	}
	if c.Document.Resolution <= 0 {
		return fmt.Errorf("document resolution must be positive")
	}
	switch document.Encoding(c.Document.Encoding) {
	case document.EncodingJPEG, document.EncodingPNG:
	default:
		return fmt.Errorf("unsupported document encoding %q (want jpeg or png)", c.Document.Encoding)
	}
	if c.Document.JPEGQuality < 1 || c.Document.JPEGQuality > 100 {
		return fmt.Errorf("jpeg quality must be between 1 and 100")
	}
	if c.Document.Filename == "" {
		return fmt.Errorf("document filename is required")
	}
	return nil
}

// DocumentOptions converts the document settings for the assembler
func (c *Config) DocumentOptions() document.Options {
	opts := document.DefaultOptions()
	opts.Resolution = c.Document.Resolution
	opts.Encoding = document.Encoding(c.Document.Encoding)
	opts.JPEGQuality = c.Document.JPEGQuality
	opts.Optimize = c.Document.Optimize
	return opts
}
