// Package config holds the runtime settings of the server and CLI.
//
// Settings are resolved in this order, later sources winning:
//
//  1. Defaults
//  2. YAML config file (optional, --config)
//  3. .env file in the working directory (optional)
//  4. ROI_OCR_* environment variables
//  5. Command line flags
package config

import (
	"time"

	"github.com/ironsheep/roi-ocr-mcp/internal/geometry"
	"github.com/ironsheep/roi-ocr-mcp/internal/ocr"
)

// Default configuration values.
const (
	// DefaultMaxDisplayWidth caps the width of the rendered display copy.
	DefaultMaxDisplayWidth = geometry.DefaultMaxDisplayWidth

	// DefaultMinROISide is the size, in source pixels, each side of a
	// selection must exceed.
	DefaultMinROISide = geometry.MinROISide

	// DefaultRecognitionTimeout bounds one OCR call. Large crops on slow
	// machines can take tens of seconds.
	DefaultRecognitionTimeout = 60 * time.Second

	// DefaultLogLevel keeps stderr quiet unless something goes wrong.
	DefaultLogLevel = "info"

	// DefaultLogFormat is human-readable output.
	DefaultLogFormat = "console"

	// DefaultOutputDir is where exported text files are written.
	DefaultOutputDir = "."
)

// Config holds all configuration options.
type Config struct {
	// LogLevel is one of trace, debug, info, warn, error, disabled.
	LogLevel string `yaml:"log_level"`

	// LogFormat is "console" or "json".
	LogFormat string `yaml:"log_format"`

	// MaxDisplayWidth is the widest the source image is rendered for drawing.
	MaxDisplayWidth int `yaml:"max_display_width"`

	// MinROISide is the minimum selection size, exclusive, in source pixels.
	MinROISide int `yaml:"min_roi_side"`

	// Language is the Tesseract language code, e.g. "eng" or "deu+eng".
	Language string `yaml:"language"`

	// PageSegMode is the Tesseract page segmentation mode (0-13).
	PageSegMode int `yaml:"page_seg_mode"`

	// TessdataPrefix overrides Tesseract's language data directory.
	TessdataPrefix string `yaml:"tessdata_prefix"`

	// RecognitionTimeout bounds one recognition call. Zero disables it.
	RecognitionTimeout time.Duration `yaml:"recognition_timeout"`

	// OutputDir is where exported text files are written.
	OutputDir string `yaml:"output_dir"`
}

// Default returns a Config populated with default values.
func Default() *Config {
	return &Config{
		LogLevel:           DefaultLogLevel,
		LogFormat:          DefaultLogFormat,
		MaxDisplayWidth:    DefaultMaxDisplayWidth,
		MinROISide:         DefaultMinROISide,
		Language:           ocr.DefaultLanguage,
		PageSegMode:        int(ocr.PSMSingleBlock),
		RecognitionTimeout: DefaultRecognitionTimeout,
		OutputDir:          DefaultOutputDir,
	}
}

// OCROptions returns the recognition options described by c.
func (c *Config) OCROptions() ocr.Options {
	return ocr.Options{
		Language:    c.Language,
		PageSegMode: ocr.PageSegMode(c.PageSegMode),
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.MaxDisplayWidth <= 0 {
		return ErrInvalidDisplayWidth
	}
	if c.MinROISide < 0 {
		return ErrInvalidMinROISide
	}
	if c.PageSegMode < 0 || c.PageSegMode > 13 {
		return ErrInvalidPageSegMode
	}
	if c.RecognitionTimeout < 0 {
		return ErrInvalidTimeout
	}
	if c.Language == "" {
		return ErrEmptyLanguage
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return ErrInvalidLogFormat
	}
	return nil
}
