// Package tesseract implements ocr.Recognizer with the Tesseract engine via
// gosseract.
//
// # Prerequisites
//
// Tesseract and its language data must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-eng
//   - macOS: brew install tesseract
//
// A non-default tessdata directory can be set with Engine.TessdataPrefix.
package tesseract

import (
	"context"
	"fmt"
	"image"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/ironsheep/roi-ocr-mcp/internal/imaging"
	"github.com/ironsheep/roi-ocr-mcp/internal/ocr"
)

// Engine runs Tesseract on preprocessed rasters. The zero value is ready to use.
//
// Each call creates its own gosseract client, so an Engine is safe for
// concurrent use.
type Engine struct {
	// TessdataPrefix overrides the directory holding *.traineddata files.
	TessdataPrefix string
}

// New creates an Engine reading language data from tessdataPrefix, or from
// Tesseract's default location when empty.
func New(tessdataPrefix string) *Engine {
	return &Engine{TessdataPrefix: tessdataPrefix}
}

var (
	_ ocr.Recognizer = (*Engine)(nil)
	_ ocr.Describer  = (*Engine)(nil)
)

// Recognize returns the text Tesseract finds in img.
//
// img is passed to Tesseract as PNG bytes, so no temporary file is written.
// Every failure is wrapped in ocr.ErrRecognitionUnavailable.
func (e *Engine) Recognize(ctx context.Context, img *image.Gray, opts ocr.Options) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %w", ocr.ErrRecognitionUnavailable, err)
	}

	data, err := imaging.EncodePNG(img)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ocr.ErrRecognitionUnavailable, err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if e.TessdataPrefix != "" {
		if err := client.SetTessdataPrefix(e.TessdataPrefix); err != nil {
			return "", fmt.Errorf("%w: failed to set tessdata path: %w", ocr.ErrRecognitionUnavailable, err)
		}
	}

	if err := client.SetLanguage(splitLanguages(opts.Language)...); err != nil {
		return "", fmt.Errorf("%w: failed to set language: %w", ocr.ErrRecognitionUnavailable, err)
	}

	if err := client.SetPageSegMode(gosseract.PageSegMode(opts.PageSegMode)); err != nil {
		return "", fmt.Errorf("%w: failed to set page segmentation mode: %w", ocr.ErrRecognitionUnavailable, err)
	}

	if err := client.SetImageFromBytes(data); err != nil {
		return "", fmt.Errorf("%w: failed to set image: %w", ocr.ErrRecognitionUnavailable, err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("%w: OCR failed: %w", ocr.ErrRecognitionUnavailable, err)
	}

	return text, nil
}

// Info reports whether Tesseract can be reached and which version it is.
func (e *Engine) Info() ocr.EngineInfo {
	info := ocr.EngineInfo{
		Backend:        "gosseract",
		TessdataPrefix: e.TessdataPrefix,
	}

	client := gosseract.NewClient()
	defer client.Close()

	version := client.Version()
	if version == "" {
		info.Error = "tesseract did not report a version"
		return info
	}

	info.Available = true
	info.Version = version
	return info
}

// splitLanguages turns "deu+eng" into ["deu", "eng"].
func splitLanguages(lang string) []string {
	if lang == "" {
		return []string{ocr.DefaultLanguage}
	}
	parts := strings.Split(lang, "+")
	langs := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			langs = append(langs, p)
		}
	}
	if len(langs) == 0 {
		return []string{ocr.DefaultLanguage}
	}
	return langs
}
