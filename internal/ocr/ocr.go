package ocr

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/ironsheep/roi-ocr-mcp/internal/preprocess"
)

// ErrRecognitionUnavailable wraps every failure of the recognition engine.
var ErrRecognitionUnavailable = errors.New("text recognition unavailable")

// PageSegMode is a layout hint for the recognition engine. Values follow
// Tesseract's numbering.
type PageSegMode int

// Page segmentation modes used by this project.
const (
	PSMAuto        PageSegMode = 3
	PSMSingleBlock PageSegMode = 6 // Single uniform block of text
	PSMSingleLine  PageSegMode = 7
	PSMSingleWord  PageSegMode = 8
)

// DefaultLanguage is the recognition language used when none is configured.
const DefaultLanguage = "eng"

// Options configures one recognition call.
type Options struct {
	// Language is a Tesseract language code such as "eng" or "deu+eng".
	Language string

	// PageSegMode is the layout hint. Zero means PSMSingleBlock.
	PageSegMode PageSegMode
}

// DefaultOptions returns English, single uniform block.
func DefaultOptions() Options {
	return Options{Language: DefaultLanguage, PageSegMode: PSMSingleBlock}
}

// withDefaults fills unset fields.
func (o Options) withDefaults() Options {
	if o.Language == "" {
		o.Language = DefaultLanguage
	}
	if o.PageSegMode == 0 {
		o.PageSegMode = PSMSingleBlock
	}
	return o
}

// Recognizer extracts text from a binarized raster.
//
// Implementations report their own failures as errors; Recognize wraps them
// in ErrRecognitionUnavailable.
type Recognizer interface {
	Recognize(ctx context.Context, img *image.Gray, opts Options) (string, error)
}

// EngineInfo describes a recognition backend.
type EngineInfo struct {
	Available      bool   `json:"available"`
	Version        string `json:"version,omitempty"`
	Error          string `json:"error,omitempty"`
	Backend        string `json:"backend"`
	TessdataPrefix string `json:"tessdata_prefix,omitempty"`
}

// Describer is implemented by recognizers that can report on themselves.
type Describer interface {
	Info() EngineInfo
}

// RecognizerFunc adapts a function to the Recognizer interface.
type RecognizerFunc func(ctx context.Context, img *image.Gray, opts Options) (string, error)

// Recognize calls f.
func (f RecognizerFunc) Recognize(ctx context.Context, img *image.Gray, opts Options) (string, error) {
	return f(ctx, img, opts)
}

// Recognize runs r on img and wraps the text in a Result.
//
// img must be the output of preprocess.Preprocess. An empty raster is
// rejected with preprocess.ErrEmptyInput without calling r.
func Recognize(ctx context.Context, r Recognizer, img *image.Gray, opts Options) (*Result, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, preprocess.ErrEmptyInput
	}
	if r == nil {
		return nil, fmt.Errorf("%w: no recognition engine configured", ErrRecognitionUnavailable)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRecognitionUnavailable, err)
	}

	opts = opts.withDefaults()

	type outcome struct {
		text string
		err  error
	}
	done := make(chan outcome, 1)
	go func() {
		text, err := r.Recognize(ctx, img, opts)
		done <- outcome{text: text, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %w", ErrRecognitionUnavailable, ctx.Err())
	case out := <-done:
		if out.err != nil {
			if errors.Is(out.err, ErrRecognitionUnavailable) {
				return nil, out.err
			}
			return nil, fmt.Errorf("%w: %w", ErrRecognitionUnavailable, out.err)
		}
		return NewResult(out.text), nil
	}
}
