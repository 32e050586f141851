package session

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/ironsheep/roi-ocr-mcp/internal/geometry"
	"github.com/ironsheep/roi-ocr-mcp/internal/imaging"
	"github.com/ironsheep/roi-ocr-mcp/internal/ocr"
	"github.com/ironsheep/roi-ocr-mcp/internal/preprocess"
)

// Precondition errors for actions invoked out of order.
var (
	ErrNoImage = errors.New("no image loaded")
	ErrNoCrop  = errors.New("no confirmed region: draw and confirm a region first")
	ErrNoText  = errors.New("no extracted text")
)

// Settings are the per-session knobs taken from configuration.
type Settings struct {
	MaxDisplayWidth int
	MinROISide      int
	OCR             ocr.Options
}

// DefaultSettings matches config.Default.
func DefaultSettings() Settings {
	return Settings{
		MaxDisplayWidth: geometry.DefaultMaxDisplayWidth,
		MinROISide:      geometry.MinROISide,
		OCR:             ocr.DefaultOptions(),
	}
}

// State is the complete state of one session.
type State struct {
	settings Settings

	source      *imaging.Source
	display     *imaging.Display
	annotations geometry.AnnotationSet
	roi         *geometry.SourceRect
	crop        image.Image
	result      *ocr.Result
}

// New returns an empty session.
func New(settings Settings) State {
	if settings.MaxDisplayWidth <= 0 {
		settings.MaxDisplayWidth = geometry.DefaultMaxDisplayWidth
	}
	return State{settings: settings}
}

// Settings returns the session's settings.
func (s State) Settings() Settings { return s.settings }

// Source returns the loaded image, or nil.
func (s State) Source() *imaging.Source { return s.source }

// Display returns the rendered display copy, or nil.
func (s State) Display() *imaging.Display { return s.display }

// Annotations returns the current annotation set.
func (s State) Annotations() geometry.AnnotationSet { return s.annotations }

// ROI returns the confirmed region, or nil.
func (s State) ROI() *geometry.SourceRect { return s.roi }

// Crop returns the confirmed region's pixels, or nil.
func (s State) Crop() image.Image { return s.crop }

// Result returns the last recognition result, or nil.
func (s State) Result() *ocr.Result { return s.result }

// Load makes src the session's image and renders its display copy.
//
// Loading the image that is already loaded (same Source.ID) keeps the
// current annotations, crop and text.
func (s State) Load(src *imaging.Source) State {
	if s.source != nil && src != nil && s.source.ID == src.ID {
		return s
	}
	next := New(s.settings)
	if src == nil {
		return next
	}
	next.source = src
	next.display = imaging.RenderDisplay(src.Image, s.settings.MaxDisplayWidth)
	return next
}

// ScalingFactor returns source width / display width of the loaded image.
func (s State) ScalingFactor() float64 {
	if s.display == nil {
		return 1.0
	}
	return s.display.ScalingFactor
}

// Draw replaces the annotation set. The set is copied.
func (s State) Draw(set geometry.AnnotationSet) (State, error) {
	if s.source == nil {
		return s, ErrNoImage
	}
	s.annotations = append(geometry.AnnotationSet(nil), set...)
	return s, nil
}

// Confirm resolves the newest rectangle to source coordinates and crops the
// source image to it.
//
// Resolution errors (geometry.ErrNoAnnotation, geometry.ErrDegenerateROI)
// leave the state unchanged. A successful confirm discards earlier text.
func (s State) Confirm() (State, error) {
	if s.source == nil {
		return s, ErrNoImage
	}

	resolver := geometry.Resolver{MinSide: s.settings.MinROISide}
	rect, err := resolver.Resolve(s.annotations, s.ScalingFactor(), s.source.Width, s.source.Height)
	if err != nil {
		return s, err
	}

	cropped, err := imaging.CropRect(s.source.Image, rect.Rectangle())
	if err != nil {
		if errors.Is(err, imaging.ErrEmptyCrop) {
			return s, fmt.Errorf("%w: %w", preprocess.ErrEmptyInput, err)
		}
		return s, err
	}

	s.roi = &rect
	s.crop = cropped
	s.result = nil
	return s, nil
}

// Preview returns the binarized crop exactly as the recognizer receives it.
func (s State) Preview() (*image.Gray, error) {
	stages, err := s.PreviewStages()
	if err != nil {
		return nil, err
	}
	return stages.Binary, nil
}

// PreviewStages returns every intermediate raster of the crop's
// preprocessing along with the chosen threshold.
func (s State) PreviewStages() (*preprocess.Stages, error) {
	if s.crop == nil {
		return nil, ErrNoCrop
	}
	return preprocess.Run(s.crop)
}

// Recognize preprocesses the confirmed crop and runs r on it.
//
// Engine failures are returned as ocr.ErrRecognitionUnavailable and leave
// the state unchanged; an empty recognition is stored like any other.
func (s State) Recognize(ctx context.Context, r ocr.Recognizer) (State, error) {
	binary, err := s.Preview()
	if err != nil {
		return s, err
	}

	res, err := ocr.Recognize(ctx, r, binary, s.settings.OCR)
	if err != nil {
		return s, err
	}

	s.result = res
	return s, nil
}

// ClearDrawing drops annotations, crop and text but keeps the image.
func (s State) ClearDrawing() State {
	s.annotations = nil
	s.roi = nil
	s.crop = nil
	s.result = nil
	return s
}

// ClearResults drops the extracted text only.
func (s State) ClearResults() State {
	s.result = nil
	return s
}

// Text returns the extracted text, or ErrNoText when nothing but whitespace
// was recognized.
func (s State) Text() (string, error) {
	if s.result == nil || s.result.Empty() {
		return "", ErrNoText
	}
	return s.result.Text, nil
}
