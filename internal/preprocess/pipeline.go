package preprocess

import (
	"errors"
	"image"
)

// ErrEmptyInput is returned when the input raster has zero area.
var ErrEmptyInput = errors.New("empty input raster")

// Binary pixel values.
const (
	Black uint8 = 0
	White uint8 = 255
)

// Stages holds every intermediate raster of one pipeline run.
type Stages struct {
	Gray      *image.Gray
	Blurred   *image.Gray
	Threshold uint8
	Binary    *image.Gray
}

// Preprocess converts img into a binarized raster of the same size.
//
// The result has its origin at (0,0) and contains only Black and White pixels.
// Preprocess does not modify img and returns byte-identical output for
// identical input.
func Preprocess(img image.Image) (*image.Gray, error) {
	s, err := Run(img)
	if err != nil {
		return nil, err
	}
	return s.Binary, nil
}

// Run executes the pipeline and keeps the intermediate rasters.
func Run(img image.Image) (*Stages, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, ErrEmptyInput
	}

	return runStages(img)
}

// Binarize maps pixels above t to White and the rest to Black.
func Binarize(src *image.Gray, t uint8) *image.Gray {
	b := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		srow := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):]
		drow := dst.Pix[y*dst.Stride:]
		for x := 0; x < b.Dx(); x++ {
			if srow[x] > t {
				drow[x] = White
			} else {
				drow[x] = Black
			}
		}
	}
	return dst
}
