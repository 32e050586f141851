package imaging

import (
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// ErrEmptyCrop is returned when a crop region has no pixels.
var ErrEmptyCrop = errors.New("crop region is empty")

// Crop extracts a rectangular region from an image.
//
// The region uses image-relative coordinates: (0,0) is the top-left pixel of
// img regardless of img.Bounds().Min. The result always starts at (0,0).
func Crop(img image.Image, x1, y1, x2, y2 int) (*image.NRGBA, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if x1 < 0 || y1 < 0 || x2 > w || y2 > h {
		return nil, fmt.Errorf("crop region (%d,%d)-(%d,%d) outside image bounds (0,0)-(%d,%d)",
			x1, y1, x2, y2, w, h)
	}
	if x1 >= x2 || y1 >= y2 {
		return nil, fmt.Errorf("%w: (%d,%d)-(%d,%d)", ErrEmptyCrop, x1, y1, x2, y2)
	}

	r := image.Rect(x1, y1, x2, y2).Add(bounds.Min)
	return imaging.Crop(img, r), nil
}

// CropRect is Crop for an image.Rectangle.
func CropRect(img image.Image, r image.Rectangle) (*image.NRGBA, error) {
	return Crop(img, r.Min.X, r.Min.Y, r.Max.X, r.Max.Y)
}
