package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/transform"
	"github.com/disintegration/imaging"

	"github.com/ironsheep/roi-ocr-mcp/internal/geometry"
)

// Display is the reduced copy of a source image shown to the user.
type Display struct {
	// Image is the rendered copy, origin (0,0).
	Image image.Image

	// Width and Height are the display dimensions in pixels.
	Width  int
	Height int

	// ScalingFactor converts display coordinates to source coordinates
	// (source width / display width).
	ScalingFactor float64
}

// RenderDisplay renders src no wider than maxWidth, keeping its aspect ratio.
//
// Images that already fit are copied unchanged and get a scaling factor of
// exactly 1.0. Shrinking uses bilinear resampling.
func RenderDisplay(src image.Image, maxWidth int) *Display {
	b := src.Bounds()
	w, h := geometry.DisplaySize(b.Dx(), b.Dy(), maxWidth)

	var out image.Image
	if w == b.Dx() && h == b.Dy() {
		out = imaging.Clone(src)
	} else {
		out = transform.Resize(src, w, max(h, 1), transform.Linear)
	}

	return &Display{
		Image:         out,
		Width:         w,
		Height:        h,
		ScalingFactor: geometry.ScalingFactor(b.Dx(), maxWidth),
	}
}

// ToDisplay maps a source rectangle onto display coordinates, rounding
// outward so the outline always covers the selected pixels.
func (d *Display) ToDisplay(r geometry.SourceRect) image.Rectangle {
	if d.ScalingFactor <= 0 {
		return r.Rectangle()
	}
	sf := d.ScalingFactor
	x1 := int(float64(r.X1) / sf)
	y1 := int(float64(r.Y1) / sf)
	x2 := ceilDiv(r.X2, sf)
	y2 := ceilDiv(r.Y2, sf)
	return image.Rect(x1, y1, x2, y2).Intersect(image.Rect(0, 0, d.Width, d.Height))
}

func ceilDiv(v int, sf float64) int {
	f := float64(v) / sf
	i := int(f)
	if float64(i) < f {
		i++
	}
	return i
}
