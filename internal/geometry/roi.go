package geometry

import (
	"errors"
	"fmt"
	"image"
	"math"
)

// DefaultMaxDisplayWidth is the widest the source image is ever rendered.
const DefaultMaxDisplayWidth = 600

// MinROISide is the default minimum width and height, in source pixels, a
// resolved region must exceed.
const MinROISide = 10

var (
	// ErrNoROI is the parent of every "no usable region" outcome.
	ErrNoROI = errors.New("no region of interest")

	// ErrNoAnnotation means nothing was drawn, or nothing drawn was a rectangle.
	ErrNoAnnotation = fmt.Errorf("%w: draw a rectangle first", ErrNoROI)

	// ErrDegenerateROI means the rectangle was too small once mapped and clamped.
	ErrDegenerateROI = fmt.Errorf("%w: selection is too small", ErrNoROI)
)

// SourceRect is a region in source-image pixel coordinates.
// (X1,Y1) is inclusive and (X2,Y2) is exclusive.
type SourceRect struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Width returns X2 - X1.
func (r SourceRect) Width() int { return r.X2 - r.X1 }

// Height returns Y2 - Y1.
func (r SourceRect) Height() int { return r.Y2 - r.Y1 }

// Rectangle converts r to an image.Rectangle.
func (r SourceRect) Rectangle() image.Rectangle {
	return image.Rect(r.X1, r.Y1, r.X2, r.Y2)
}

func (r SourceRect) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", r.X1, r.Y1, r.X2, r.Y2)
}

// DisplaySize returns the size the source is rendered at. Images wider than
// maxWidth are shrunk to exactly maxWidth with the aspect ratio kept.
func DisplaySize(sourceWidth, sourceHeight, maxWidth int) (int, int) {
	if maxWidth <= 0 || sourceWidth <= maxWidth {
		return sourceWidth, sourceHeight
	}
	scale := float64(maxWidth) / float64(sourceWidth)
	return maxWidth, int(float64(sourceHeight) * scale)
}

// ScalingFactor returns sourceWidth / displayWidth for an image rendered with
// DisplaySize. It is exactly 1.0 when the image fits within maxWidth.
func ScalingFactor(sourceWidth, maxWidth int) float64 {
	displayWidth, _ := DisplaySize(sourceWidth, 0, maxWidth)
	if displayWidth <= 0 {
		return 1.0
	}
	return float64(sourceWidth) / float64(displayWidth)
}

// Clamp constrains r to [0,sourceWidth] x [0,sourceHeight] keeping
// X1 <= X2 and Y1 <= Y2. Clamping an already clamped rectangle is a no-op.
func Clamp(r SourceRect, sourceWidth, sourceHeight int) SourceRect {
	r.X1 = clamp(r.X1, 0, sourceWidth)
	r.Y1 = clamp(r.Y1, 0, sourceHeight)
	r.X2 = clamp(r.X2, r.X1, sourceWidth)
	r.Y2 = clamp(r.Y2, r.Y1, sourceHeight)
	return r
}

// Resolver maps drawn rectangles to source regions.
type Resolver struct {
	// MinSide is the size each side must exceed. Zero means MinROISide.
	MinSide int
}

// ResolveROI resolves the authoritative rectangle of set using the default
// minimum side length.
func ResolveROI(set AnnotationSet, scalingFactor float64, sourceWidth, sourceHeight int) (SourceRect, error) {
	return Resolver{}.Resolve(set, scalingFactor, sourceWidth, sourceHeight)
}

// Resolve converts the last rectangle in set from display to source
// coordinates and clamps it to the image.
//
// Coordinates are floored after scaling. The origin is clamped first and the
// size is then cut to what remains of the image, so a rectangle running past
// the right or bottom edge ends exactly on it.
func (r Resolver) Resolve(set AnnotationSet, scalingFactor float64, sourceWidth, sourceHeight int) (SourceRect, error) {
	if len(set) == 0 {
		return SourceRect{}, ErrNoAnnotation
	}
	a, ok := set.LastRect()
	if !ok {
		return SourceRect{}, ErrNoAnnotation
	}

	sx, sy := a.EffectiveScale()
	left := a.Left * scalingFactor
	top := a.Top * scalingFactor
	width := a.Width * sx * scalingFactor
	height := a.Height * sy * scalingFactor
	for _, v := range [...]float64{left, top, width, height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return SourceRect{}, fmt.Errorf("%w: non-finite coordinates", ErrDegenerateROI)
		}
	}

	x := floorClamp(left, 0, sourceWidth)
	y := floorClamp(top, 0, sourceHeight)
	w := min(floorClamp(width, 0, sourceWidth), sourceWidth-x)
	h := min(floorClamp(height, 0, sourceHeight), sourceHeight-y)

	minSide := r.MinSide
	if minSide <= 0 {
		minSide = MinROISide
	}
	if w <= minSide || h <= minSide {
		return SourceRect{}, fmt.Errorf("%w: %dx%d source pixels, need more than %d", ErrDegenerateROI, w, h, minSide)
	}

	return SourceRect{X1: x, Y1: y, X2: x + w, Y2: y + h}, nil
}

// clamp constrains val to [lo, hi].
func clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// floorClamp floors val and constrains it to [lo, hi] before converting, so
// values beyond the int range cannot wrap.
func floorClamp(val float64, lo, hi int) int {
	val = math.Floor(val)
	if val < float64(lo) {
		return lo
	}
	if val > float64(hi) {
		return hi
	}
	return int(val)
}
