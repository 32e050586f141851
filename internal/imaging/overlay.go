package imaging

import (
	"image"
	"image/color"
	"image/draw"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// OverlayStyle describes how a selection rectangle is painted.
type OverlayStyle struct {
	// StrokeHex is the outline color as "#RRGGBB".
	StrokeHex string

	// StrokeWidth is the outline thickness in pixels, drawn inside the rectangle.
	StrokeWidth int

	// FillHex is the tint blended over the selected area.
	FillHex string

	// FillOpacity is the blend weight of the tint, 0 (none) to 1 (opaque).
	FillOpacity float64
}

// DefaultOverlayStyle is a 2px green outline over a 15% green tint.
var DefaultOverlayStyle = OverlayStyle{
	StrokeHex:   "#00FF00",
	StrokeWidth: 2,
	FillHex:     "#00FF00",
	FillOpacity: 0.15,
}

// Overlay returns a copy of img with the rectangle r highlighted.
//
// r is in image-relative coordinates and is clipped to the image. Invalid
// colors fall back to the defaults.
func Overlay(img image.Image, r image.Rectangle, style OverlayStyle) *image.RGBA {
	bounds := img.Bounds()
	result := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(result, result.Bounds(), img, bounds.Min, draw.Src)

	r = r.Canon().Intersect(result.Bounds())
	if r.Empty() {
		return result
	}

	stroke := parseColor(style.StrokeHex, DefaultOverlayStyle.StrokeHex)
	fill := parseColor(style.FillHex, DefaultOverlayStyle.FillHex)
	opacity := style.FillOpacity
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	sw := style.StrokeWidth
	if sw < 0 {
		sw = 0
	}

	sr, sg, sb := stroke.RGB255()
	strokeRGBA := color.RGBA{R: sr, G: sg, B: sb, A: 255}

	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			onStroke := x < r.Min.X+sw || x >= r.Max.X-sw || y < r.Min.Y+sw || y >= r.Max.Y-sw
			if onStroke {
				result.SetRGBA(x, y, strokeRGBA)
				continue
			}
			if opacity == 0 {
				continue
			}
			// Blend straight color, then restore the pixel's own alpha.
			px := color.NRGBAModel.Convert(result.At(x, y)).(color.NRGBA)
			if px.A == 0 {
				continue
			}
			base := colorful.Color{R: float64(px.R) / 255, G: float64(px.G) / 255, B: float64(px.B) / 255}
			cr, cg, cb := base.BlendRgb(fill, opacity).RGB255()
			result.Set(x, y, color.NRGBA{R: cr, G: cg, B: cb, A: px.A})
		}
	}

	return result
}

// parseColor parses a "#RRGGBB" string, falling back to def on error.
func parseColor(hex, def string) colorful.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		c, _ = colorful.Hex(def)
	}
	return c
}
