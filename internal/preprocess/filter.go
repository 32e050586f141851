package preprocess

import (
	"image"

	"github.com/disintegration/imaging"
)

// BT.601 luma weights in 14-bit fixed point. They sum to 1<<14.
const (
	lumaShift = 14
	lumaR     = 4899
	lumaG     = 9617
	lumaB     = 1868
)

// gaussianRow is the 5-tap binomial a 5x5 sigma-0 Gaussian resolves to.
// The 2D kernel is its outer product and sums to 256.
var gaussianRow = [5]int{1, 4, 6, 4, 1}

// Grayscale converts img to luminance with BT.601 weights, rounding to
// nearest. Alpha is ignored. The result has its origin at (0,0).
func Grayscale(img image.Image) *image.Gray {
	src := imaging.Clone(img)
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	dst := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		srow := src.Pix[y*src.Stride:]
		drow := dst.Pix[y*dst.Stride:]
		for x := 0; x < w; x++ {
			r, g, b := int(srow[x*4]), int(srow[x*4+1]), int(srow[x*4+2])
			drow[x] = uint8((r*lumaR + g*lumaG + b*lumaB + 1<<(lumaShift-1)) >> lumaShift)
		}
	}
	return dst
}

// GaussianBlur5x5 smooths src with the 5x5 binomial kernel. Samples past the
// edge are mirrored without repeating the edge pixel (dcb|abcd|cba).
func GaussianBlur5x5(src *image.Gray) *image.Gray {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewGray(image.Rect(0, 0, w, h))

	// Horizontal pass into an int buffer keeps the full 1/16 precision.
	rows := make([]int, w*h)
	for y := 0; y < h; y++ {
		srow := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):]
		for x := 0; x < w; x++ {
			sum := 0
			for k, weight := range gaussianRow {
				sum += weight * int(srow[reflect101(x+k-2, w)])
			}
			rows[y*w+x] = sum
		}
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sum := 0
			for k, weight := range gaussianRow {
				sum += weight * rows[reflect101(y+k-2, h)*w+x]
			}
			dst.Pix[y*dst.Stride+x] = uint8((sum + 128) >> 8)
		}
	}
	return dst
}

// reflect101 maps an out-of-range index back into [0, n).
func reflect101(i, n int) int {
	if n == 1 {
		return 0
	}
	for i < 0 || i >= n {
		if i < 0 {
			i = -i
		} else {
			i = 2*(n-1) - i
		}
	}
	return i
}
