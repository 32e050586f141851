//go:build cgo && linux

package preprocess

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"gocv.io/x/gocv"
)

// Backend names the implementation compiled into this binary.
const Backend = "opencv"

func runStages(img image.Image) (*Stages, error) {
	src := imaging.Clone(img)
	b := src.Bounds()

	rgba, err := gocv.NewMatFromBytes(b.Dy(), b.Dx(), gocv.MatTypeCV8UC4, src.Pix)
	if err != nil {
		return nil, fmt.Errorf("wrap raster: %w", err)
	}
	defer rgba.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(rgba, &gray, gocv.ColorRGBAToGray)

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(gray, &blurred, image.Pt(5, 5), 0, 0, gocv.BorderDefault)

	binary := gocv.NewMat()
	defer binary.Close()
	t := gocv.Threshold(blurred, &binary, 0, float32(White), gocv.ThresholdBinary|gocv.ThresholdOtsu)

	return &Stages{
		Gray:      matToGray(gray),
		Blurred:   matToGray(blurred),
		Threshold: uint8(t),
		Binary:    matToGray(binary),
	}, nil
}

// matToGray copies a continuous single-channel 8-bit Mat.
func matToGray(m gocv.Mat) *image.Gray {
	g := image.NewGray(image.Rect(0, 0, m.Cols(), m.Rows()))
	copy(g.Pix, m.ToBytes())
	return g
}
