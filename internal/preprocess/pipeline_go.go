//go:build !(cgo && linux)

package preprocess

import "image"

// Backend names the implementation compiled into this binary.
const Backend = "go"

func runStages(img image.Image) (*Stages, error) {
	gray := Grayscale(img)
	blurred := GaussianBlur5x5(gray)
	t := OtsuThreshold(blurred)

	return &Stages{
		Gray:      gray,
		Blurred:   blurred,
		Threshold: t,
		Binary:    Binarize(blurred, t),
	}, nil
}
