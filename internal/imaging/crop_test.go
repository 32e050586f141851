package imaging

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestCrop(t *testing.T) {
	img := createPatternImage(100, 100)

	cropped, err := Crop(img, 0, 0, 50, 50)
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}

	if cropped.Bounds() != image.Rect(0, 0, 50, 50) {
		t.Errorf("bounds: got %v, want (0,0)-(50,50)", cropped.Bounds())
	}
}

func TestCrop_VerifyContent(t *testing.T) {
	img := createPatternImage(100, 100)

	tests := []struct {
		name           string
		x1, y1, x2, y2 int
		r, g, b        uint8
	}{
		{"top-left", 0, 0, 50, 50, 255, 0, 0},
		{"top-right", 50, 0, 100, 50, 0, 255, 0},
		{"bottom-left", 0, 50, 50, 100, 0, 0, 255},
		{"bottom-right", 50, 50, 100, 100, 255, 255, 255},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cropped, err := Crop(img, tt.x1, tt.y1, tt.x2, tt.y2)
			if err != nil {
				t.Fatalf("Crop failed: %v", err)
			}
			r, g, b := rgb8(cropped.At(25, 25))
			if r != tt.r || g != tt.g || b != tt.b {
				t.Errorf("color: got (%d,%d,%d), want (%d,%d,%d)", r, g, b, tt.r, tt.g, tt.b)
			}
		})
	}
}

func TestCrop_OutOfBounds(t *testing.T) {
	img := createInMemoryImage(100, 100, color.RGBA{255, 0, 0, 255})

	tests := []struct {
		name           string
		x1, y1, x2, y2 int
	}{
		{"x1 negative", -1, 0, 50, 50},
		{"y1 negative", 0, -1, 50, 50},
		{"x2 too large", 0, 0, 101, 50},
		{"y2 too large", 0, 0, 50, 101},
		{"all out of bounds", -1, -1, 200, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Crop(img, tt.x1, tt.y1, tt.x2, tt.y2)
			if err == nil {
				t.Error("Crop should fail for out-of-bounds coordinates")
			}
		})
	}
}

func TestCrop_EmptyRegion(t *testing.T) {
	img := createInMemoryImage(100, 100, color.RGBA{255, 0, 0, 255})

	tests := []struct {
		name           string
		x1, y1, x2, y2 int
	}{
		{"x1 == x2", 50, 0, 50, 50},
		{"x1 > x2", 60, 0, 50, 50},
		{"y1 == y2", 0, 50, 50, 50},
		{"zero area", 50, 50, 50, 50},
		{"at right edge", 100, 0, 100, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Crop(img, tt.x1, tt.y1, tt.x2, tt.y2)
			if !errors.Is(err, ErrEmptyCrop) {
				t.Errorf("got err %v, want ErrEmptyCrop", err)
			}
		})
	}
}

func TestCrop_OffsetOrigin(t *testing.T) {
	full := createPatternImage(200, 200)
	// The sub-image's own top-left quadrant is the full image's red area.
	sub := full.SubImage(image.Rect(50, 50, 150, 150))

	cropped, err := Crop(sub, 0, 0, 10, 10)
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}
	r, g, b := rgb8(cropped.At(5, 5))
	if r != 255 || g != 0 || b != 0 {
		t.Errorf("color: got (%d,%d,%d), want (255,0,0)", r, g, b)
	}
	if cropped.Bounds().Min != (image.Point{}) {
		t.Errorf("origin: got %v, want (0,0)", cropped.Bounds().Min)
	}
}

func TestCropRect(t *testing.T) {
	img := createPatternImage(100, 100)

	cropped, err := CropRect(img, image.Rect(60, 60, 90, 80))
	if err != nil {
		t.Fatalf("CropRect failed: %v", err)
	}
	if cropped.Bounds().Dx() != 30 || cropped.Bounds().Dy() != 20 {
		t.Errorf("size: got %v, want 30x20", cropped.Bounds())
	}
}
