package tesseract

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"reflect"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ironsheep/roi-ocr-mcp/internal/ocr"
	"github.com/ironsheep/roi-ocr-mcp/internal/preprocess"
)

// createImageWithText renders text with basicfont and scales it up so
// Tesseract has enough pixels per glyph.
func createImageWithText(text string, scale int) image.Image {
	width := len(text)*7 + 40
	height := 40

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Black),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(20), Y: fixed.I(25)},
	}
	d.DrawString(text)

	return imaging.Resize(img, width*scale, height*scale, imaging.NearestNeighbor)
}

func requireTesseract(t *testing.T) *Engine {
	t.Helper()
	e := New("")
	if info := e.Info(); !info.Available {
		t.Skipf("Tesseract not available: %s", info.Error)
	}
	return e
}

func TestSplitLanguages(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"eng"}},
		{"eng", []string{"eng"}},
		{"deu+eng", []string{"deu", "eng"}},
		{" fra + ", []string{"fra"}},
		{"+", []string{"eng"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := splitLanguages(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitLanguages(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestEngine_Recognize(t *testing.T) {
	e := requireTesseract(t)

	binary, err := preprocess.Preprocess(createImageWithText("HELLO WORLD", 4))
	if err != nil {
		t.Fatalf("Preprocess failed: %v", err)
	}

	res, err := ocr.Recognize(context.Background(), e, binary, ocr.DefaultOptions())
	if err != nil {
		t.Fatalf("Recognize failed: %v", err)
	}
	if !strings.Contains(strings.ToUpper(res.Text), "HELLO") {
		t.Errorf("expected HELLO in %q", res.Text)
	}
}

func TestEngine_InvalidLanguage(t *testing.T) {
	e := requireTesseract(t)

	binary, err := preprocess.Preprocess(createImageWithText("TEST", 3))
	if err != nil {
		t.Fatalf("Preprocess failed: %v", err)
	}

	_, err = e.Recognize(context.Background(), binary, ocr.Options{Language: "zz_not_a_language", PageSegMode: ocr.PSMSingleBlock})
	if err == nil {
		t.Fatal("Recognize should fail for a missing language")
	}
	if !errors.Is(err, ocr.ErrRecognitionUnavailable) {
		t.Errorf("got err %v, want ErrRecognitionUnavailable", err)
	}
}

func TestEngine_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New("").Recognize(ctx, image.NewGray(image.Rect(0, 0, 10, 10)), ocr.DefaultOptions())
	if !errors.Is(err, ocr.ErrRecognitionUnavailable) || !errors.Is(err, context.Canceled) {
		t.Errorf("got err %v, want ErrRecognitionUnavailable wrapping Canceled", err)
	}
}

func TestEngine_BadTessdataPrefix(t *testing.T) {
	requireTesseract(t)

	e := New("/nonexistent/tessdata")
	_, err := e.Recognize(context.Background(), image.NewGray(image.Rect(0, 0, 20, 20)), ocr.DefaultOptions())
	if !errors.Is(err, ocr.ErrRecognitionUnavailable) {
		t.Errorf("got err %v, want ErrRecognitionUnavailable", err)
	}
}
