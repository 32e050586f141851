package geometry

import (
	"errors"
	"math"
	"testing"
)

func TestScalingFactor(t *testing.T) {
	tests := []struct {
		name        string
		sourceWidth int
		maxWidth    int
		want        float64
	}{
		{"wider than cap", 1800, 600, 3.0},
		{"exactly cap", 600, 600, 1.0},
		{"narrower than cap", 320, 600, 1.0},
		{"non-integral", 1000, 600, 1000.0 / 600.0},
		{"no cap", 1800, 0, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScalingFactor(tt.sourceWidth, tt.maxWidth)
			if got != tt.want {
				t.Errorf("ScalingFactor(%d, %d) = %v, want %v", tt.sourceWidth, tt.maxWidth, got, tt.want)
			}
		})
	}
}

func TestDisplaySize(t *testing.T) {
	tests := []struct {
		name         string
		w, h, max    int
		wantW, wantH int
	}{
		{"shrunk", 1800, 1200, 600, 600, 400},
		{"floored height", 1000, 333, 600, 600, 199},
		{"unchanged", 400, 300, 600, 400, 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := DisplaySize(tt.w, tt.h, tt.max)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("DisplaySize = %dx%d, want %dx%d", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestResolveROI_Examples(t *testing.T) {
	sf := ScalingFactor(1800, 600)

	got, err := ResolveROI(AnnotationSet{Rect(100, 50, 40, 20)}, sf, 1800, 1200)
	if err != nil {
		t.Fatalf("ResolveROI failed: %v", err)
	}
	want := SourceRect{X1: 300, Y1: 150, X2: 420, Y2: 210}
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}

	_, err = ResolveROI(AnnotationSet{Rect(0, 0, 3, 3)}, sf, 1800, 1200)
	if !errors.Is(err, ErrDegenerateROI) {
		t.Errorf("3x3 rectangle: got err %v, want ErrDegenerateROI", err)
	}

	got, err = ResolveROI(AnnotationSet{Rect(590, 10, 50, 20)}, sf, 1800, 1200)
	if err != nil {
		t.Fatalf("ResolveROI past right edge failed: %v", err)
	}
	if got.X2 != 1800 {
		t.Errorf("X2: got %d, want 1800", got.X2)
	}
	if got.X1 != 1770 || got.Width() != 30 {
		t.Errorf("got %v, want x1=1770 width=30", got)
	}
}

func TestResolveROI_NoAnnotation(t *testing.T) {
	tests := []struct {
		name string
		set  AnnotationSet
	}{
		{"nil", nil},
		{"empty", AnnotationSet{}},
		{"no rectangles", AnnotationSet{
			{Kind: KindCircle, Left: 10, Top: 10, Width: 50, Height: 50},
			{Kind: KindPath, Left: 0, Top: 0, Width: 100, Height: 100},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveROI(tt.set, 2.0, 1000, 1000)
			if !errors.Is(err, ErrNoAnnotation) {
				t.Errorf("got err %v, want ErrNoAnnotation", err)
			}
			if !errors.Is(err, ErrNoROI) {
				t.Errorf("ErrNoAnnotation should wrap ErrNoROI")
			}
			if errors.Is(err, ErrDegenerateROI) {
				t.Errorf("missing annotation must not report ErrDegenerateROI")
			}
		})
	}
}

func TestResolveROI_LastRectangleWins(t *testing.T) {
	set := AnnotationSet{
		Rect(0, 0, 100, 100),
		Rect(10, 20, 30, 40),
		{Kind: KindCircle, Left: 200, Top: 200, Width: 50, Height: 50},
	}

	got, err := ResolveROI(set, 1.0, 500, 500)
	if err != nil {
		t.Fatalf("ResolveROI failed: %v", err)
	}
	want := SourceRect{X1: 10, Y1: 20, X2: 40, Y2: 60}
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestResolveROI_LaterDegenerateRectangleIsAuthoritative(t *testing.T) {
	// A valid earlier rectangle must not be used when the newest one is too small.
	set := AnnotationSet{Rect(0, 0, 100, 100), Rect(0, 0, 2, 2)}

	_, err := ResolveROI(set, 1.0, 500, 500)
	if !errors.Is(err, ErrDegenerateROI) {
		t.Errorf("got err %v, want ErrDegenerateROI", err)
	}
}

func TestResolveROI_ScaleFactors(t *testing.T) {
	a := Rect(10, 10, 20, 10).Scaled(2.5, 3)

	got, err := ResolveROI(AnnotationSet{a}, 2.0, 1000, 1000)
	if err != nil {
		t.Fatalf("ResolveROI failed: %v", err)
	}
	// w = floor(20*2.5*2) = 100, h = floor(10*3*2) = 60
	want := SourceRect{X1: 20, Y1: 20, X2: 120, Y2: 80}
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestResolveROI_Flooring(t *testing.T) {
	got, err := ResolveROI(AnnotationSet{Rect(10.9, 5.5, 33.3, 20.2)}, 1.5, 1000, 1000)
	if err != nil {
		t.Fatalf("ResolveROI failed: %v", err)
	}
	// x=floor(16.35)=16 y=floor(8.25)=8 w=floor(49.95)=49 h=floor(30.3)=30
	want := SourceRect{X1: 16, Y1: 8, X2: 65, Y2: 38}
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestResolveROI_ThresholdBoundary(t *testing.T) {
	tests := []struct {
		name    string
		w, h    float64
		wantErr bool
	}{
		{"10x10 rejected", 10, 10, true},
		{"11x10 rejected", 11, 10, true},
		{"10x11 rejected", 10, 11, true},
		{"11x11 accepted", 11, 11, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveROI(AnnotationSet{Rect(0, 0, tt.w, tt.h)}, 1.0, 100, 100)
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestResolveROI_OutsideImage(t *testing.T) {
	tests := []struct {
		name string
		a    Annotation
	}{
		{"origin past right edge", Rect(700, 10, 50, 50)},
		{"origin past bottom edge", Rect(10, 700, 50, 50)},
		{"negative size", Rect(10, 10, -50, 50)},
		{"huge left", Rect(1e20, 10, 50, 50)},
		{"NaN left", Rect(math.NaN(), 10, 50, 50)},
		{"NaN width", Rect(10, 10, math.NaN(), 50)},
		{"infinite height", Rect(10, 10, 50, math.Inf(1))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveROI(AnnotationSet{tt.a}, 1.0, 600, 600)
			if !errors.Is(err, ErrDegenerateROI) {
				t.Errorf("got err %v, want ErrDegenerateROI", err)
			}
		})
	}
}

func TestResolveROI_NegativeOriginClamped(t *testing.T) {
	got, err := ResolveROI(AnnotationSet{Rect(-5, -5, 50, 50)}, 2.0, 1000, 1000)
	if err != nil {
		t.Fatalf("ResolveROI failed: %v", err)
	}
	if got.X1 != 0 || got.Y1 != 0 {
		t.Errorf("origin not clamped: %v", got)
	}
	if got.Width() != 100 || got.Height() != 100 {
		t.Errorf("size: got %dx%d, want 100x100", got.Width(), got.Height())
	}
}

func TestResolveROI_CustomMinSide(t *testing.T) {
	r := Resolver{MinSide: 50}
	if _, err := r.Resolve(AnnotationSet{Rect(0, 0, 40, 40)}, 1.0, 100, 100); !errors.Is(err, ErrDegenerateROI) {
		t.Errorf("40x40 with MinSide 50: got err %v, want ErrDegenerateROI", err)
	}
	if _, err := r.Resolve(AnnotationSet{Rect(0, 0, 60, 60)}, 1.0, 100, 100); err != nil {
		t.Errorf("60x60 with MinSide 50: unexpected err %v", err)
	}
}

// Every rectangle drawn inside the display canvas resolves inside the source.
func TestResolveROI_InsideSourceBounds(t *testing.T) {
	sizes := []struct{ w, h int }{{1800, 1200}, {601, 450}, {4000, 3000}, {1234, 77}}

	for _, size := range sizes {
		sf := ScalingFactor(size.w, DefaultMaxDisplayWidth)
		dw, dh := DisplaySize(size.w, size.h, DefaultMaxDisplayWidth)

		for left := 0; left < dw; left += 37 {
			for top := 0; top < dh; top += 23 {
				a := Rect(float64(left), float64(top), float64(dw-left), float64(dh-top))
				got, err := ResolveROI(AnnotationSet{a}, sf, size.w, size.h)
				if err != nil {
					continue
				}
				if got.X1 < 0 || got.Y1 < 0 || got.X2 > size.w || got.Y2 > size.h {
					t.Fatalf("%dx%d: %v escapes source bounds", size.w, size.h, got)
				}
				if got.X1 > got.X2 || got.Y1 > got.Y2 {
					t.Fatalf("%dx%d: %v is inverted", size.w, size.h, got)
				}
			}
		}
	}
}

func TestClamp_Idempotent(t *testing.T) {
	rects := []SourceRect{
		{X1: -10, Y1: -10, X2: 50, Y2: 50},
		{X1: 90, Y1: 90, X2: 500, Y2: 500},
		{X1: 200, Y1: 10, X2: 300, Y2: 20},
		{X1: 30, Y1: 30, X2: 10, Y2: 10},
		{X1: 10, Y1: 20, X2: 40, Y2: 60},
	}

	for _, r := range rects {
		once := Clamp(r, 100, 100)
		twice := Clamp(once, 100, 100)
		if once != twice {
			t.Errorf("Clamp(%v): first %v, second %v", r, once, twice)
		}
		if once.X1 < 0 || once.X2 > 100 || once.Y1 < 0 || once.Y2 > 100 || once.X1 > once.X2 || once.Y1 > once.Y2 {
			t.Errorf("Clamp(%v) = %v violates bounds", r, once)
		}
	}

	resolved, err := ResolveROI(AnnotationSet{Rect(590, 10, 50, 20)}, 3.0, 1800, 1200)
	if err != nil {
		t.Fatalf("ResolveROI failed: %v", err)
	}
	if got := Clamp(resolved, 1800, 1200); got != resolved {
		t.Errorf("Clamp changed resolved rect: %v -> %v", resolved, got)
	}
}
