package geometry

import "encoding/json"

// Kind identifies the shape type of a drawing-surface annotation.
type Kind string

// Shape kinds reported by the drawing surface. Only KindRect selects an ROI.
const (
	KindRect      Kind = "rect"
	KindCircle    Kind = "circle"
	KindLine      Kind = "line"
	KindPath      Kind = "path"
	KindTransform Kind = "transform"
)

// Annotation is one shape recorded by the drawing surface, in display
// coordinates.
//
// ScaleX and ScaleY are the resize factors the surface applied to the raw
// Width and Height after the shape was drawn. They are nil when the surface
// did not report a resize, which is treated as 1.0.
type Annotation struct {
	Kind   Kind     `json:"type"`
	Left   float64  `json:"left"`
	Top    float64  `json:"top"`
	Width  float64  `json:"width"`
	Height float64  `json:"height"`
	ScaleX *float64 `json:"scaleX,omitempty"`
	ScaleY *float64 `json:"scaleY,omitempty"`
}

// Rect builds an unscaled rectangle annotation.
func Rect(left, top, width, height float64) Annotation {
	return Annotation{Kind: KindRect, Left: left, Top: top, Width: width, Height: height}
}

// Scaled returns a copy of a with explicit resize factors.
func (a Annotation) Scaled(sx, sy float64) Annotation {
	a.ScaleX = &sx
	a.ScaleY = &sy
	return a
}

// EffectiveScale returns the resize factors, defaulting each to 1.0.
func (a Annotation) EffectiveScale() (float64, float64) {
	sx, sy := 1.0, 1.0
	if a.ScaleX != nil {
		sx = *a.ScaleX
	}
	if a.ScaleY != nil {
		sy = *a.ScaleY
	}
	return sx, sy
}

// AnnotationSet is the ordered list of shapes on the drawing surface, oldest
// first.
type AnnotationSet []Annotation

// LastRect returns the most recently added rectangle. Earlier rectangles and
// shapes of other kinds are ignored.
func (s AnnotationSet) LastRect() (Annotation, bool) {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i].Kind == KindRect {
			return s[i], true
		}
	}
	return Annotation{}, false
}

// canvasDocument is the JSON document some drawing surfaces emit, with the
// shapes nested under "objects".
type canvasDocument struct {
	Objects AnnotationSet `json:"objects"`
}

// ParseAnnotations decodes either a bare JSON array of annotations or a
// canvas document of the form {"objects": [...]}.
func ParseAnnotations(data []byte) (AnnotationSet, error) {
	var set AnnotationSet
	if err := json.Unmarshal(data, &set); err == nil {
		return set, nil
	}

	var doc canvasDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc.Objects, nil
}
