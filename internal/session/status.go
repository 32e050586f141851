package session

import (
	"github.com/ironsheep/roi-ocr-mcp/internal/geometry"
	"github.com/ironsheep/roi-ocr-mcp/internal/ocr"
)

// Stage names the furthest step the session has reached.
type Stage string

// Session stages in order.
const (
	StageEmpty      Stage = "empty"
	StageLoaded     Stage = "loaded"
	StageDrawn      Stage = "drawn"
	StageConfirmed  Stage = "confirmed"
	StageRecognized Stage = "recognized"
)

// User-facing messages.
const (
	MsgSelectImage    = "Select an image to start"
	MsgDrawRectangle  = "Draw a rectangle around the text"
	MsgConfirm        = "Confirm the selection to crop it"
	MsgReadyForOCR    = "Ready for OCR"
	MsgTextExtracted  = "Text extracted"
	MsgNoTextDetected = "No text detected"
)

// Status summarizes a session for display.
type Status struct {
	Stage         Stage                `json:"stage"`
	Message       string               `json:"message"`
	ImageID       string               `json:"image_id,omitempty"`
	SourceWidth   int                  `json:"source_width,omitempty"`
	SourceHeight  int                  `json:"source_height,omitempty"`
	DisplayWidth  int                  `json:"display_width,omitempty"`
	DisplayHeight int                  `json:"display_height,omitempty"`
	ScalingFactor float64              `json:"scaling_factor,omitempty"`
	Annotations   int                  `json:"annotations"`
	ROI           *geometry.SourceRect `json:"roi,omitempty"`
	Stats         *ocr.Stats           `json:"stats,omitempty"`
}

// Status reports where the session stands.
func (s State) Status() Status {
	st := Status{Stage: StageEmpty, Message: MsgSelectImage, Annotations: len(s.annotations)}
	if s.source == nil {
		return st
	}

	st.ImageID = s.source.ID
	st.SourceWidth = s.source.Width
	st.SourceHeight = s.source.Height
	if s.display != nil {
		st.DisplayWidth = s.display.Width
		st.DisplayHeight = s.display.Height
		st.ScalingFactor = s.display.ScalingFactor
	}

	switch {
	case s.result != nil:
		st.Stage = StageRecognized
		st.Message = MsgTextExtracted
		if s.result.Empty() {
			st.Message = MsgNoTextDetected
		}
		stats := s.result.Stats()
		st.Stats = &stats
	case s.crop != nil:
		st.Stage = StageConfirmed
		st.Message = MsgReadyForOCR
	case len(s.annotations) > 0:
		st.Stage = StageDrawn
		st.Message = MsgConfirm
	default:
		st.Stage = StageLoaded
		st.Message = MsgDrawRectangle
	}
	st.ROI = s.roi
	return st
}
