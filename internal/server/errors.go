package server

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ironsheep/roi-ocr-mcp/internal/export"
	"github.com/ironsheep/roi-ocr-mcp/internal/geometry"
	"github.com/ironsheep/roi-ocr-mcp/internal/ocr"
	"github.com/ironsheep/roi-ocr-mcp/internal/preprocess"
	"github.com/ironsheep/roi-ocr-mcp/internal/session"
)

// JSON-RPC error codes.
const (
	codeParseError     = -32700
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeToolFailed     = -32000
)

var (
	errUnknownTool      = errors.New("unknown tool")
	errInvalidArguments = errors.New("invalid arguments")
)

// describeError picks the JSON-RPC code and user-facing message for a tool
// failure. Every precondition gets its own message naming the next step.
func (s *Server) describeError(err error) (int, string) {
	switch {
	case errors.Is(err, errUnknownTool):
		return codeMethodNotFound, "Unknown tool"
	case errors.Is(err, errInvalidArguments):
		return codeInvalidParams, "Invalid arguments"
	case errors.Is(err, session.ErrNoImage):
		return codeToolFailed, "No image loaded. Load an image with roi_load_image first."
	case errors.Is(err, geometry.ErrNoAnnotation):
		return codeToolFailed, "No rectangle drawn. Draw a rectangle around the text with roi_draw."
	case errors.Is(err, geometry.ErrDegenerateROI):
		return codeToolFailed, fmt.Sprintf("Selection too small. Draw a rectangle larger than %dx%d pixels of the original image.", s.cfg.MinROISide, s.cfg.MinROISide)
	case errors.Is(err, session.ErrNoCrop):
		return codeToolFailed, "No confirmed region. Confirm the selection with roi_confirm first."
	case errors.Is(err, preprocess.ErrEmptyInput):
		return codeToolFailed, "The selected region is empty. Draw a new rectangle."
	case errors.Is(err, context.DeadlineExceeded):
		return codeToolFailed, fmt.Sprintf("Text recognition timed out after %s. Try a smaller region.", s.cfg.RecognitionTimeout)
	case errors.Is(err, ocr.ErrRecognitionUnavailable):
		return codeToolFailed, "Text recognition is unavailable. Check that Tesseract and its language data are installed."
	case errIsAny(err, session.ErrNoText, export.ErrNothingToSave):
		if s.state.Result() != nil {
			return codeToolFailed, "No text detected. Draw a new rectangle or try another region."
		}
		return codeToolFailed, "No extracted text. Run roi_run_ocr first."
	case errors.Is(err, os.ErrNotExist):
		return codeToolFailed, "Image file not found."
	default:
		return codeToolFailed, "Tool execution failed"
	}
}

// errIsAny reports whether err matches any of targets.
func errIsAny(err error, targets ...error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}
