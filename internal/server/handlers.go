package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/ironsheep/roi-ocr-mcp/internal/export"
	"github.com/ironsheep/roi-ocr-mcp/internal/geometry"
	"github.com/ironsheep/roi-ocr-mcp/internal/imaging"
	"github.com/ironsheep/roi-ocr-mcp/internal/ocr"
	"github.com/ironsheep/roi-ocr-mcp/internal/preprocess"
	"github.com/ironsheep/roi-ocr-mcp/internal/session"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "roi_load_image", "roi_confirm").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response whose message tells
// the user what to do next.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		code, message := s.describeError(err)
		s.log.Warn().Str("tool", params.Name).Err(err).Msg("tool failed")
		return s.errorResponse(req.ID, code, message, err.Error())
	}

	s.log.Debug().Str("tool", params.Name).Str("stage", string(s.state.Status().Stage)).Msg("tool done")

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Handlers that change the session compute the next state and store it only
// on success, so a failed tool call leaves the session as it was.
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Image
	case "roi_load_image":
		return s.handleLoadImage(args)
	case "roi_display":
		return s.handleDisplay(args)

	// Selection
	case "roi_draw":
		return s.handleDraw(args)
	case "roi_confirm":
		return s.handleConfirm(args)
	case "roi_clear":
		return s.handleClear()

	// Recognition
	case "roi_preview":
		return s.handlePreview()
	case "roi_run_ocr":
		return s.handleRunOCR(ctx)
	case "roi_clear_results":
		return s.handleClearResults()
	case "roi_save_text":
		return s.handleSaveText(args)

	// Diagnostics
	case "roi_status":
		return s.state.Status(), nil
	case "ocr_info":
		return s.handleOCRInfo(), nil

	default:
		return nil, fmt.Errorf("%w: %s", errUnknownTool, name)
	}
}

// decodeArgs unmarshals tool arguments. Missing arguments leave v unchanged.
func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 || string(args) == "null" {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("%w: %w", errInvalidArguments, err)
	}
	return nil
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Image Handlers ===

type loadImageArgs struct {
	Path        string `json:"path"`
	ImageBase64 string `json:"image_base64"`
}

type loadImageResult struct {
	ImageID       string  `json:"image_id"`
	Path          string  `json:"path,omitempty"`
	Format        string  `json:"format"`
	SourceWidth   int     `json:"source_width"`
	SourceHeight  int     `json:"source_height"`
	DisplayWidth  int     `json:"display_width"`
	DisplayHeight int     `json:"display_height"`
	ScalingFactor float64 `json:"scaling_factor"`
	Reloaded      bool    `json:"reloaded"`
	Message       string  `json:"message"`
}

func (s *Server) handleLoadImage(args json.RawMessage) (interface{}, error) {
	var a loadImageArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	var src *imaging.Source
	switch {
	case a.Path != "":
		loaded, err := s.cache.Load(a.Path)
		if err != nil {
			return nil, err
		}
		src = loaded
	case a.ImageBase64 != "":
		data, err := base64.StdEncoding.DecodeString(a.ImageBase64)
		if err != nil {
			return nil, fmt.Errorf("%w: image_base64: %w", errInvalidArguments, err)
		}
		if src, err = imaging.DecodeSource(data); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: path or image_base64 is required", errInvalidArguments)
	}

	prev := s.state.Source()
	reloaded := prev != nil && prev.ID == src.ID
	s.state = s.state.Load(src)

	s.log.Info().
		Str("image_id", src.ID).
		Int("width", src.Width).
		Int("height", src.Height).
		Bool("reloaded", reloaded).
		Msg("image loaded")

	d := s.state.Display()
	return &loadImageResult{
		ImageID:       src.ID,
		Path:          src.Path,
		Format:        src.Format,
		SourceWidth:   src.Width,
		SourceHeight:  src.Height,
		DisplayWidth:  d.Width,
		DisplayHeight: d.Height,
		ScalingFactor: d.ScalingFactor,
		Reloaded:      reloaded,
		Message:       s.state.Status().Message,
	}, nil
}

type displayArgs struct {
	ShowROI *bool `json:"show_roi"`
}

type displayRect struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

type displayResult struct {
	*imaging.EncodedImage
	ScalingFactor float64      `json:"scaling_factor"`
	ROI           *displayRect `json:"roi,omitempty"`
}

func (s *Server) handleDisplay(args json.RawMessage) (interface{}, error) {
	var a displayArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	showROI := a.ShowROI == nil || *a.ShowROI

	d := s.state.Display()
	if d == nil {
		return nil, session.ErrNoImage
	}

	result := &displayResult{ScalingFactor: d.ScalingFactor}
	img := d.Image
	if roi := s.state.ROI(); roi != nil && showROI {
		r := d.ToDisplay(*roi)
		img = imaging.Overlay(d.Image, r, imaging.DefaultOverlayStyle)
		result.ROI = &displayRect{X1: r.Min.X, Y1: r.Min.Y, X2: r.Max.X, Y2: r.Max.Y}
	}

	encoded, err := imaging.EncodeBase64(img)
	if err != nil {
		return nil, err
	}
	result.EncodedImage = encoded
	return result, nil
}

// === Selection Handlers ===

type drawResult struct {
	Annotations int                  `json:"annotations"`
	Rectangles  int                  `json:"rectangles"`
	Selection   *geometry.Annotation `json:"selection,omitempty"`
	Message     string               `json:"message"`
}

func (s *Server) handleDraw(args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: objects is required", errInvalidArguments)
	}
	set, err := geometry.ParseAnnotations(args)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errInvalidArguments, err)
	}

	next, err := s.state.Draw(set)
	if err != nil {
		return nil, err
	}
	s.state = next

	result := &drawResult{Annotations: len(set), Message: s.state.Status().Message}
	for _, a := range set {
		if a.Kind == geometry.KindRect {
			result.Rectangles++
		}
	}
	if last, ok := set.LastRect(); ok {
		result.Selection = &last
	}
	return result, nil
}

type confirmArgs struct {
	IncludeImage bool `json:"include_image"`
}

type confirmResult struct {
	ROI           geometry.SourceRect   `json:"roi"`
	Width         int                   `json:"width"`
	Height        int                   `json:"height"`
	ScalingFactor float64               `json:"scaling_factor"`
	Message       string                `json:"message"`
	Image         *imaging.EncodedImage `json:"image,omitempty"`
}

func (s *Server) handleConfirm(args json.RawMessage) (interface{}, error) {
	var a confirmArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	next, err := s.state.Confirm()
	if err != nil {
		return nil, err
	}
	s.state = next

	roi := *s.state.ROI()
	s.log.Info().Stringer("roi", roi).Float64("scaling_factor", s.state.ScalingFactor()).Msg("region confirmed")

	result := &confirmResult{
		ROI:           roi,
		Width:         roi.Width(),
		Height:        roi.Height(),
		ScalingFactor: s.state.ScalingFactor(),
		Message:       s.state.Status().Message,
	}
	if a.IncludeImage {
		encoded, err := imaging.EncodeBase64(s.state.Crop())
		if err != nil {
			return nil, err
		}
		result.Image = encoded
	}
	return result, nil
}

type messageResult struct {
	Message string `json:"message"`
}

func (s *Server) handleClear() (interface{}, error) {
	if s.state.Source() == nil {
		return nil, session.ErrNoImage
	}
	s.state = s.state.ClearDrawing()
	return &messageResult{Message: s.state.Status().Message}, nil
}

// === Recognition Handlers ===

type previewResult struct {
	*imaging.EncodedImage
	Threshold uint8  `json:"threshold"`
	Message   string `json:"message"`
}

func (s *Server) handlePreview() (interface{}, error) {
	stages, err := s.state.PreviewStages()
	if err != nil {
		return nil, err
	}
	encoded, err := imaging.EncodeBase64(stages.Binary)
	if err != nil {
		return nil, err
	}
	return &previewResult{
		EncodedImage: encoded,
		Threshold:    stages.Threshold,
		Message:      "Binary threshold applied",
	}, nil
}

type ocrResult struct {
	Text       string    `json:"text"`
	Empty      bool      `json:"empty"`
	Stats      ocr.Stats `json:"stats"`
	Message    string    `json:"message"`
	DurationMS int64     `json:"duration_ms"`
}

func (s *Server) handleRunOCR(ctx context.Context) (interface{}, error) {
	if timeout := s.cfg.RecognitionTimeout; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := s.now()
	next, err := s.state.Recognize(ctx, s.engine)
	if err != nil {
		return nil, err
	}
	s.state = next
	elapsed := s.now().Sub(start)

	res := s.state.Result()
	stats := res.Stats()
	s.log.Info().
		Int("words", stats.Words).
		Int("characters", stats.Characters).
		Dur("elapsed", elapsed).
		Msg("text recognized")

	return &ocrResult{
		Text:       res.Text,
		Empty:      res.Empty(),
		Stats:      stats,
		Message:    s.state.Status().Message,
		DurationMS: elapsed.Milliseconds(),
	}, nil
}

func (s *Server) handleClearResults() (interface{}, error) {
	s.state = s.state.ClearResults()
	return &messageResult{Message: s.state.Status().Message}, nil
}

type saveTextArgs struct {
	OutputDir string `json:"output_dir"`
}

type saveTextResult struct {
	Path     string `json:"path"`
	FileName string `json:"file_name"`
	MimeType string `json:"mime_type"`
	Bytes    int    `json:"bytes"`
}

func (s *Server) handleSaveText(args json.RawMessage) (interface{}, error) {
	var a saveTextArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	dir := a.OutputDir
	if dir == "" {
		dir = s.cfg.OutputDir
	}

	text, err := s.state.Text()
	if err != nil {
		return nil, err
	}

	path, err := export.Save(dir, text, s.now())
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("path", path).Msg("text saved")

	return &saveTextResult{
		Path:     path,
		FileName: filepath.Base(path),
		MimeType: export.MimeType,
		Bytes:    len(text),
	}, nil
}

// === Diagnostics ===

type ocrInfoResult struct {
	ocr.EngineInfo
	Language       string  `json:"language"`
	PageSegMode    int     `json:"page_seg_mode"`
	TimeoutSeconds float64 `json:"timeout_seconds"`
	Preprocessing  string  `json:"preprocessing"`
}

func (s *Server) handleOCRInfo() *ocrInfoResult {
	result := &ocrInfoResult{
		Language:       s.cfg.Language,
		PageSegMode:    s.cfg.PageSegMode,
		TimeoutSeconds: s.cfg.RecognitionTimeout.Seconds(),
		Preprocessing:  preprocess.Backend,
	}
	switch e := s.engine.(type) {
	case nil:
		result.Backend = "none"
		result.Error = "no recognition engine configured"
	case ocr.Describer:
		result.EngineInfo = e.Info()
	default:
		result.Backend = "custom"
		result.Available = true
	}
	return result
}
