package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// emptySchema is the input schema of tools that take no arguments.
func emptySchema() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Image
		{
			Name:        "roi_load_image",
			Description: "Load a JPEG, PNG, BMP or GIF image as the session image, from a file or from base64 data such as a camera capture. Returns source and display dimensions and the display-to-source scaling factor. Loading a different image discards the drawing, crop and text; reloading the same unchanged image keeps them.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"image_base64": map[string]interface{}{
						"type":        "string",
						"description": "Encoded image bytes in base64, used when path is empty",
					},
				},
			},
		},
		{
			Name:        "roi_display",
			Description: "Return the display-size copy of the session image as base64 PNG. Draw rectangles in this image's coordinates. The confirmed region, if any, is outlined in green.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"show_roi": map[string]interface{}{
						"type":        "boolean",
						"description": "Outline the confirmed region. Default true",
						"default":     true,
					},
				},
			},
		},

		// Selection
		{
			Name:        "roi_draw",
			Description: "Replace the drawing with a list of shapes in display coordinates. The last rectangle is the selection; other shape types are ignored.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"objects": map[string]interface{}{
						"type":        "array",
						"description": "Shapes as emitted by the drawing canvas",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"type": map[string]interface{}{
									"type":        "string",
									"description": "Shape type: rect, circle, line, path or transform",
								},
								"left":   map[string]interface{}{"type": "number"},
								"top":    map[string]interface{}{"type": "number"},
								"width":  map[string]interface{}{"type": "number"},
								"height": map[string]interface{}{"type": "number"},
								"scaleX": map[string]interface{}{
									"type":        "number",
									"description": "Horizontal resize factor applied after drawing. Default 1.0",
								},
								"scaleY": map[string]interface{}{
									"type":        "number",
									"description": "Vertical resize factor applied after drawing. Default 1.0",
								},
							},
							"required": []string{"type", "left", "top", "width", "height"},
						},
					},
				},
				"required": []string{"objects"},
			},
		},
		{
			Name:        "roi_confirm",
			Description: "Map the last drawn rectangle onto the full-resolution image and crop it. Fails if nothing was drawn or the selection is too small.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"include_image": map[string]interface{}{
						"type":        "boolean",
						"description": "Return the cropped region as base64 PNG. Default false",
						"default":     false,
					},
				},
			},
		},
		{
			Name:        "roi_clear",
			Description: "Discard the drawing, the crop and any extracted text. The image stays loaded.",
			InputSchema: emptySchema(),
		},

		// Recognition
		{
			Name:        "roi_preview",
			Description: "Return the confirmed region after grayscale, blur and Otsu binarization, exactly as it is handed to the OCR engine.",
			InputSchema: emptySchema(),
		},
		{
			Name:        "roi_run_ocr",
			Description: "Run OCR on the confirmed region and return the text with word, character and line counts.",
			InputSchema: emptySchema(),
		},
		{
			Name:        "roi_clear_results",
			Description: "Discard the extracted text, keeping the selection.",
			InputSchema: emptySchema(),
		},
		{
			Name:        "roi_save_text",
			Description: "Write the extracted text to text_<YYYYMMDD>-<HHMMSS>.txt and return the file path.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"output_dir": map[string]interface{}{
						"type":        "string",
						"description": "Directory to write to. Defaults to the configured output directory",
					},
				},
			},
		},

		// Diagnostics
		{
			Name:        "roi_status",
			Description: "Report the session stage, image dimensions, selection and text statistics.",
			InputSchema: emptySchema(),
		},
		{
			Name:        "ocr_info",
			Description: "Report whether the OCR engine is available, its version and the configured language and page segmentation mode.",
			InputSchema: emptySchema(),
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
