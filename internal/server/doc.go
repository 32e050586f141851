// Package server implements the MCP (Model Context Protocol) server for
// region-of-interest OCR.
//
// This package provides a JSON-RPC 2.0 server that drives one interactive
// session: load an image, draw a rectangle on its display copy, confirm the
// selection, and extract the text from the matching region of the
// full-resolution image.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Image:
//   - roi_load_image: Load the session image
//   - roi_display: Display-size copy with the confirmed region outlined
//
// Selection:
//   - roi_draw: Replace the drawn shapes (display coordinates)
//   - roi_confirm: Map the last rectangle to the source image and crop
//   - roi_clear: Drop drawing, crop and text
//
// Recognition:
//   - roi_preview: The binarized crop as the OCR engine sees it
//   - roi_run_ocr: Extract text from the confirmed region
//   - roi_clear_results: Drop the extracted text
//   - roi_save_text: Write the text to a timestamped file
//
// Diagnostics:
//   - roi_status: Session stage and statistics
//   - ocr_info: OCR engine availability
//
// # Session State
//
// The server holds exactly one session.State and replaces it after each
// successful tool call. Requests are handled one at a time in arrival order.
// Decoded images are cached by path, so reloading an unchanged file is
// cheap and keeps the current selection.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: What went wrong and what to do next
//   - data: The underlying Go error string
//
// A failed tool call never changes the session.
//
// # Usage
//
//	srv := server.New(tesseract.New(""), server.WithLogger(logger))
//	if err := srv.Run(ctx, os.Stdin, os.Stdout); err != nil {
//	    logger.Fatal().Err(err).Msg("server error")
//	}
package server
