// Package main provides the entry point for the roi-ocr-mcp CLI.
//
// roi-ocr-mcp extracts text from a user-selected region of an image. Run
// without a subcommand it serves the MCP protocol on stdin/stdout; the
// extract subcommand runs the same pipeline once from flags.
//
// Usage:
//
//	roi-ocr-mcp
//	roi-ocr-mcp extract --image scan.png --rect 100,50,40,20
//
// See --help for all available options.
package main

func main() {
	Execute()
}
