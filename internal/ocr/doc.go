// Package ocr defines the boundary to the text recognition engine.
//
// The engine itself is opaque: it receives the binarized raster produced by
// the preprocess package and returns UTF-8 text. This package owns the
// contract around that call:
//
//   - A Recognizer never sees an empty raster; Recognize rejects it first
//     with preprocess.ErrEmptyInput.
//   - Engine faults (missing library, missing language data, unreadable
//     raster) are reported as ErrRecognitionUnavailable. They are never
//     turned into an empty string.
//   - Recognizing nothing is a successful Result whose Empty method reports
//     true.
//
// # Page Segmentation
//
// The default page segmentation mode is PSMSingleBlock: the region is assumed
// to hold a single uniform block of text. Users select tight regions around
// text, so automatic layout analysis only costs time and accuracy.
//
// # Timeouts
//
// Recognition can be slow. Recognize honours the context deadline: when the
// context ends first, it returns the context error wrapped in
// ErrRecognitionUnavailable. The engine call itself keeps running in the
// background until it completes.
//
// The Tesseract implementation lives in the tesseract subpackage so that code
// depending only on the boundary does not need cgo.
package ocr
