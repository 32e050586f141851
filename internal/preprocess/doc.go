// Package preprocess conditions a cropped region for text recognition.
//
// The pipeline is fixed and runs in three steps:
//
//  1. Grayscale: luminance with ITU-R BT.601 weights (0.299*R + 0.587*G + 0.114*B).
//  2. Noise suppression: 5x5 Gaussian blur, mirrored borders (dcb|abcd|cba).
//  3. Binarization: global threshold chosen per image with Otsu's method.
//
// With cgo on Linux the steps run on OpenCV through gocv. Other builds use
// a pure-Go implementation with the same fixed-point arithmetic and border
// rule, so both produce the same pixels. Backend reports which one is linked.
//
// The output is a single-channel image whose pixels are 0 or 255. The same
// function produces both the recognizer input and the debug preview, so the
// two can never diverge.
package preprocess
