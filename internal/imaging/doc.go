// Package imaging provides the raster plumbing around the ROI pipeline:
// decoding source images, rendering the scaled display copy, cropping the
// selected region, drawing the selection outline and encoding results.
//
// All operations work with standard Go image.Image types and use a coordinate
// system where (0,0) is at the top-left corner, X increases rightward, and Y
// increases downward.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, (x1,y1) is inclusive (top-left), (x2,y2) is exclusive (bottom-right)
//
// Source coordinates address the decoded full-resolution image. Display
// coordinates address the copy returned by Display, which is never wider than
// the configured maximum display width.
//
// # Immutability
//
// No function in this package modifies its input image. Crops, display copies
// and overlays are always freshly allocated.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. All other functions are
// stateless.
//
// # Supported Formats
//
// PNG, JPEG, GIF and BMP. JPEG camera captures are rotated according to their
// EXIF orientation tag before use.
package imaging
