// Package geometry maps a rectangle drawn on a scaled display surface back to
// the pixel coordinates of the full-resolution source image.
//
// # Coordinate Systems
//
// Display coordinates are pixels of the reduced rendering shown to the user.
// Source coordinates are pixels of the original image. Both have (0,0) at the
// top-left corner, X increasing rightward and Y increasing downward. A single
// scaling factor (source width / display width) converts between them.
//
// # Regions
//
// A SourceRect follows the same convention as the imaging package: (X1,Y1) is
// inclusive and (X2,Y2) is exclusive, so Width = X2 - X1.
//
// # Errors
//
// ResolveROI never panics on bad input. It reports ErrNoAnnotation when no
// rectangle was drawn and ErrDegenerateROI when the rectangle is too small
// after clamping. Both wrap ErrNoROI.
package geometry
