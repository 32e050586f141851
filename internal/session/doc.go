// Package session holds the state of one interactive ROI-OCR session.
//
// State is a value. Every user action is a method that takes the current
// state and returns the next one, leaving the receiver untouched:
//
//	s := session.New(settings)
//	s = s.Load(src)
//	s, err = s.Draw(annotations)
//	s, err = s.Confirm()
//	s, err = s.Recognize(ctx, engine)
//
// A failed action returns the unchanged state alongside the error, so the
// user can correct the input and retry. Nothing is shared between sessions
// and no locking is needed; callers run one action at a time.
//
// # Lifecycle
//
//   - Load replaces the source image and discards annotations, crop and
//     text, unless the same image is loaded again.
//   - Draw replaces the annotation set.
//   - Confirm resolves the last rectangle to source coordinates and crops.
//   - Recognize preprocesses the crop and runs the recognition engine.
//   - ClearDrawing drops everything except the image; ClearResults drops
//     only the text.
package session
