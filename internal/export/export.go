// Package export writes recognized text to timestamped plain-text files.
//
// File names follow the pattern text_<YYYYMMDD>-<HHMMSS>.txt in local time,
// e.g. text_20240131-154502.txt. The file holds the recognized text verbatim.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ErrNothingToSave is returned when there is no text to write.
var ErrNothingToSave = errors.New("no extracted text to save")

// MimeType is the content type of exported files.
const MimeType = "text/plain"

const timestampLayout = "20060102-150405"

// FileName returns the export file name for t.
func FileName(t time.Time) string {
	return "text_" + t.Format(timestampLayout) + ".txt"
}

// Save writes text to dir/FileName(now) and returns the path written.
//
// dir is created if needed. An existing file with the same name is
// overwritten.
func Save(dir, text string, now time.Time) (string, error) {
	if text == "" {
		return "", ErrNothingToSave
	}
	if dir == "" {
		dir = "."
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(dir, FileName(now))
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
