package imaging

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp" // Register BMP format decoder
)

// Source is a decoded full-resolution image together with what the rest of
// the pipeline needs to know about it.
type Source struct {
	// Image is the decoded raster with EXIF orientation applied.
	Image image.Image

	// ID identifies the file contents as loaded. Reloading an unchanged file
	// yields the same ID.
	ID string

	// Path is the file the image was read from, empty for in-memory sources.
	Path string

	// Format is the decoder name: "png", "jpeg", "gif" or "bmp".
	Format string

	// Width and Height are the oriented pixel dimensions.
	Width  int
	Height int
}

// NewSource wraps an in-memory image as a Source.
func NewSource(img image.Image, id string) *Source {
	b := img.Bounds()
	return &Source{
		Image:  img,
		ID:     id,
		Format: "memory",
		Width:  b.Dx(),
		Height: b.Dy(),
	}
}

// Decode reads an encoded image and applies its EXIF orientation.
//
// The returned format name comes from the registered decoder that matched
// the data, not from any file extension.
func Decode(data []byte) (image.Image, string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}
	return img, format, nil
}

// DecodeSource decodes an in-memory encoded image, such as a camera
// capture. Its ID is derived from the bytes, so decoding the same data twice
// yields the same ID.
func DecodeSource(data []byte) (*Source, error) {
	img, format, err := Decode(data)
	if err != nil {
		return nil, err
	}
	sum := sha256.Sum256(data)

	src := NewSource(img, "bytes:"+hex.EncodeToString(sum[:8]))
	src.Format = format
	return src, nil
}

// ImageCache provides thread-safe caching of decoded source images keyed by
// path.
//
// An entry is reused only while the file's size and modification time are
// unchanged, so replacing a file on disk is picked up by the next Load.
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]*Source
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]*Source),
	}
}

// Load returns the decoded image at path, reading it from disk only when it
// is not cached or the file changed since it was cached.
func (c *ImageCache) Load(path string) (*Source, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	id := fileID(path, stat.Size(), stat.ModTime())

	c.mu.RLock()
	if src, ok := c.images[path]; ok && src.ID == id {
		c.mu.RUnlock()
		return src, nil
	}
	c.mu.RUnlock()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}

	img, format, err := Decode(data)
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	src := &Source{
		Image:  img,
		ID:     id,
		Path:   path,
		Format: format,
		Width:  b.Dx(),
		Height: b.Dy(),
	}

	c.mu.Lock()
	c.images[path] = src
	c.mu.Unlock()

	return src, nil
}

// Clear removes all images from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]*Source)
	c.mu.Unlock()
}

// Evict removes a specific image from the cache by its path.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

func fileID(path string, size int64, mod time.Time) string {
	return fmt.Sprintf("%s:%d:%d", path, size, mod.UnixNano())
}
