package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"math"
	"os"
	"path/filepath"
	"sync"
)

// ImageCache provides thread-safe caching of decoded photos keyed by file
// path, so a crop command that first inspects an image and then crops it
// decodes from disk only once.
//
// Cached images remain in memory until removed via Evict or Clear; batch
// runs over many large photos should evict each path once processed.
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewImageCache creates an empty cache, ready for concurrent use.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]image.Image),
	}
}

// Load retrieves an image from the cache or decodes it from disk if not
// cached. Supported formats are PNG, JPEG, and GIF. Images are cached
// under the exact path string given; relative and absolute paths to the
// same file are separate entries.
func (c *ImageCache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// Clear removes all images from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]image.Image)
	c.mu.Unlock()
}

// Evict removes a single image by the exact path it was loaded under.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// ImageInfo contains metadata about a loaded photo, including the
// height:width aspect ratio a card crop is judged by.
type ImageInfo struct {
	// Width and Height are the pixel dimensions.
	Width  int `json:"width"`
	Height int `json:"height"`

	// AspectRatio is height divided by width, rounded to two decimals. A
	// well-cropped card lands around 1.4.
	AspectRatio float64 `json:"aspect_ratio"`

	// Format is "png", "jpeg", "gif", or "unknown", from the extension.
	Format string `json:"format"`

	// FileSizeBytes is the size of the file on disk.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads a photo (through the cache) and returns its
// dimensions, aspect ratio, format, and on-disk size.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	format := "unknown"
	switch filepath.Ext(path) {
	case ".png":
		format = "png"
	case ".jpg", ".jpeg":
		format = "jpeg"
	case ".gif":
		format = "gif"
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	ratio := 0.0
	if width > 0 {
		ratio = math.Round(float64(height)/float64(width)*100) / 100
	}

	return &ImageInfo{
		Width:         width,
		Height:        height,
		AspectRatio:   ratio,
		Format:        format,
		FileSizeBytes: stat.Size(),
	}, nil
}
