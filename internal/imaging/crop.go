package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"cardcrop/internal/detect"
)

// saveJPEGQuality matches the quality the card photos have always been
// written with.
const saveJPEGQuality = 95

// CropToBox extracts a detected crop region from the original photo.
//
// The box must lie inside the image and be non-degenerate; boxes produced
// by the detection engine satisfy this by construction, so an error here
// indicates a box from the wrong coordinate space.
func CropToBox(img image.Image, box detect.Box) (image.Image, error) {
	bounds := img.Bounds()
	if box.Left < 0 || box.Top < 0 || box.Right > bounds.Dx() || box.Bottom > bounds.Dy() {
		return nil, fmt.Errorf("crop box %v outside image bounds %dx%d",
			box, bounds.Dx(), bounds.Dy())
	}
	if box.Left >= box.Right || box.Top >= box.Bottom {
		return nil, fmt.Errorf("degenerate crop box %v", box)
	}

	rect := image.Rect(
		bounds.Min.X+box.Left,
		bounds.Min.Y+box.Top,
		bounds.Min.X+box.Right,
		bounds.Min.Y+box.Bottom,
	)
	return imaging.Crop(img, rect), nil
}

// CropPercent crops a fixed percentage from each side of the image. Each
// value is a percentage of the corresponding dimension, so top=15 removes
// the top 15% of the image's height. Percentages that would leave nothing
// return an error.
func CropPercent(img image.Image, top, bottom, left, right int) (image.Image, error) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	box := detect.Box{
		Left:   width * left / 100,
		Top:    height * top / 100,
		Right:  width * (100 - right) / 100,
		Bottom: height * (100 - bottom) / 100,
	}
	if box.Left >= box.Right || box.Top >= box.Bottom {
		return nil, fmt.Errorf("crop percentages too large, nothing would remain: "+
			"left=%dpx right=%dpx top=%dpx bottom=%dpx", box.Left, box.Right, box.Top, box.Bottom)
	}
	return CropToBox(img, box)
}

// CropPixels crops an exact number of pixels from each side of the image.
// Values that would leave nothing return an error.
func CropPixels(img image.Image, top, bottom, left, right int) (image.Image, error) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	box := detect.Box{
		Left:   left,
		Top:    top,
		Right:  width - right,
		Bottom: height - bottom,
	}
	if box.Left < 0 || box.Top < 0 || box.Left >= box.Right || box.Bottom > height ||
		box.Top >= box.Bottom || box.Right > width {
		return nil, fmt.Errorf("crop values too large for %dx%d image", width, height)
	}
	return CropToBox(img, box)
}

// SaveImage writes the image to path, choosing the encoder from the file
// extension. JPEG output uses quality 95.
func SaveImage(img image.Image, path string) error {
	if err := imaging.Save(img, path, imaging.JPEGQuality(saveJPEGQuality)); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}
