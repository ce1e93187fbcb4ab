package detect

import (
	"image"

	"github.com/disintegration/imaging"
)

// workingImage downsamples the source so its longest side does not exceed
// maxDim, returning the working copy and the scale factor relating it back
// to the original (working dimension ÷ original dimension, <= 1.0).
//
// Images already within the limit are cloned unscaled with a factor of
// 1.0. Resizing uses Lanczos resampling so thin card borders survive the
// downsample instead of aliasing away.
//
// The source image is never mutated.
func workingImage(img image.Image, maxDim int) (image.Image, float64) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	longest := width
	if height > longest {
		longest = height
	}
	if longest <= maxDim {
		return imaging.Clone(img), 1.0
	}

	scale := float64(maxDim) / float64(longest)
	// The longest side is pinned to maxDim exactly; deriving it from the
	// scale factor can round to maxDim-1.
	workW := maxDim
	workH := int(float64(height) * scale)
	if height > width {
		workW = int(float64(width) * scale)
		workH = maxDim
	}
	return imaging.Resize(img, workW, workH, imaging.Lanczos), scale
}

// flattenGray converts an RGBA image whose channels have already been
// equalized by a grayscale pass into an 8-bit single-channel image, taking
// the red channel as the luminance.
func flattenGray(img *image.RGBA) *image.Gray {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	gray := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		src := img.Pix[y*img.Stride : y*img.Stride+width*4]
		dst := gray.Pix[y*gray.Stride : y*gray.Stride+width]
		for x := 0; x < width; x++ {
			dst[x] = src[x*4]
		}
	}
	return gray
}
