package detect

import (
	"image"
	"math"
	"sort"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/effect"
)

// Mask is a boolean grid, at working resolution, where true marks a pixel
// classified as belonging to the card.
type Mask struct {
	Width  int
	Height int
	Pix    [][]bool // Pix[y][x]
}

func newMask(width, height int) *Mask {
	pix := make([][]bool, height)
	for y := range pix {
		pix[y] = make([]bool, width)
	}
	return &Mask{Width: width, Height: height, Pix: pix}
}

// Tuning holds the per-strategy parameters consumed outside mask
// construction: the projection density floor and the fallback inset.
type Tuning struct {
	// DensityFloor is the minimum fraction of the orthogonal dimension a
	// row or column projection must exceed to qualify as part of the card.
	// Stricter floors suit clean edge maps; looser floors suit noisy
	// brightness masks.
	DensityFloor float64

	// FallbackInset is the per-side center-crop fraction applied to the
	// original image when nothing qualifies.
	FallbackInset float64
}

// Strategy is one interchangeable way of classifying working-resolution
// pixels as card pixels.
type Strategy interface {
	// Name identifies the strategy in results and diagnostics.
	Name() string

	// Prepare derives the grayscale working representation the mask is
	// computed on, plus the scale factor back to the original image.
	Prepare(img image.Image) (*image.Gray, float64)

	// BuildMask marks working pixels believed to belong to the card. A
	// degenerate input (uniform brightness, zero edge energy) yields an
	// empty mask, not an error.
	BuildMask(gray *image.Gray) *Mask

	// Tuning returns the projection and fallback parameters.
	Tuning() Tuning
}

// Brightness strategy defaults. The card is assumed significantly darker
// than the background, so a global threshold of mean − k·stddev separates
// it from light marble.
const (
	brightnessStdDevMultiplier = 0.8
	brightnessDensityFloor     = 0.15
	brightnessMaxWorkingDim    = 800
	brightnessFallbackInset    = 0.15
)

// Edge strategy defaults. Thresholding a high percentile of edge
// magnitudes finds the card's contour even when brightness contrast with
// the background is weak, so this variant handles dark wood as well as
// light marble.
const (
	edgePercentile     = 85
	edgeContrastBoost  = 1.0
	edgeDilationRadius = 1.0
	edgeDensityFloor   = 0.08
	edgeMaxWorkingDim  = 1200
	edgeFallbackInset  = 0.18
)

// BrightnessStrategy marks pixels darker than mean − StdDevMultiplier·stddev
// of the working grayscale. Suited to dark cards on light backgrounds.
type BrightnessStrategy struct {
	// StdDevMultiplier is k in threshold = mean − k·stddev.
	StdDevMultiplier float64

	// MaxWorkingDim bounds the longest side of the working image.
	MaxWorkingDim int
}

// NewBrightnessStrategy returns a brightness strategy with default tuning.
func NewBrightnessStrategy() *BrightnessStrategy {
	return &BrightnessStrategy{
		StdDevMultiplier: brightnessStdDevMultiplier,
		MaxWorkingDim:    brightnessMaxWorkingDim,
	}
}

func (s *BrightnessStrategy) Name() string { return "brightness" }

func (s *BrightnessStrategy) Tuning() Tuning {
	return Tuning{
		DensityFloor:  brightnessDensityFloor,
		FallbackInset: brightnessFallbackInset,
	}
}

// Prepare downsamples and converts to plain luminance.
func (s *BrightnessStrategy) Prepare(img image.Image) (*image.Gray, float64) {
	work, scale := workingImage(img, s.MaxWorkingDim)
	return flattenGray(effect.Grayscale(work)), scale
}

// BuildMask thresholds the working grayscale at mean − k·stddev.
//
// The threshold is exclusive: a pixel qualifies only when strictly darker
// than it, compared directly against the 8-bit sample so the boundary
// does not depend on rounding. On a uniform image the threshold
// degenerates to the single brightness value and the mask comes out
// empty, which downstream code resolves with the fallback crop.
func (s *BrightnessStrategy) BuildMask(gray *image.Gray) *Mask {
	width := gray.Rect.Dx()
	height := gray.Rect.Dy()
	mask := newMask(width, height)

	mean, stddev := grayStats(gray)
	threshold := mean - stddev*s.StdDevMultiplier

	for y := 0; y < height; y++ {
		row := gray.Pix[y*gray.Stride : y*gray.Stride+width]
		for x := 0; x < width; x++ {
			if float64(row[x]) < threshold {
				mask.Pix[y][x] = true
			}
		}
	}
	return mask
}

// EdgeStrategy marks pixels whose edge magnitude exceeds a high percentile
// of all strictly positive magnitudes. Suited to low-contrast scenes where
// only the card's contour stands out.
type EdgeStrategy struct {
	// Percentile of positive edge magnitudes used as the threshold (0-100).
	Percentile float64

	// ContrastBoost is applied before edge extraction to make faint card
	// borders visible against dark wood.
	ContrastBoost float64

	// DilationRadius thickens thin one-pixel contours before thresholding.
	DilationRadius float64

	// MaxWorkingDim bounds the longest side of the working image.
	MaxWorkingDim int
}

// NewEdgeStrategy returns an edge strategy with default tuning.
func NewEdgeStrategy() *EdgeStrategy {
	return &EdgeStrategy{
		Percentile:     edgePercentile,
		ContrastBoost:  edgeContrastBoost,
		DilationRadius: edgeDilationRadius,
		MaxWorkingDim:  edgeMaxWorkingDim,
	}
}

func (s *EdgeStrategy) Name() string { return "edge" }

func (s *EdgeStrategy) Tuning() Tuning {
	return Tuning{
		DensityFloor:  edgeDensityFloor,
		FallbackInset: edgeFallbackInset,
	}
}

// Prepare downsamples, boosts contrast, extracts edge magnitudes with a
// high-pass filter, and dilates them so one-pixel contours survive the
// percentile threshold.
func (s *EdgeStrategy) Prepare(img image.Image) (*image.Gray, float64) {
	work, scale := workingImage(img, s.MaxWorkingDim)

	gray := effect.Grayscale(work)
	boosted := adjust.Contrast(gray, s.ContrastBoost)
	edges := effect.EdgeDetection(boosted, 1.0)
	thick := effect.Dilate(edges, s.DilationRadius)
	return flattenGray(effect.Grayscale(thick)), scale
}

// BuildMask thresholds edge magnitudes at their Percentile-th percentile.
//
// Only strictly positive magnitudes enter the percentile computation: a
// flat background contributes an ocean of zeros that would otherwise bias
// the threshold toward zero and mark everything as edge. An image with no
// positive magnitude at all yields an empty mask.
func (s *EdgeStrategy) BuildMask(gray *image.Gray) *Mask {
	width := gray.Rect.Dx()
	height := gray.Rect.Dy()
	mask := newMask(width, height)

	positive := make([]float64, 0, width*height/4)
	for y := 0; y < height; y++ {
		row := gray.Pix[y*gray.Stride : y*gray.Stride+width]
		for x := 0; x < width; x++ {
			if row[x] > 0 {
				positive = append(positive, float64(row[x]))
			}
		}
	}
	if len(positive) == 0 {
		return mask
	}

	threshold := percentile(positive, s.Percentile)
	for y := 0; y < height; y++ {
		row := gray.Pix[y*gray.Stride : y*gray.Stride+width]
		for x := 0; x < width; x++ {
			if float64(row[x]) > threshold {
				mask.Pix[y][x] = true
			}
		}
	}
	return mask
}

// grayStats computes the mean and standard deviation of all samples in a
// grayscale image.
func grayStats(gray *image.Gray) (mean, stddev float64) {
	width := gray.Rect.Dx()
	height := gray.Rect.Dy()
	n := float64(width * height)
	if n == 0 {
		return 0, 0
	}

	var sum float64
	for y := 0; y < height; y++ {
		row := gray.Pix[y*gray.Stride : y*gray.Stride+width]
		for x := 0; x < width; x++ {
			sum += float64(row[x])
		}
	}
	mean = sum / n

	var sqDiff float64
	for y := 0; y < height; y++ {
		row := gray.Pix[y*gray.Stride : y*gray.Stride+width]
		for x := 0; x < width; x++ {
			d := float64(row[x]) - mean
			sqDiff += d * d
		}
	}
	return mean, math.Sqrt(sqDiff / n)
}

// percentile returns the p-th percentile (0-100) of values using linear
// interpolation between closest ranks. values is sorted in place.
func percentile(values []float64, p float64) float64 {
	sort.Float64s(values)
	if len(values) == 1 {
		return values[0]
	}

	rank := p / 100 * float64(len(values)-1)
	lower := int(rank)
	if lower >= len(values)-1 {
		return values[len(values)-1]
	}
	frac := rank - float64(lower)
	return values[lower] + frac*(values[lower+1]-values[lower])
}
