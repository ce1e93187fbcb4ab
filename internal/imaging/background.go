package imaging

import (
	"image"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// BackgroundKind classifies the surface a card was photographed on.
type BackgroundKind string

const (
	// BackgroundLight covers light surfaces such as marble, where the
	// card is clearly darker than its surroundings and the brightness
	// strategy works well.
	BackgroundLight BackgroundKind = "light"

	// BackgroundDark covers dark surfaces such as wood, where brightness
	// contrast is weak and the edge strategy is the better pick.
	BackgroundDark BackgroundKind = "dark"
)

const (
	// borderBandFraction is the share of the shorter image dimension
	// sampled from each side. The card sits in the middle of the frame,
	// so the border band is assumed to be pure background.
	borderBandFraction = 0.08

	// darkLightnessCutoff splits the two background kinds on the border
	// band's average HSL lightness.
	darkLightnessCutoff = 0.45
)

// BackgroundInfo describes the photo's border band.
type BackgroundInfo struct {
	// Kind is the light/dark classification.
	Kind BackgroundKind `json:"kind"`

	// Lightness is the band's average HSL lightness, 0 (black) to 1.
	Lightness float64 `json:"lightness"`

	// Hex is the band's average color as "#rrggbb".
	Hex string `json:"hex"`
}

// ClassifyBackground samples a thin band around the image border and
// classifies it as a light or dark background. The result drives the
// automatic detection-strategy choice: brightness thresholding for light
// marble, edge thresholding for dark wood.
func ClassifyBackground(img image.Image) BackgroundInfo {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	band := int(float64(minInt(width, height)) * borderBandFraction)
	if band < 1 {
		band = 1
	}

	var sumR, sumG, sumB float64
	var n int
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x >= band && x < width-band && y >= band && y < height-band {
				continue
			}
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			sumR += float64(r >> 8)
			sumG += float64(g >> 8)
			sumB += float64(b >> 8)
			n++
		}
	}
	if n == 0 {
		return BackgroundInfo{Kind: BackgroundLight, Lightness: 1, Hex: "#ffffff"}
	}

	avg := colorful.Color{
		R: sumR / float64(n) / 255,
		G: sumG / float64(n) / 255,
		B: sumB / float64(n) / 255,
	}
	_, _, lightness := avg.Hsl()

	kind := BackgroundLight
	if lightness < darkLightnessCutoff {
		kind = BackgroundDark
	}

	return BackgroundInfo{
		Kind:      kind,
		Lightness: lightness,
		Hex:       avg.Hex(),
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
