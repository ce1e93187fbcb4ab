package detect

import (
	"fmt"
	"math"
)

// Card geometry priors. A physical card is taller than it is wide; a
// plausible detection has a height:width ratio inside the acceptance band,
// and detections outside it are rebuilt around their own center using the
// canonical ratio. Width is kept as ground truth during the rebuild because
// horizontal background bleed is rarer than vertical.
const (
	// CanonicalRatio is the expected height:width ratio of a card.
	CanonicalRatio = 1.4

	// RatioBandLow and RatioBandHigh delimit the acceptance band for a
	// detected box's aspect ratio before correction kicks in.
	RatioBandLow  = 1.1
	RatioBandHigh = 1.8
)

// Box is a rectangular crop region in pixel coordinates.
//
// Left and Top are inclusive, Right and Bottom exclusive. A valid box
// satisfies 0 <= Left < Right and 0 <= Top < Bottom within the bounds of
// the coordinate space it was produced in.
type Box struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
}

// Width returns the horizontal extent in pixels.
func (b Box) Width() int { return b.Right - b.Left }

// Height returns the vertical extent in pixels.
func (b Box) Height() int { return b.Bottom - b.Top }

// AspectRatio returns height divided by width, or 0 for a zero-width box.
func (b Box) AspectRatio() float64 {
	if b.Width() <= 0 {
		return 0
	}
	return float64(b.Height()) / float64(b.Width())
}

// String formats the box as "(left,top)-(right,bottom)".
func (b Box) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", b.Left, b.Top, b.Right, b.Bottom)
}

// clampTo constrains the box to [0,width] x [0,height].
func (b Box) clampTo(width, height int) Box {
	if b.Left < 0 {
		b.Left = 0
	}
	if b.Top < 0 {
		b.Top = 0
	}
	if b.Right > width {
		b.Right = width
	}
	if b.Bottom > height {
		b.Bottom = height
	}
	return b
}

// correctAspect validates the box against the acceptance band and, if the
// ratio falls outside it, rebuilds the box around its own center: the
// detected width is kept and the height is set to width · CanonicalRatio.
//
// The rebuilt box is clamped to [0,width] x [0,height] once. Clamping near
// an image edge can itself push the ratio back outside the band; that
// residual violation is accepted rather than re-corrected, so the
// operation always terminates in one pass.
//
// The second return value reports whether a correction was applied.
func correctAspect(b Box, width, height int) (Box, bool) {
	ratio := b.AspectRatio()
	if ratio >= RatioBandLow && ratio <= RatioBandHigh {
		return b, false
	}

	centerX := (b.Left + b.Right) / 2
	centerY := (b.Top + b.Bottom) / 2

	w := b.Width()
	h := int(float64(w) * CanonicalRatio)

	corrected := Box{
		Left: centerX - w/2,
		Top:  centerY - h/2,
	}
	corrected.Right = corrected.Left + w
	corrected.Bottom = corrected.Top + h

	return corrected.clampTo(width, height), true
}

// applyMargin expands the box symmetrically by a percentage of its own
// detected extent per axis, clamped to [0,width] x [0,height]. A margin of
// zero returns the box unchanged; increasing the margin never shrinks the
// box.
func applyMargin(b Box, marginPercent float64, width, height int) Box {
	marginW := int(float64(b.Width()) * marginPercent / 100)
	marginH := int(float64(b.Height()) * marginPercent / 100)

	expanded := Box{
		Left:   b.Left - marginW,
		Top:    b.Top - marginH,
		Right:  b.Right + marginW,
		Bottom: b.Bottom + marginH,
	}
	return expanded.clampTo(width, height)
}

// rescale maps a working-resolution box back to original-image coordinates
// by dividing every coordinate by the working scale factor. The mapping is
// uniform but rounding can push a coordinate one pixel past the original
// bounds, so the result is clamped to [0,width] x [0,height].
func rescale(b Box, scale float64, width, height int) Box {
	if scale == 1.0 {
		return b.clampTo(width, height)
	}

	scaled := Box{
		Left:   int(float64(b.Left) / scale),
		Top:    int(float64(b.Top) / scale),
		Right:  int(float64(b.Right) / scale),
		Bottom: int(float64(b.Bottom) / scale),
	}
	return scaled.clampTo(width, height)
}

// fallbackBox returns the deterministic center crop used when no boundary
// can be estimated. The inset is a fraction of each original-image
// dimension, applied from every side. The result is always a valid,
// non-degenerate box for any width, height > 0: if the inset would leave
// nothing (tiny images), the full image is returned instead.
func fallbackBox(width, height int, inset float64) Box {
	insetW := int(float64(width) * inset)
	insetH := int(float64(height) * inset)

	b := Box{
		Left:   insetW,
		Top:    insetH,
		Right:  width - insetW,
		Bottom: height - insetH,
	}
	if b.Right <= b.Left || b.Bottom <= b.Top {
		return Box{Left: 0, Top: 0, Right: width, Bottom: height}
	}
	return b
}

// ratioError returns how far a ratio sits from the canonical card ratio.
func ratioError(ratio float64) float64 {
	return math.Abs(ratio - CanonicalRatio)
}
