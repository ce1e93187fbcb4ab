package detect

import (
	"image"
)

// DefaultMarginPercent is the proportional margin added around a detected
// card when the caller does not specify one.
const DefaultMarginPercent = 3

// Options controls a single detection call.
type Options struct {
	// Strategy selects the mask-building approach. Nil defaults to the
	// brightness strategy, which suits dark cards on light marble.
	Strategy Strategy

	// MarginPercent expands the detected box by this percentage of its own
	// extent on every side. Negative values are treated as zero; zero on
	// an explicit request means no margin, so callers wanting the default
	// should use DefaultMarginPercent.
	MarginPercent float64

	// Reporter receives progress and diagnostics. Nil discards them.
	Reporter Reporter
}

// Result is the outcome of a detection: a crop box in original-image
// coordinates plus how it was obtained.
type Result struct {
	// Box is the final crop region in the original image's coordinate
	// space, always valid by construction.
	Box Box `json:"box"`

	// Fallback is true when no boundary could be estimated and Box is the
	// deterministic center crop. Downstream cropping behaves identically
	// either way; the flag exists for reporting.
	Fallback bool `json:"fallback"`

	// Corrected is true when the detected box was outside the aspect-ratio
	// acceptance band and was rebuilt around its center.
	Corrected bool `json:"corrected"`

	// Strategy names the mask strategy that produced the box.
	Strategy string `json:"strategy"`
}

// DetectCard locates the card in img and returns a crop box in the
// original image's coordinate space.
//
// The call is a pure function of img and opts: the input image is never
// mutated and no state survives the call. It always succeeds for a
// non-empty image; when nothing qualifies as a card boundary the result
// carries the strategy's deterministic center crop with Fallback set.
//
// # Pipeline
//
//  1. Preprocess: downsample to the strategy's working resolution and
//     derive the grayscale (or edge-magnitude) working grid.
//  2. Mask: classify working pixels as card pixels.
//  3. Estimate: project the mask onto rows and columns and span the
//     qualifying extent. An empty qualifying set short-circuits to the
//     fallback center crop on the original dimensions.
//  4. Correct: rebuild boxes whose aspect ratio falls outside
//     [RatioBandLow, RatioBandHigh] around their center at CanonicalRatio.
//  5. Margin: expand by MarginPercent of the detected extent, clamped.
//  6. Rescale: map working coordinates back to the original image.
func DetectCard(img image.Image, opts Options) Result {
	strategy := opts.Strategy
	if strategy == nil {
		strategy = NewBrightnessStrategy()
	}
	reporter := opts.Reporter
	if reporter == nil {
		reporter = nopReporter{}
	}
	margin := opts.MarginPercent
	if margin < 0 {
		margin = 0
	}

	bounds := img.Bounds()
	origW := bounds.Dx()
	origH := bounds.Dy()

	reporter.Progress("preprocess")
	gray, scale := strategy.Prepare(img)
	workW := gray.Rect.Dx()
	workH := gray.Rect.Dy()

	reporter.Progress("mask")
	mask := strategy.BuildMask(gray)

	reporter.Progress("estimate")
	tuning := strategy.Tuning()
	box, ok := estimateBounds(mask, tuning.DensityFloor)
	if !ok {
		reporter.Warnf("could not detect card boundary, using %.0f%% center crop", tuning.FallbackInset*100)
		return Result{
			Box:      fallbackBox(origW, origH, tuning.FallbackInset),
			Fallback: true,
			Strategy: strategy.Name(),
		}
	}

	ratio := box.AspectRatio()
	box, corrected := correctAspect(box, workW, workH)
	if corrected {
		reporter.Warnf("unusual aspect ratio %.2f (off canonical by %.2f), recentered box", ratio, ratioError(ratio))
	}

	box = applyMargin(box, margin, workW, workH)
	box = rescale(box, scale, origW, origH)

	return Result{
		Box:       box,
		Corrected: corrected,
		Strategy:  strategy.Name(),
	}
}
