// Package detect locates the rectangular boundary of a physical card
// photographed against a marble or wooden background.
//
// Detection is purely statistical over pixel intensity: the image is
// reduced to a bounded working resolution, a boolean mask of likely card
// pixels is built by one of two interchangeable strategies, and the card's
// extent is read off the mask's row and column projections. There is no
// machine-learning model and no perspective correction.
//
// # Strategies
//
// Two mask strategies cover the two background families seen in practice:
//
//   - Brightness: the card is assumed darker than the background (light
//     marble). Pixels darker than mean − k·stddev are marked as card.
//   - Edge: a rectangular card produces a strong closed contour even when
//     brightness contrast is weak (dark card on dark wood). Pixels whose
//     edge magnitude exceeds a high percentile are marked as card.
//
// # Pipeline
//
// DetectCard runs: preprocess → build mask → project → estimate bounds →
// aspect-ratio correction → margin → rescale to original coordinates.
// When no row or column of the mask qualifies (uniform image, degenerate
// threshold), a deterministic center crop is returned instead; this is an
// expected outcome, surfaced as Result.Fallback, never as an error.
//
// # Coordinate System
//
// Boxes use the standard image convention: origin at top-left, inclusive
// Left/Top, exclusive Right/Bottom. A returned box always satisfies
// 0 <= Left < Right <= width and 0 <= Top < Bottom <= height of the
// coordinate space it belongs to. Boxes from working and original
// coordinate spaces must not be mixed; DetectCard only ever returns boxes
// in original-image coordinates.
//
// # Purity
//
// Each detection call is a pure function of the input image and its
// options. The input image is never mutated and no state is shared across
// calls, so batches of images may be processed concurrently by the caller.
package detect
