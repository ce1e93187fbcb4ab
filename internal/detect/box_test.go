package detect

import (
	"math"
	"testing"
)

func TestBox_Dimensions(t *testing.T) {
	b := Box{Left: 10, Top: 20, Right: 110, Bottom: 160}

	if b.Width() != 100 {
		t.Errorf("Width: got %d, want 100", b.Width())
	}
	if b.Height() != 140 {
		t.Errorf("Height: got %d, want 140", b.Height())
	}
	if b.AspectRatio() != 1.4 {
		t.Errorf("AspectRatio: got %v, want 1.4", b.AspectRatio())
	}
}

func TestBox_AspectRatioZeroWidth(t *testing.T) {
	b := Box{Left: 10, Top: 0, Right: 10, Bottom: 100}
	if b.AspectRatio() != 0 {
		t.Errorf("AspectRatio of zero-width box: got %v, want 0", b.AspectRatio())
	}
}

func TestCorrectAspect_InsideBandUnchanged(t *testing.T) {
	tests := []struct {
		name string
		box  Box
	}{
		{"canonical", Box{Left: 100, Top: 100, Right: 300, Bottom: 380}},
		{"low edge of band", Box{Left: 0, Top: 0, Right: 100, Bottom: 110}},
		{"high edge of band", Box{Left: 0, Top: 0, Right: 100, Bottom: 180}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, corrected := correctAspect(tt.box, 1000, 1000)
			if corrected {
				t.Error("box inside band should not be corrected")
			}
			if got != tt.box {
				t.Errorf("box changed: got %v, want %v", got, tt.box)
			}
		})
	}
}

func TestCorrectAspect_WideBoxRecentered(t *testing.T) {
	// 400x300 box (ratio 0.75): keep the width, rebuild height at the
	// canonical ratio around the same center.
	b := Box{Left: 100, Top: 200, Right: 500, Bottom: 500}

	got, corrected := correctAspect(b, 2000, 2000)
	if !corrected {
		t.Fatal("expected correction for ratio 0.75")
	}

	if got.Width() != 400 {
		t.Errorf("width: got %d, want 400 (width is ground truth)", got.Width())
	}
	if got.Height() != 560 {
		t.Errorf("height: got %d, want 560 (400 * 1.4)", got.Height())
	}

	wantCenterX := (b.Left + b.Right) / 2
	wantCenterY := (b.Top + b.Bottom) / 2
	gotCenterX := (got.Left + got.Right) / 2
	gotCenterY := (got.Top + got.Bottom) / 2
	if gotCenterX != wantCenterX || gotCenterY != wantCenterY {
		t.Errorf("center moved: got (%d,%d), want (%d,%d)",
			gotCenterX, gotCenterY, wantCenterX, wantCenterY)
	}
}

func TestCorrectAspect_Convergence(t *testing.T) {
	// When the corrected box is not clamped by the image bounds, its ratio
	// must land on the canonical ratio.
	boxes := []Box{
		{Left: 400, Top: 400, Right: 700, Bottom: 500}, // too wide
		{Left: 400, Top: 100, Right: 500, Bottom: 900}, // too tall
		{Left: 300, Top: 450, Right: 700, Bottom: 560}, // barely a sliver
	}

	for _, b := range boxes {
		got, corrected := correctAspect(b, 2000, 2000)
		if !corrected {
			t.Errorf("box %v with ratio %v should be corrected", b, b.AspectRatio())
			continue
		}
		if err := math.Abs(got.AspectRatio() - CanonicalRatio); err > 0.01 {
			t.Errorf("box %v: corrected ratio %v not within 0.01 of %v",
				b, got.AspectRatio(), CanonicalRatio)
		}
	}
}

func TestCorrectAspect_ClampedNearEdge(t *testing.T) {
	// A wide box near the top of the image: the rebuilt height cannot fit
	// above, so clamping trims it. The residual ratio violation is
	// accepted; the box must simply stay valid and in bounds.
	b := Box{Left: 100, Top: 0, Right: 500, Bottom: 100}

	got, corrected := correctAspect(b, 600, 300)
	if !corrected {
		t.Fatal("expected correction")
	}
	assertValidBox(t, got, 600, 300)
}

func TestApplyMargin_ZeroIsIdentity(t *testing.T) {
	b := Box{Left: 100, Top: 150, Right: 400, Bottom: 570}
	if got := applyMargin(b, 0, 800, 800); got != b {
		t.Errorf("zero margin: got %v, want %v", got, b)
	}
}

func TestApplyMargin_Monotonic(t *testing.T) {
	b := Box{Left: 200, Top: 200, Right: 400, Bottom: 480}

	prev := b
	for _, margin := range []float64{1, 2, 3, 5, 10, 25, 50, 100} {
		got := applyMargin(b, margin, 800, 800)
		if got.Width() < prev.Width() || got.Height() < prev.Height() {
			t.Errorf("margin %v shrank box: %v -> %v", margin, prev, got)
		}
		assertValidBox(t, got, 800, 800)
		prev = got
	}
}

func TestApplyMargin_ClampsAtBounds(t *testing.T) {
	b := Box{Left: 10, Top: 10, Right: 790, Bottom: 790}

	got := applyMargin(b, 50, 800, 800)
	want := Box{Left: 0, Top: 0, Right: 800, Bottom: 800}
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestRescale_UnitScaleIsIdentity(t *testing.T) {
	b := Box{Left: 5, Top: 10, Right: 100, Bottom: 150}
	if got := rescale(b, 1.0, 200, 200); got != b {
		t.Errorf("unit scale: got %v, want %v", got, b)
	}
}

func TestRescale_MapsToOriginalSpace(t *testing.T) {
	// Working image at half resolution: coordinates double on the way back.
	b := Box{Left: 100, Top: 140, Right: 400, Bottom: 560}

	got := rescale(b, 0.5, 1000, 1400)
	want := Box{Left: 200, Top: 280, Right: 800, Bottom: 1120}
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestRescale_ClampsRoundingSpill(t *testing.T) {
	// Rounding can push a coordinate one pixel past the original bounds.
	b := Box{Left: 0, Top: 0, Right: 667, Bottom: 667}

	got := rescale(b, 0.6666, 1000, 1000)
	assertValidBox(t, got, 1000, 1000)
}

func TestFallbackBox_CenterCrop(t *testing.T) {
	got := fallbackBox(1000, 1000, 0.15)
	want := Box{Left: 150, Top: 150, Right: 850, Bottom: 850}
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestFallbackBox_AlwaysValid(t *testing.T) {
	sizes := []struct{ w, h int }{
		{1, 1}, {1, 2}, {2, 1}, {3, 3}, {5, 7}, {10, 10}, {500, 500}, {4000, 3000},
	}

	for _, size := range sizes {
		for _, inset := range []float64{0.15, 0.18, 0.2} {
			got := fallbackBox(size.w, size.h, inset)
			if got.Width() <= 0 || got.Height() <= 0 {
				t.Errorf("fallback for %dx%d inset %v degenerate: %v", size.w, size.h, inset, got)
			}
			assertValidBox(t, got, size.w, size.h)
		}
	}
}

// assertValidBox checks the box invariant that every strategy must uphold:
// 0 <= Left < Right <= width and 0 <= Top < Bottom <= height.
func assertValidBox(t *testing.T, b Box, width, height int) {
	t.Helper()
	if b.Left < 0 || b.Left >= b.Right || b.Right > width {
		t.Errorf("invalid horizontal extent %v for width %d", b, width)
	}
	if b.Top < 0 || b.Top >= b.Bottom || b.Bottom > height {
		t.Errorf("invalid vertical extent %v for height %d", b, height)
	}
}
