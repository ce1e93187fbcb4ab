package detect

// projections reduces a mask to its per-row and per-column counts of card
// pixels. rowCounts[i] is the number of true pixels in row i, colCounts[j]
// the number in column j.
func projections(m *Mask) (rowCounts, colCounts []int) {
	rowCounts = make([]int, m.Height)
	colCounts = make([]int, m.Width)

	for y := 0; y < m.Height; y++ {
		row := m.Pix[y]
		for x := 0; x < m.Width; x++ {
			if row[x] {
				rowCounts[y]++
				colCounts[x]++
			}
		}
	}
	return rowCounts, colCounts
}

// estimateBounds derives the initial bounding box from a mask's
// projections. A row qualifies when its count exceeds floor · width, a
// column when its count exceeds floor · height; stray dark speckles or
// faint edges below the floor never anchor the box. The box spans the
// first through last qualifying row and column.
//
// When no row or no column qualifies, ok is false. That is the expected
// outcome for uniform images or degenerate thresholds and is resolved by
// the caller's fallback crop, not treated as an error.
func estimateBounds(m *Mask, floor float64) (box Box, ok bool) {
	rowCounts, colCounts := projections(m)

	minRowPixels := floor * float64(m.Width)
	minColPixels := floor * float64(m.Height)

	firstRow, lastRow := -1, -1
	for y, count := range rowCounts {
		if float64(count) > minRowPixels {
			if firstRow < 0 {
				firstRow = y
			}
			lastRow = y
		}
	}

	firstCol, lastCol := -1, -1
	for x, count := range colCounts {
		if float64(count) > minColPixels {
			if firstCol < 0 {
				firstCol = x
			}
			lastCol = x
		}
	}

	if firstRow < 0 || firstCol < 0 {
		return Box{}, false
	}

	return Box{
		Left:   firstCol,
		Top:    firstRow,
		Right:  lastCol + 1,
		Bottom: lastRow + 1,
	}, true
}
