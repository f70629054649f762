/*
DESCRIPTION
  median.go implements the running-median temporal filter: output[i] is
  the median of the left-aligned window [i-w+1, i].

AUTHORS
  tlc-core contributors

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package peak

import "sort"

// runningMedian computes the left-aligned running median of col with
// window size w, reusing dst's backing array when it is large enough. No
// third-party rolling-median structure exists in the retrieved pack (see
// DESIGN.md); window sizes here are bounded by nframes/10, so a
// re-sorted window each step is fast enough without a specialized
// order-statistics structure.
func runningMedian(col []byte, w int, dst []float64) []float64 {
	n := len(col)
	if cap(dst) < n {
		dst = make([]float64, n)
	}
	dst = dst[:n]

	window := make([]byte, 0, w)
	for i := 0; i < n; i++ {
		if len(window) == w {
			window = window[1:]
		}
		window = append(window, col[i])
		dst[i] = medianOf(window)
	}
	return dst
}

// medianOf returns the median of a small byte slice without mutating it.
func medianOf(window []byte) float64 {
	sorted := make([]byte, len(window))
	copy(sorted, window)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	n := len(sorted)
	if n%2 == 1 {
		return float64(sorted[n/2])
	}
	return (float64(sorted[n/2-1]) + float64(sorted[n/2])) / 2
}
