/*
DESCRIPTION
  wavelet.go implements the Daubechies-8 soft-threshold temporal filter:
  decompose to the maximum level L = floor(log2(n/(taps-1))),
  soft-threshold each level's detail coefficients scaled by that level's
  peak, and reconstruct. The trailing floor(n/2^L)*2^L..n tail is left
  unfiltered.

  No discrete-wavelet-transform library appears anywhere in the retrieved
  pack (gonum provides FFT, not DWT; see DESIGN.md), so the transform is
  hand-rolled here as a periodized (circular-boundary) orthogonal filter
  bank - standard for this filter length, simpler than a production
  library's edge-handling, and adequate for a soft-threshold denoiser
  whose output only needs to preserve the peak location.

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

import "math"

// db8Taps is the filter length of the Daubechies-8 (4-vanishing-moment)
// wavelet.
const db8Taps = 8

// db8Low is the Daubechies-8 low-pass (scaling) filter.
var db8Low = [db8Taps]float64{
	0.23037781330889653,
	0.71484657055291060,
	0.63088076792985890,
	-0.02798376941685985,
	-0.18703481171909309,
	0.03084138183556076,
	0.03288301166688519,
	-0.01059740178506903,
}

// db8High is the quadrature-mirror high-pass (wavelet) filter:
// g[k] = (-1)^k * h[N-1-k].
var db8High = func() [db8Taps]float64 {
	var g [db8Taps]float64
	for k := 0; k < db8Taps; k++ {
		sign := 1.0
		if k%2 == 1 {
			sign = -1.0
		}
		g[k] = sign * db8Low[db8Taps-1-k]
	}
	return g
}()

// waveletDenoise soft-thresholds the Daubechies-8 detail coefficients of
// col across its maximum decomposition level.
func waveletDenoise(col []byte, ratio float64, dst []float64) []float64 {
	n := len(col)
	level := maxLevel(n)

	prefixLen := n
	if level > 0 {
		prefixLen = (n >> uint(level)) << uint(level)
	}

	x := make([]float64, prefixLen)
	for i := range x {
		x[i] = float64(col[i])
	}

	details := make([][]float64, level)
	cur := x
	for l := 0; l < level; l++ {
		approx, detail := dwtForward(cur)
		softThreshold(detail, ratio)
		details[l] = detail
		cur = approx
	}
	for l := level - 1; l >= 0; l-- {
		cur = dwtInverse(cur, details[l])
	}

	if cap(dst) < n {
		dst = make([]float64, n)
	}
	dst = dst[:n]
	copy(dst, cur)
	for i := prefixLen; i < n; i++ {
		dst[i] = float64(col[i])
	}
	return dst
}

// maxLevel returns floor(log2(n / (taps-1))), clamped to >= 0.
func maxLevel(n int) int {
	ratio := float64(n) / float64(db8Taps-1)
	if ratio < 1 {
		return 0
	}
	l := int(math.Floor(math.Log2(ratio)))
	if l < 0 {
		return 0
	}
	return l
}

// softThreshold replaces every coefficient c with sign(c)*max(|c|-t, 0),
// where t = ratio * max(|detail|) over this level.
func softThreshold(detail []float64, ratio float64) {
	peak := 0.0
	for _, c := range detail {
		if a := math.Abs(c); a > peak {
			peak = a
		}
	}
	t := ratio * peak
	for i, c := range detail {
		a := math.Abs(c) - t
		if a < 0 {
			a = 0
		}
		if c < 0 {
			a = -a
		}
		detail[i] = a
	}
}

// dwtForward applies one level of the periodized Daubechies-8 analysis
// filter bank. len(x) must be even.
func dwtForward(x []float64) (approx, detail []float64) {
	n := len(x)
	m := n / 2
	approx = make([]float64, m)
	detail = make([]float64, m)
	for i := 0; i < m; i++ {
		var a, d float64
		for k := 0; k < db8Taps; k++ {
			xv := x[(2*i+k)%n]
			a += db8Low[k] * xv
			d += db8High[k] * xv
		}
		approx[i] = a
		detail[i] = d
	}
	return approx, detail
}

// dwtInverse reconstructs a length-2*len(approx) signal from one level of
// approximation/detail coefficients. Because the periodized analysis
// filter bank above is orthogonal, synthesis is its transpose: each
// coefficient scatters its contribution into the taps it was built from.
func dwtInverse(approx, detail []float64) []float64 {
	m := len(approx)
	n := m * 2
	x := make([]float64, n)
	for i := 0; i < m; i++ {
		a, d := approx[i], detail[i]
		for k := 0; k < db8Taps; k++ {
			j := (2*i + k) % n
			x[j] += db8Low[k]*a + db8High[k]*d
		}
	}
	return x
}
