/*
DESCRIPTION
  kernel.go provides the shared interval search and lanes-4 linear
  interpolation kernel used by both the 1-D and bilinear interpolator
  builders.

AUTHORS
  tlc-core contributors

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package daq

import "sort"

// findInterval returns the index i such that positions[i] <= p <
// positions[i+1], clamped to [0, len(positions)-2]. positions must be
// sorted ascending and have length >= 2.
func findInterval(positions []int, p int) int {
	i := sort.Search(len(positions), func(i int) bool { return positions[i] > p }) - 1
	if i < 0 {
		i = 0
	}
	if max := len(positions) - 2; i > max {
		i = max
	}
	return i
}

// fraction computes the interpolation weight of p within
// [positions[i], positions[i+1]]. When extra is false the weight is
// clamped to [0, 1] (the non-Extra variants clamp the query point itself
// to the covering interval before interpolating); when extra is true the
// weight is left unclamped so the caller's interval slope extrapolates.
func fraction(positions []int, i, p int, extra bool) float64 {
	span := positions[i+1] - positions[i]
	t := float64(p-positions[i]) / float64(span)
	if !extra {
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
	}
	return t
}

// lerpLanes4 computes dst[k] = a[k] + t*(b[k]-a[k]) for k in [0, n),
// hand-unrolled four at a time with a scalar tail, a lanes-4 f64 SIMD
// kernel with a scalar tail (see DESIGN.md for why this is portable Go
// rather than architecture-specific assembly).
func lerpLanes4(dst, a, b []float64, t float64) {
	n := len(dst)
	i := 0
	for ; i+4 <= n; i += 4 {
		dst[i] = a[i] + t*(b[i]-a[i])
		dst[i+1] = a[i+1] + t*(b[i+1]-a[i+1])
		dst[i+2] = a[i+2] + t*(b[i+2]-a[i+2])
		dst[i+3] = a[i+3] + t*(b[i+3]-a[i+3])
	}
	for ; i < n; i++ {
		dst[i] = a[i] + t*(b[i]-a[i])
	}
}

// bilerpLanes4 computes the bilinear blend of four contiguous rows into
// dst, lanes-4 with a scalar tail.
func bilerpLanes4(dst, v00, v01, v10, v11 []float64, tx, ty float64) {
	w00 := (1 - tx) * (1 - ty)
	w01 := tx * (1 - ty)
	w10 := (1 - tx) * ty
	w11 := tx * ty
	n := len(dst)
	i := 0
	for ; i+4 <= n; i += 4 {
		dst[i] = w00*v00[i] + w01*v01[i] + w10*v10[i] + w11*v11[i]
		dst[i+1] = w00*v00[i+1] + w01*v01[i+1] + w10*v10[i+1] + w11*v11[i+1]
		dst[i+2] = w00*v00[i+2] + w01*v01[i+2] + w10*v10[i+2] + w11*v11[i+2]
		dst[i+3] = w00*v00[i+3] + w01*v01[i+3] + w10*v10[i+3] + w11*v11[i+3]
	}
	for ; i < n; i++ {
		dst[i] = w00*v00[i] + w01*v01[i] + w10*v10[i] + w11*v11[i]
	}
}
