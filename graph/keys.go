/*
DESCRIPTION
  keys.go declares the structural-identity keys memoizing each tracked
  node of the computation graph: two calls with equal keys reuse the
  cached result, even if the caller mutated and then reverted a leaf back
  to its original value.

AUTHORS
  tlc-core contributors

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package graph

import (
	"fmt"

	"github.com/starpact/tlc-core/model"
)

// videoKey identifies a read_video computation: the path and a generation
// counter bumped whenever the file watcher observes the underlying file
// change without the path itself changing. Identity is the path, not the
// path plus a timestamp, extended here by the watcher's generation bump.
type videoKey struct {
	path string
	gen  uint64
}

// daqKey identifies a DAQ-load computation, keyed the same way as videoKey.
type daqKey struct {
	path string
	gen  uint64
}

// green2Key identifies a green2 build: everything Build's signature closes
// over, plus the upstream video identity, so a video reload invalidates
// every green2 built from it.
type green2Key struct {
	video      videoKey
	start      model.StartIndex
	calNum     int
	area       model.Area
}

// peakKey identifies a detect_peak computation: the upstream green2
// identity plus the filter method.
type peakKey struct {
	green2 green2Key
	filter model.FilterMethod
}

// interpKey identifies an interpolator build. Thermocouples are a slice
// and so not comparable; thermoFingerprint folds the full sparse set into
// a comparable string so two equal-but-distinct slices still hit the
// cache.
type interpKey struct {
	daq               daqKey
	start             model.StartIndex
	calNum            int
	area              model.Area
	thermoFingerprint string
	method            model.InterpMethod
}

// solveKey identifies a solve_nu computation: the upstream interpolator
// and peak identities plus the physical/iteration parameters and the
// frame rate the dt step derives from.
type solveKey struct {
	interp   interpKey
	peak     peakKey
	physical model.PhysicalParam
	iter     model.IterMethod
	frameRate uint32
}

// thermoFingerprint renders tcs as a comparable string identity. Two
// slices with equal elements in equal order produce equal fingerprints;
// order matters because 1-D interpolation depends on the caller's
// thermocouple ordering.
func thermoFingerprint(tcs []model.Thermocouple) string {
	s := ""
	for _, tc := range tcs {
		s += fmt.Sprintf("|%d:%d,%d", tc.ColumnIndex, tc.Position.Y, tc.Position.X)
	}
	return s
}
