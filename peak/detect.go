/*
DESCRIPTION
  detect.go implements DetectPeak, the per-pixel-column scan that selects
  the index of the maximum (optionally filtered) green value.

AUTHORS
  tlc-core contributors

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package peak provides the temporal filter variants (No/Median/Wavelet)
// and the peak-frame detector that drives the inverse solver.
package peak

import (
	"fmt"
	"sync"

	"gonum.org/v1/gonum/floats"

	"github.com/starpact/tlc-core/errs"
	"github.com/starpact/tlc-core/green2"
	"github.com/starpact/tlc-core/model"
	"github.com/starpact/tlc-core/progress"
)

// Detect returns, for every pixel column of g, the index of the maximum
// value of the filtered column. The dispatch on method.Kind happens once
// here, outside the per-pixel loop, so the hot loop for each variant stays
// monomorphic.
func Detect(g *green2.Matrix, method model.FilterMethod, workers int, prog *progress.Counter) ([]int, error) {
	if err := method.Validate(g.Rows()); err != nil {
		return nil, errs.Wrap(errs.InvalidParam, "invalid filter method", err)
	}
	if workers < 1 {
		workers = 1
	}

	n := g.Cols()
	out := make([]int, n)

	colIdx := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			col := make([]byte, g.Rows())
			var filtered []float64
			for j := range colIdx {
				if prog.Aborted() {
					return
				}
				col = g.Column(j, col)

				switch method.Kind {
				case model.FilterNo:
					out[j] = argmaxBytes(col)
				case model.FilterMedian:
					filtered = runningMedian(col, method.WindowSize, filtered)
					out[j] = floats.MaxIdx(filtered)
				case model.FilterWavelet:
					filtered = waveletDenoise(col, method.ThresholdRatio, filtered)
					out[j] = floats.MaxIdx(filtered)
				}
				prog.Add(1)
			}
		}()
	}
	go func() {
		defer close(colIdx)
		for j := 0; j < n; j++ {
			colIdx <- j
		}
	}()
	wg.Wait()

	if prog.Aborted() {
		return nil, errs.New(errs.Aborted, "peak detection aborted")
	}
	for j, idx := range out {
		if idx < 0 || idx >= g.Rows() {
			return nil, errs.New(errs.Decode, fmt.Sprintf("pixel %d: peak index %d out of range [0, %d)", j, idx, g.Rows()))
		}
	}
	return out, nil
}

// argmaxBytes returns the index of the maximum byte in col, the smallest
// index on ties. It operates directly on the raw column with no
// allocation, the fast path for the No-filter variant.
func argmaxBytes(col []byte) int {
	best := 0
	for i := 1; i < len(col); i++ {
		if col[i] > col[best] {
			best = i
		}
	}
	return best
}
