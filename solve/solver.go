/*
DESCRIPTION
  solver.go orchestrates the per-pixel inverse solve producing Nu2: each
  area pixel's interpolated temperature history is fed through the chosen
  Newton variant and the resulting convective coefficient converted to a
  Nusselt number, fanned out across workers in the same
  channel-worker-pool shape green2.Build and peak.Detect use.

AUTHORS
  tlc-core contributors

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package solve

import (
	"fmt"
	"math"
	"sync"

	"github.com/starpact/tlc-core/daq"
	"github.com/starpact/tlc-core/errs"
	"github.com/starpact/tlc-core/model"
	"github.com/starpact/tlc-core/progress"
)

// minimumPeakFrameIndex is the smallest peak frame index the solver will
// attempt to fit; at or below it a pixel has too few samples for the
// residual's four-sample initial-temperature average, and is reported as
// NaN without ever calling the iteration.
const minimumPeakFrameIndex = 4

// Solve computes the Nu2 field over the interpolator's (calH x calW)
// area. gmax holds, per area-local row-major pixel index, the peak
// green-channel frame index from peak.Detect. frameRate is the video's
// frame rate (frames per second); its reciprocal is the physical delta-t
// between interpolated samples.
func Solve(it *daq.Interpolator, gmax []int, phys model.PhysicalParam, iter model.IterMethod, frameRate uint32, workers int, prog *progress.Counter) (*Nu2, error) {
	if err := phys.Validate(); err != nil {
		return nil, errs.Wrap(errs.InvalidParam, "invalid physical parameters", err)
	}
	if err := iter.Validate(); err != nil {
		return nil, errs.Wrap(errs.InvalidParam, "invalid iteration method", err)
	}
	if frameRate == 0 {
		return nil, errs.New(errs.InvalidParam, "frame rate must be positive")
	}

	calH, calW := it.Shape()
	n := calH * calW
	if len(gmax) != n {
		return nil, errs.New(errs.InvalidParam, fmt.Sprintf("gmax length %d does not match area size %d", len(gmax), n))
	}
	if workers < 1 {
		workers = 1
	}

	nu2 := NewNu2(calH, calW)
	dt := 1 / float64(frameRate)
	k := phys.SolidThermalConductivity
	a := phys.SolidThermalDiffusivity
	tw := phys.PeakTemperature
	nuScale := phys.CharacteristicLength / phys.AirThermalConductivity

	pixelIdx := make(chan int)
	var (
		wg      sync.WaitGroup
		errOnce sync.Once
		stop    = make(chan struct{})
		solveErr error
	)
	fail := func(err error) {
		errOnce.Do(func() {
			solveErr = err
			close(stop)
		})
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range pixelIdx {
				select {
				case <-stop:
					return
				default:
				}

				y, x := idx/calW, idx%calW
				g := gmax[idx]
				if g <= minimumPeakFrameIndex {
					nu2.set(y, x, math.NaN())
					prog.Add(1)
					continue
				}

				t, err := it.InterpPoint(idx)
				if err != nil {
					fail(err)
					return
				}
				if g >= len(t) {
					fail(errs.New(errs.InvalidParam, fmt.Sprintf("pixel %d: peak index %d exceeds history length %d", idx, g, len(t))))
					return
				}

				s := series{t: t, g: g, k: k, a: a, tw: tw, dt: dt}
				var h float64
				switch iter.Kind {
				case model.IterNewtonTangent:
					h = newtonTangent(iter.H0, iter.MaxIterNum, s)
				case model.IterNewtonDown:
					h = newtonDown(iter.H0, iter.MaxIterNum, s)
				}
				nu2.set(y, x, h*nuScale)

				prog.Add(1)
				if prog.Aborted() {
					fail(errs.New(errs.Aborted, "solve aborted"))
					return
				}
			}
		}()
	}

	go func() {
		defer close(pixelIdx)
		for idx := 0; idx < n; idx++ {
			select {
			case pixelIdx <- idx:
			case <-stop:
				return
			}
		}
	}()

	wg.Wait()
	if solveErr != nil {
		return nil, solveErr
	}
	return nu2, nil
}
