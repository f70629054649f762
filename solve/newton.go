/*
DESCRIPTION
  newton.go implements the two Newton iteration variants over the
  semi-infinite-plate residual: NewtonTangent and NewtonDown.

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

import "math"

const (
	// convergenceTol is the |Δh| < 1e-3 termination threshold.
	convergenceTol = 1e-3
	// divergenceBound is the |h| > 10_000 divergence guard.
	divergenceBound = 1e4
	// dampingFloor is the λ < 1e-3 abort threshold for NewtonDown.
	dampingFloor = 1e-3
)

// series bundles the fixed inputs to one pixel's residual evaluation.
type series struct {
	t          []float64
	g          int
	k, a, tw, dt float64
}

// newtonTangent runs the undamped Newton iteration. It returns
// math.NaN() if the divergence guard trips or max_iter_num is exhausted
// without converging.
func newtonTangent(h0 float64, maxIter int, s series) float64 {
	h := h0
	for iter := 0; iter < maxIter; iter++ {
		f, df := evalResidual(h, s.t, s.g, s.k, s.a, s.tw, s.dt)
		if df == 0 {
			return math.NaN()
		}
		hNext := h - f/df
		if math.Abs(hNext) > divergenceBound {
			return math.NaN()
		}
		delta := hNext - h
		h = hNext
		if math.Abs(delta) < convergenceTol {
			return h
		}
	}
	return math.NaN()
}

// newtonDown runs the damped Newton iteration: each outer step halves
// the damping factor λ until the residual's magnitude actually
// decreases, aborting if λ underflows dampingFloor.
func newtonDown(h0 float64, maxIter int, s series) float64 {
	h := h0
	f, df := evalResidual(h, s.t, s.g, s.k, s.a, s.tw, s.dt)

	for iter := 0; iter < maxIter; iter++ {
		if df == 0 {
			return math.NaN()
		}
		lambda := 1.0
		var hNext, fNext, dfNext float64
		for {
			hNext = h - lambda*f/df
			fNext, dfNext = evalResidual(hNext, s.t, s.g, s.k, s.a, s.tw, s.dt)
			if math.Abs(fNext) < math.Abs(f) {
				break
			}
			lambda /= 2
			if lambda < dampingFloor {
				return math.NaN()
			}
		}
		if math.Abs(hNext) > divergenceBound {
			return math.NaN()
		}
		delta := hNext - h
		h, f, df = hNext, fNext, dfNext
		if math.Abs(delta) < convergenceTol {
			return h
		}
	}
	return math.NaN()
}
