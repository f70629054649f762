/*
DESCRIPTION
  residual.go evaluates the semi-infinite-plate residual and its
  derivative w.r.t. h, hand-unrolled in lanes of four consecutive i's with
  a scalar tail, erfc unpacked lane-wise (no portable vectorized erfc is
  assumed - see DESIGN.md for why this is plain Go rather than
  architecture-specific SIMD assembly).

AUTHORS
  tlc-core contributors

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package solve implements the per-pixel inverse solve of the
// semi-infinite-plate heat-conduction equation.
package solve

import "math"

// initialTemperatureSamples is the number of leading samples averaged to
// obtain t0, the initial temperature.
const initialTemperatureSamples = 4

// initialTemperature returns mean(T[0:4]).
func initialTemperature(t []float64) float64 {
	var sum float64
	n := initialTemperatureSamples
	if len(t) < n {
		n = len(t)
	}
	for i := 0; i < n; i++ {
		sum += t[i]
	}
	return sum / float64(n)
}

// stepTerm is one i's (step_i(h), d_step_i(h)) pair, where d_step_i is the
// derivative w.r.t. h of the residual's -step_i(h) term.
func stepTerm(h, delta, timeWeight, k, a float64) (step, dstep float64) {
	// timeWeight = a*dt*(G-i-1), always >= 0 within the caller's loop
	// bounds (i in [0, G)), keeping sqrtTW real.
	sqrtTW := math.Sqrt(timeWeight)
	expo := (h * h / (k * k)) * timeWeight
	erfcArg := (h / k) * sqrtTW
	e := math.Exp(expo)
	erfcVal := math.Erfc(erfcArg)

	step = (1 - e*erfcVal) * delta
	dstep = -delta * (2*sqrtTW/(k*math.Sqrt(math.Pi)) - 2*timeWeight*h*e*erfcVal/(k*k))
	return step, dstep
}

// evalResidual computes (residual(h), d residual/dh) for peak frame index
// g over temperature history t (t must have length >= g+1). Evaluation
// proceeds four i's at a time with a scalar tail.
func evalResidual(h float64, t []float64, g int, k, a, tw, dt float64) (f, df float64) {
	t0 := initialTemperature(t)

	var stepSum, dstepSum float64
	i := 0
	for ; i+4 <= g; i += 4 {
		for j := 0; j < 4; j++ {
			ii := i + j
			delta := t[ii+1] - t[ii]
			timeWeight := a * dt * float64(g-ii-1)
			s, ds := stepTerm(h, delta, timeWeight, k, a)
			stepSum += s
			dstepSum += ds
		}
	}
	for ; i < g; i++ {
		delta := t[i+1] - t[i]
		timeWeight := a * dt * float64(g-i-1)
		s, ds := stepTerm(h, delta, timeWeight, k, a)
		stepSum += s
		dstepSum += ds
	}

	f = tw - t0 - stepSum
	df = dstepSum
	return f, df
}
