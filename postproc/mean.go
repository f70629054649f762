/*
DESCRIPTION
  mean.go computes the NaN-aware mean of a Nu2 field and the default
  [0.6*mean, 2.0*mean] truncation range applied when the caller supplies
  no explicit truncation.

AUTHORS
  tlc-core contributors

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package postproc is the post-processing bridge: it computes the values
// and types a collaborator renderer/writer needs (NaN-aware mean,
// truncation range, jet color mapping, snapshot shape) without itself
// writing the PNG/CSV/JSON files, which remain a collaborator's
// responsibility.
package postproc

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/starpact/tlc-core/solve"
)

const (
	defaultTruncLow  = 0.6
	defaultTruncHigh = 2.0
)

// MeanNu returns the mean of nu2's non-NaN entries. gonum/stat.Mean does
// not skip NaN itself, so the field is filtered first.
func MeanNu(nu2 *solve.Nu2) float64 {
	raw := nu2.Raw()
	vals := make([]float64, 0, len(raw))
	for _, v := range raw {
		if !math.IsNaN(v) {
			vals = append(vals, v)
		}
	}
	if len(vals) == 0 {
		return math.NaN()
	}
	return stat.Mean(vals, nil)
}

// DefaultTruncation returns the [0.6*mean, 2.0*mean] range applied when
// the caller supplies no explicit truncation.
func DefaultTruncation(nu2 *solve.Nu2) (lo, hi float64) {
	mean := MeanNu(nu2)
	return defaultTruncLow * mean, defaultTruncHigh * mean
}
