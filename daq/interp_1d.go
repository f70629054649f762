/*
DESCRIPTION
  interp_1d.go builds the Horizontal/Vertical (±Extra) interpolation
  tables: along the relevant axis, find the covering thermocouple
  interval and linearly interpolate every frame in parallel.

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

import (
	"gonum.org/v1/gonum/mat"

	"github.com/starpact/tlc-core/model"
)

// build1D builds a (rowCount x calNum) table for the Horizontal/Vertical
// variants. positions are read off the relevant axis of local, which the
// caller must have already sorted ascending along that axis.
func build1D(temp2 *mat.Dense, local []model.Position, calNum, rowCount int, ax axis, extra bool) *mat.Dense {
	positions := make([]int, len(local))
	for i, p := range local {
		if ax == axisX {
			positions[i] = p.X
		} else {
			positions[i] = p.Y
		}
	}

	table := mat.NewDense(rowCount, calNum, nil)
	for p := 0; p < rowCount; p++ {
		i := findInterval(positions, p)
		t := fraction(positions, i, p, extra)
		lerpLanes4(table.RawRowView(p), temp2.RawRowView(i), temp2.RawRowView(i+1), t)
	}
	return table
}
