/*
DESCRIPTION
  interp_2d.go builds the Bilinear(ty, tx) (±Extra) interpolation table:
  thermocouples form a ty x tx grid, stored row-major; each output pixel
  locates its containing cell and bilinearly interpolates every frame in
  parallel.

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
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/starpact/tlc-core/errs"
	"github.com/starpact/tlc-core/model"
)

// buildBilinear builds a (calH*calW x calNum) table for the Bilinear(ty,
// tx) variants. local must be in row-major grid order (index =
// row*tx+col).
func buildBilinear(temp2 *mat.Dense, local []model.Position, calNum int, area model.Area, ty, tx int, extra bool) (*mat.Dense, error) {
	if ty*tx != len(local) {
		return nil, errs.New(errs.InvalidParam, fmt.Sprintf("bilinear grid %dx%d does not match %d thermocouples", ty, tx, len(local)))
	}

	xs := make([]int, tx)
	for c := 0; c < tx; c++ {
		xs[c] = local[c].X
	}
	ys := make([]int, ty)
	for r := 0; r < ty; r++ {
		ys[r] = local[r*tx].Y
	}

	calH, calW := area.Height, area.Width
	table := mat.NewDense(calH*calW, calNum, nil)

	for y := 0; y < calH; y++ {
		yi := findInterval(ys, y)
		tyFrac := fraction(ys, yi, y, extra)
		for x := 0; x < calW; x++ {
			xi := findInterval(xs, x)
			txFrac := fraction(xs, xi, x, extra)

			v00 := temp2.RawRowView(yi*tx + xi)
			v01 := temp2.RawRowView(yi*tx + xi + 1)
			v10 := temp2.RawRowView((yi+1)*tx + xi)
			v11 := temp2.RawRowView((yi+1)*tx + xi + 1)

			bilerpLanes4(table.RawRowView(y*calW+x), v00, v01, v10, v11, txFrac, tyFrac)
		}
	}
	return table, nil
}
