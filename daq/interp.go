/*
DESCRIPTION
  interp.go builds the Interpolator: a dense (variable x cal_num) matrix
  whose row axis is the "point" axis, so that interp_point(i) can return
  a contiguous []float64 straight from the matrix's backing array, which
  the solver requires for its per-pixel temperature history.

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

// Interpolator owns a dense (variable x calNum) matrix and answers
// interp_frame/interp_point queries over it.
type Interpolator struct {
	method        model.InterpMethod
	calH, calW    int
	calNum        int
	table         *mat.Dense // rows: "point" axis (contiguous per row)
}

// Shape returns (cal_h, cal_w).
func (it *Interpolator) Shape() (calH, calW int) { return it.calH, it.calW }

// CalNum returns the number of frames each interpolated history spans.
func (it *Interpolator) CalNum() int { return it.calNum }

// New builds an Interpolator from the DAQ matrix, the start/area
// parameters and the sparse thermocouple set. Thermocouples must already
// be ordered by the caller along the relevant axis for 1-D methods (x for
// Horizontal*, y for Vertical*) and row-major for Bilinear*.
func New(daq *Matrix, start model.StartIndex, calNum int, area model.Area, tcs []model.Thermocouple, method model.InterpMethod) (*Interpolator, error) {
	if err := method.Validate(len(tcs)); err != nil {
		return nil, errs.Wrap(errs.InvalidParam, "invalid interpolation method", err)
	}
	if len(tcs) < 2 {
		return nil, errs.New(errs.InvalidParam, fmt.Sprintf("need at least 2 thermocouples, got %d", len(tcs)))
	}
	if err := ValidateThermocouples(tcs, daq.NCols()); err != nil {
		return nil, err
	}
	if start.StartRow < 0 || start.StartRow+calNum > daq.NRows() {
		return nil, errs.New(errs.InvalidParam, fmt.Sprintf("daq row range [%d, %d) out of bounds for %d rows", start.StartRow, start.StartRow+calNum, daq.NRows()))
	}

	temp2 := assembleTemp2(daq, start.StartRow, calNum, tcs)
	local := translateLocal(tcs, area)

	it := &Interpolator{method: method, calH: area.Height, calW: area.Width, calNum: calNum}

	switch {
	case method.Kind == model.InterpHorizontal || method.Kind == model.InterpHorizontalExtra:
		it.table = build1D(temp2, local, calNum, area.Width, axisX, method.Kind.IsExtra())
	case method.Kind == model.InterpVertical || method.Kind == model.InterpVerticalExtra:
		it.table = build1D(temp2, local, calNum, area.Height, axisY, method.Kind.IsExtra())
	case method.Kind.IsBilinear():
		table, err := buildBilinear(temp2, local, calNum, area, method.Ty, method.Tx, method.Kind.IsExtra())
		if err != nil {
			return nil, err
		}
		it.table = table
	}
	return it, nil
}

// assembleTemp2 copies, for each of the calNum analyzed frames, the DAQ
// columns referenced by tcs into a dense (tcCount x calNum) matrix.
func assembleTemp2(daq *Matrix, startRow, calNum int, tcs []model.Thermocouple) *mat.Dense {
	temp2 := mat.NewDense(len(tcs), calNum, nil)
	for t, tc := range tcs {
		row := temp2.RawRowView(t)
		for f := 0; f < calNum; f++ {
			row[f] = daq.At(startRow+f, tc.ColumnIndex)
		}
	}
	return temp2
}

// translateLocal converts thermocouple positions from full-video to
// area-local coordinates.
func translateLocal(tcs []model.Thermocouple, area model.Area) []model.Position {
	out := make([]model.Position, len(tcs))
	for i, tc := range tcs {
		out[i] = model.Position{
			Y: tc.Position.Y - area.TopLeftY,
			X: tc.Position.X - area.TopLeftX,
		}
	}
	return out
}

// InterpFrame returns the (calH x calW) temperature field at frame f.
func (it *Interpolator) InterpFrame(f int) ([][]float64, error) {
	if f < 0 || f >= it.calNum {
		return nil, errs.New(errs.InvalidParam, fmt.Sprintf("frame %d out of range [0, %d)", f, it.calNum))
	}
	out := make([][]float64, it.calH)
	switch {
	case it.method.Kind == model.InterpHorizontal || it.method.Kind == model.InterpHorizontalExtra:
		row := make([]float64, it.calW)
		for x := 0; x < it.calW; x++ {
			row[x] = it.table.At(x, f)
		}
		for y := 0; y < it.calH; y++ {
			out[y] = append([]float64(nil), row...)
		}
	case it.method.Kind == model.InterpVertical || it.method.Kind == model.InterpVerticalExtra:
		for y := 0; y < it.calH; y++ {
			v := it.table.At(y, f)
			row := make([]float64, it.calW)
			for x := range row {
				row[x] = v
			}
			out[y] = row
		}
	default: // bilinear
		for y := 0; y < it.calH; y++ {
			row := make([]float64, it.calW)
			for x := 0; x < it.calW; x++ {
				row[x] = it.table.At(y*it.calW+x, f)
			}
			out[y] = row
		}
	}
	return out, nil
}

// InterpPoint returns the contiguous frame-length temperature history for
// pixel index (area-local, row-major: index = y*calW+x). This is a direct
// row view into the backing matrix, which the solver depends on for its
// per-pixel layout.
func (it *Interpolator) InterpPoint(index int) ([]float64, error) {
	n := it.calH * it.calW
	if index < 0 || index >= n {
		return nil, errs.New(errs.InvalidParam, fmt.Sprintf("pixel index %d out of range [0, %d)", index, n))
	}
	var row int
	switch {
	case it.method.Kind == model.InterpHorizontal || it.method.Kind == model.InterpHorizontalExtra:
		row = index % it.calW
	case it.method.Kind == model.InterpVertical || it.method.Kind == model.InterpVerticalExtra:
		row = index / it.calW
	default:
		row = index
	}
	return it.table.RawRowView(row), nil
}

type axis int

const (
	axisX axis = iota
	axisY
)
