/*
DESCRIPTION
  matrix.go provides Matrix, the dense nrows x ncols DAQ temperature
  table read from an LVM/XLSX file by an external collaborator and handed
  to this package already parsed.

AUTHORS
  tlc-core contributors

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package daq provides the DAQ matrix type and the thermocouple
// interpolator built from it.
package daq

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/starpact/tlc-core/errs"
	"github.com/starpact/tlc-core/model"
)

// Matrix is the dense nrows x ncols DAQ temperature table.
type Matrix struct {
	dense *mat.Dense
}

// NewMatrix wraps raw row-major data as a Matrix.
func NewMatrix(nrows, ncols int, data []float64) *Matrix {
	return &Matrix{dense: mat.NewDense(nrows, ncols, data)}
}

// NRows returns the number of DAQ samples (time axis).
func (m *Matrix) NRows() int { return m.dense.RawMatrix().Rows }

// NCols returns the number of thermocouple channels.
func (m *Matrix) NCols() int { return m.dense.RawMatrix().Cols }

// At returns the temperature reading at (row, col).
func (m *Matrix) At(row, col int) float64 { return m.dense.At(row, col) }

// ValidateThermocouples checks that every thermocouple references a
// column within range.
func ValidateThermocouples(tcs []model.Thermocouple, ncols int) error {
	for i, tc := range tcs {
		if tc.ColumnIndex < 0 || tc.ColumnIndex >= ncols {
			return errs.New(errs.InvalidParam, fmt.Sprintf("thermocouple %d: column index %d out of range [0, %d)", i, tc.ColumnIndex, ncols))
		}
	}
	return nil
}
