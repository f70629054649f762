/*
DESCRIPTION
  engine_test.go exercises Engine's setters and the read_daq node without
  touching gocv/video I/O: ReadDaq's DaqLoader is swapped for an in-memory
  fake, which is enough to cover the Unset/InvalidParam/no-op/identity-
  caching contracts every leaf and node must honor.

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
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/starpact/tlc-core/daq"
	"github.com/starpact/tlc-core/errs"
	"github.com/starpact/tlc-core/model"
	"github.com/starpact/tlc-core/tlclog"
)

func newTestEngine(t *testing.T, loadCount *int, data [][]float64) *Engine {
	t.Helper()
	nrows := len(data)
	ncols := 0
	if nrows > 0 {
		ncols = len(data[0])
	}
	flat := make([]float64, 0, nrows*ncols)
	for _, row := range data {
		flat = append(flat, row...)
	}

	loader := func(path string) (*daq.Matrix, error) {
		*loadCount++
		return daq.NewMatrix(nrows, ncols, flat), nil
	}
	e := NewEngine(NewPool(2), tlclog.Discard(), loader)
	t.Cleanup(e.Close)
	return e
}

func TestReadDaqUnsetBeforeDaqPath(t *testing.T) {
	var loads int
	e := newTestEngine(t, &loads, [][]float64{{1, 2}, {3, 4}})
	_, err := e.ReadDaq()
	if !errs.IsKind(err, errs.Unset) {
		t.Fatalf("ReadDaq() error = %v, want Unset", err)
	}
}

func TestReadDaqCachesByPathIdentity(t *testing.T) {
	var loads int
	e := newTestEngine(t, &loads, [][]float64{{1, 2}, {3, 4}})

	e.SetDaqPath("a.lvm")
	if _, err := e.ReadDaq(); err != nil {
		t.Fatalf("ReadDaq() error = %v", err)
	}
	if _, err := e.ReadDaq(); err != nil {
		t.Fatalf("ReadDaq() error = %v", err)
	}
	if loads != 1 {
		t.Fatalf("loader called %d times, want 1 (second read should hit cache)", loads)
	}

	e.SetDaqPath("b.lvm")
	if _, err := e.ReadDaq(); err != nil {
		t.Fatalf("ReadDaq() error = %v", err)
	}
	if loads != 2 {
		t.Fatalf("loader called %d times after path change, want 2", loads)
	}
}

func TestSetDaqPathIsNoopOnSameValue(t *testing.T) {
	var loads int
	e := newTestEngine(t, &loads, [][]float64{{1, 2}, {3, 4}})
	e.SetDaqPath("a.lvm")
	e.SetDaqPath("a.lvm")
	if s := e.Setting(); s.DaqPath != "a.lvm" {
		t.Fatalf("DaqPath = %q, want a.lvm", s.DaqPath)
	}
}

func TestSetThermocouplesValidatesColumnRange(t *testing.T) {
	var loads int
	e := newTestEngine(t, &loads, [][]float64{{1, 2}, {3, 4}})
	e.SetDaqPath("a.lvm")

	err := e.SetThermocouples([]model.Thermocouple{{ColumnIndex: 5}})
	if !errs.IsKind(err, errs.InvalidParam) {
		t.Fatalf("SetThermocouples() error = %v, want InvalidParam", err)
	}
}

func TestSetThermocouplesAcceptsValidSet(t *testing.T) {
	var loads int
	e := newTestEngine(t, &loads, [][]float64{{1, 2}, {3, 4}})
	e.SetDaqPath("a.lvm")

	tcs := []model.Thermocouple{
		{ColumnIndex: 0, Position: model.Position{Y: 0, X: 0}},
		{ColumnIndex: 1, Position: model.Position{Y: 0, X: 1}},
	}
	if err := e.SetThermocouples(tcs); err != nil {
		t.Fatalf("SetThermocouples() error = %v", err)
	}
	if got := e.Setting().Thermocouples; !cmp.Equal(got, tcs) {
		t.Fatalf("Thermocouples mismatch (-got +want):\n%s", cmp.Diff(got, tcs))
	}
}

func TestSetInterpMethodValidatesBilinearGrid(t *testing.T) {
	var loads int
	e := newTestEngine(t, &loads, [][]float64{{1, 2, 3}, {4, 5, 6}})
	e.SetDaqPath("a.lvm")
	tcs := []model.Thermocouple{
		{ColumnIndex: 0}, {ColumnIndex: 1}, {ColumnIndex: 2},
	}
	if err := e.SetThermocouples(tcs); err != nil {
		t.Fatalf("SetThermocouples() error = %v", err)
	}

	err := e.SetInterpMethod(model.InterpMethod{Kind: model.InterpBilinear, Ty: 2, Tx: 2})
	if !errs.IsKind(err, errs.InvalidParam) {
		t.Fatalf("SetInterpMethod() error = %v, want InvalidParam (2x2=4 != 3 thermocouples)", err)
	}

	if err := e.SetInterpMethod(model.InterpMethod{Kind: model.InterpHorizontal}); err != nil {
		t.Fatalf("SetInterpMethod() error = %v, want nil", err)
	}
}

func TestSetIterMethodRejectsNonFiniteH0(t *testing.T) {
	var loads int
	e := newTestEngine(t, &loads, nil)
	err := e.SetIterMethod(model.IterMethod{Kind: model.IterNewtonTangent, H0: math.Inf(1), MaxIterNum: 10})
	if !errs.IsKind(err, errs.InvalidParam) {
		t.Fatalf("SetIterMethod() error = %v, want InvalidParam", err)
	}
}

func TestSetIterMethodIsNoopOnSameValue(t *testing.T) {
	var loads int
	e := newTestEngine(t, &loads, nil)
	m := model.IterMethod{Kind: model.IterNewtonTangent, H0: 10, MaxIterNum: 20}
	if err := e.SetIterMethod(m); err != nil {
		t.Fatalf("SetIterMethod() error = %v", err)
	}
	if err := e.SetIterMethod(m); err != nil {
		t.Fatalf("second SetIterMethod() error = %v", err)
	}
	if got := e.Setting().Iter; !cmp.Equal(got, m) {
		t.Fatalf("Iter mismatch (-got +want):\n%s", cmp.Diff(got, m))
	}
}

func TestSetPhysicalParamRejectsNonFinite(t *testing.T) {
	var loads int
	e := newTestEngine(t, &loads, nil)
	err := e.SetPhysicalParam(model.PhysicalParam{})
	if err != nil {
		t.Fatalf("SetPhysicalParam() with all-zero finite values error = %v, want nil", err)
	}

	badErr := e.SetPhysicalParam(model.PhysicalParam{PeakTemperature: math.Inf(1)})
	if !errs.IsKind(badErr, errs.InvalidParam) {
		t.Fatalf("SetPhysicalParam() error = %v, want InvalidParam", badErr)
	}
}

func TestSolveNuUnsetBeforePhysicalParam(t *testing.T) {
	var loads int
	e := newTestEngine(t, &loads, nil)
	_, err := e.SolveNu()
	if !errs.IsKind(err, errs.Unset) {
		t.Fatalf("SolveNu() error = %v, want Unset", err)
	}
}

func TestErrsIsKindDoesNotMatchPlainErrors(t *testing.T) {
	if errs.IsKind(errors.New("plain"), errs.Unset) {
		t.Fatal("IsKind matched a non-*errs.Error")
	}
}
