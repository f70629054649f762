/*
DESCRIPTION
  detect_test.go exercises Detect's three filter variants and its
  validation/cancellation contracts.

AUTHORS
  tlc-core contributors

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package peak

import (
	"testing"

	"github.com/starpact/tlc-core/errs"
	"github.com/starpact/tlc-core/green2"
	"github.com/starpact/tlc-core/model"
	"github.com/starpact/tlc-core/progress"
)

func TestDetectNoFilterPicksSmallestIndexOnTie(t *testing.T) {
	// Column 0: a plain tie-free max at row 2. Column 1: rows 1 and 3
	// both hit the max byte value 200; the smallest index must win.
	g := green2.NewMatrix(5, 2, []byte{
		10, 50,
		20, 200,
		90, 30,
		5, 200,
		1, 10,
	})

	idx, err := Detect(g, model.FilterMethod{Kind: model.FilterNo}, 2, new(progress.Counter))
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if idx[0] != 2 {
		t.Errorf("column 0 peak index = %d, want 2", idx[0])
	}
	if idx[1] != 1 {
		t.Errorf("column 1 peak index (tie) = %d, want 1 (smallest)", idx[1])
	}
}

func TestDetectRejectsInvalidMedianWindow(t *testing.T) {
	g := green2.NewMatrix(10, 1, make([]byte, 10))
	_, err := Detect(g, model.FilterMethod{Kind: model.FilterMedian, WindowSize: 0}, 1, new(progress.Counter))
	if !errs.IsKind(err, errs.InvalidParam) {
		t.Fatalf("Detect() error = %v, want InvalidParam", err)
	}
}

func TestDetectMedianSmoothsASpike(t *testing.T) {
	// WindowSize must satisfy WindowSize <= nframes/10, so this needs at
	// least 30 frames for a window of 3.
	col := make([]byte, 30)
	for i := range col {
		col[i] = 10
	}
	col[5] = 200 // single-sample spike
	g := green2.NewMatrix(len(col), 1, col)

	idx, err := Detect(g, model.FilterMethod{Kind: model.FilterMedian, WindowSize: 3}, 1, new(progress.Counter))
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	// A single-sample spike does not survive a window-3 median; the peak
	// of the filtered column must not land on the spike itself.
	if idx[0] == 5 {
		t.Errorf("median filter did not smooth the single-sample spike, peak still at index 5")
	}
}

func TestDetectAbortedMidScan(t *testing.T) {
	g := green2.NewMatrix(10, 4, make([]byte, 40))
	prog := new(progress.Counter)
	prog.Abort()

	_, err := Detect(g, model.FilterMethod{Kind: model.FilterNo}, 2, prog)
	if !errs.IsKind(err, errs.Aborted) {
		t.Fatalf("Detect() error = %v, want Aborted", err)
	}
}

func TestArgmaxBytesSmallestIndexOnTie(t *testing.T) {
	got := argmaxBytes([]byte{1, 9, 9, 0})
	if got != 1 {
		t.Errorf("argmaxBytes() = %d, want 1", got)
	}
}
