/*
DESCRIPTION
  green2_test.go exercises Matrix's row-major layout invariant
  (rows() == cal_num, cols() == area_h*area_w) and its Row/Column
  accessors, independent of the video decode pipeline.

AUTHORS
  tlc-core contributors

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package green2

import "testing"

func TestMatrixRowIsContiguousSlice(t *testing.T) {
	m := NewMatrix(2, 3, []byte{1, 2, 3, 4, 5, 6})
	if got := m.Row(0); string(got) != string([]byte{1, 2, 3}) {
		t.Errorf("Row(0) = %v, want [1 2 3]", got)
	}
	if got := m.Row(1); string(got) != string([]byte{4, 5, 6}) {
		t.Errorf("Row(1) = %v, want [4 5 6]", got)
	}
}

func TestMatrixColumnGathersAcrossRows(t *testing.T) {
	m := NewMatrix(3, 2, []byte{1, 2, 3, 4, 5, 6})
	got := m.Column(1, nil)
	want := []byte{2, 4, 6}
	if len(got) != len(want) {
		t.Fatalf("len(Column(1)) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Column(1)[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestMatrixRowsColsMatchShape(t *testing.T) {
	m := NewMatrix(4, 5, make([]byte, 20))
	if m.Rows() != 4 {
		t.Errorf("Rows() = %d, want 4", m.Rows())
	}
	if m.Cols() != 5 {
		t.Errorf("Cols() = %d, want 5", m.Cols())
	}
}
