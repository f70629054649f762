/*
DESCRIPTION
  nu2.go defines the Nu2 field produced by Solve: one Nusselt number per
  analyzed-area pixel, laid out row-major.

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

import "fmt"

// Nu2 is the (height x width) field of per-pixel Nusselt numbers. NaN
// marks a pixel whose peak index fell at or below
// minimumPeakFrameIndex, or whose iteration diverged.
type Nu2 struct {
	height, width int
	data          []float64
}

// NewNu2 allocates a zeroed Nu2 field of the given shape.
func NewNu2(height, width int) *Nu2 {
	return &Nu2{height: height, width: width, data: make([]float64, height*width)}
}

// Shape returns (height, width).
func (n *Nu2) Shape() (height, width int) { return n.height, n.width }

// At returns the Nusselt number at (y, x).
func (n *Nu2) At(y, x int) float64 { return n.data[y*n.width+x] }

// Raw returns the backing row-major slice, length height*width.
func (n *Nu2) Raw() []float64 { return n.data }

func (n *Nu2) set(y, x int, v float64) {
	n.data[y*n.width+x] = v
}

func (n *Nu2) String() string {
	return fmt.Sprintf("Nu2(%dx%d)", n.height, n.width)
}
