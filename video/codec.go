/*
DESCRIPTION
  codec.go holds GreenAt, the gocv.Mat green-channel accessor used by the
  green2 builder, so the RGB24/BGR byte-order note lives in exactly one
  place.

AUTHORS
  tlc-core contributors

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package video

import "gocv.io/x/gocv"

// greenChannelIndex is the offset of the green sample within one pixel's
// 3-channel vector. It is the same offset whether the frame is laid out
// as RGB24 or gocv's native BGR: green always sits in the middle.
const greenChannelIndex = 1

// GreenAt returns the green-channel byte of frame at pixel (y, x).
func GreenAt(frame gocv.Mat, y, x int) byte {
	return frame.GetVecbAt(y, x)[greenChannelIndex]
}
