/*
DESCRIPTION
  area.go provides Area and StartIndex, the two leaf types that define
  which rectangular sub-region of the video and which frame/row offset
  every downstream computation operates over.

AUTHORS
  tlc-core contributors

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package model holds the small, comparable value types shared across the
// tlc-core pipeline (Area, StartIndex, PhysicalParam, IterMethod,
// FilterMethod, InterpMethod, Thermocouple), so that video, green2, peak,
// daq, solve and graph can all depend on them without import cycles.
package model

import "fmt"

// Area is a rectangular sub-region of the full video frame.
type Area struct {
	TopLeftY int `json:"top_left_y"`
	TopLeftX int `json:"top_left_x"`
	Height   int `json:"height"`
	Width    int `json:"width"`
}

// Pixels returns the number of pixels in the area.
func (a Area) Pixels() int { return a.Height * a.Width }

// Validate checks a.TopLeftX+a.Width <= videoWidth and
// a.TopLeftY+a.Height <= videoHeight, plus that the area is non-empty and
// non-negative.
func (a Area) Validate(videoHeight, videoWidth int) error {
	if a.Height <= 0 || a.Width <= 0 {
		return fmt.Errorf("area has non-positive extent: %dx%d", a.Height, a.Width)
	}
	if a.TopLeftY < 0 || a.TopLeftX < 0 {
		return fmt.Errorf("area top-left is negative: (%d, %d)", a.TopLeftY, a.TopLeftX)
	}
	if a.TopLeftY+a.Height > videoHeight {
		return fmt.Errorf("area bottom %d exceeds video height %d", a.TopLeftY+a.Height, videoHeight)
	}
	if a.TopLeftX+a.Width > videoWidth {
		return fmt.Errorf("area right %d exceeds video width %d", a.TopLeftX+a.Width, videoWidth)
	}
	return nil
}

// StartIndex ties together the first analyzed video frame and the first
// analyzed DAQ row. Setting one while holding their relative offset fixed
// keeps the other synchronized.
type StartIndex struct {
	StartFrame int
	StartRow   int
}

// CalNum returns min(nframes-StartFrame, nrows-StartRow), the number of
// frames the computation can cover given both totals.
func (s StartIndex) CalNum(nframes, nrows int) int {
	remFrames := nframes - s.StartFrame
	remRows := nrows - s.StartRow
	if remFrames < remRows {
		return remFrames
	}
	return remRows
}

// WithStartFrame returns a StartIndex with StartFrame set to f, preserving
// the current (StartRow - StartFrame) offset, and an error if the result
// would be out of range.
func (s StartIndex) WithStartFrame(f, nframes, nrows int) (StartIndex, error) {
	offset := s.StartRow - s.StartFrame
	next := StartIndex{StartFrame: f, StartRow: f + offset}
	if err := next.Validate(nframes, nrows); err != nil {
		return s, err
	}
	return next, nil
}

// WithStartRow returns a StartIndex with StartRow set to r, preserving the
// current (StartRow - StartFrame) offset, and an error if the result would
// be out of range.
func (s StartIndex) WithStartRow(r, nframes, nrows int) (StartIndex, error) {
	offset := s.StartRow - s.StartFrame
	next := StartIndex{StartFrame: r - offset, StartRow: r}
	if err := next.Validate(nframes, nrows); err != nil {
		return s, err
	}
	return next, nil
}

// Validate checks both indexes are within their respective totals.
func (s StartIndex) Validate(nframes, nrows int) error {
	if s.StartFrame < 0 || s.StartFrame >= nframes {
		return fmt.Errorf("start frame %d out of range [0, %d)", s.StartFrame, nframes)
	}
	if s.StartRow < 0 || s.StartRow >= nrows {
		return fmt.Errorf("start row %d out of range [0, %d)", s.StartRow, nrows)
	}
	return nil
}
