/*
DESCRIPTION
  meta.go provides VideoMeta, the immutable shape/frame-rate/frame-count
  triple derived once from a video file, and Open, which reads that
  metadata and materializes the full packet sequence.

AUTHORS
  tlc-core contributors

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package video provides the packet store, decoder pool and preview
// scheduler that sit at the bottom of the tlc-core computation pipeline.
package video

import (
	"fmt"
	"math"

	"github.com/ausocean/utils/logging"
	"gocv.io/x/gocv"

	"github.com/starpact/tlc-core/errs"
	"github.com/starpact/tlc-core/progress"
)

// Shape is a (height, width) pixel extent.
type Shape struct {
	Height int `json:"height"`
	Width  int `json:"width"`
}

// VideoMeta is derived from a video file once and is immutable thereafter.
// Field tags match the {frame_rate,nframes,shape} shape a JSON snapshot
// writer would serialize, even though this package never marshals it
// itself.
type VideoMeta struct {
	FrameRate uint32 `json:"frame_rate"`
	NFrames   uint32 `json:"nframes"`
	Shape     Shape  `json:"shape"`
}

// Open reads the best video stream from path, computing frame rate from
// the stream's average frame rate (rounded), counting frames from the
// stream header, and materializing the full packet sequence. Open returns
// an *errs.Error of kind IO if the file does not exist, or VideoOpen-class
// errs.Decode if the container has no readable video stream. prog tracks
// progress through the packet load and is checked for cancellation; pass
// a fresh *progress.Counter if cancellation is not needed.
func Open(path string, log logging.Logger, prog *progress.Counter) (VideoMeta, *Store, error) {
	cap, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return VideoMeta{}, nil, errs.Wrap(errs.IO, fmt.Sprintf("could not open video %q", path), err)
	}
	defer cap.Close()

	fps := cap.Get(gocv.VideoCaptureFPS)
	if fps <= 0 {
		return VideoMeta{}, nil, errs.New(errs.Decode, fmt.Sprintf("video %q has no readable video stream", path))
	}
	nframes := int(cap.Get(gocv.VideoCaptureFrameCount))
	if nframes <= 0 {
		return VideoMeta{}, nil, errs.New(errs.Decode, fmt.Sprintf("video %q reports zero frames", path))
	}
	width := int(cap.Get(gocv.VideoCaptureFrameWidth))
	height := int(cap.Get(gocv.VideoCaptureFrameHeight))

	meta := VideoMeta{
		FrameRate: uint32(math.Round(fps)),
		NFrames:   uint32(nframes),
		Shape:     Shape{Height: height, Width: width},
	}

	store, err := buildStore(cap, nframes, log, prog)
	if err != nil {
		return VideoMeta{}, nil, err
	}
	return meta, store, nil
}
