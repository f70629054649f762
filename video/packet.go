/*
DESCRIPTION
  packet.go provides Packet and Store. A Packet is an opaque, lossless
  (PNG-encoded) compressed-frame payload; a Store is the full, read-only
  sequence of packets for one video, shared across decoders.

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

import (
	"fmt"

	"github.com/ausocean/utils/logging"
	"gocv.io/x/gocv"

	"github.com/starpact/tlc-core/errs"
	"github.com/starpact/tlc-core/progress"
)

// Packet is an opaque compressed-frame payload. Because the payload is a
// lossless PNG encoding of one decoded frame, the "one packet decodes to
// exactly one frame" invariant holds by construction: a valid PNG buffer
// always decodes to exactly one image.
type Packet struct {
	Index int
	Data  []byte
}

// Store is the full packet sequence for one video. Packets are reference-
// shared and never mutated after load; a Store is safe for concurrent
// reads from any number of decoders.
type Store struct {
	packets []Packet
}

// Len returns the number of packets in the store.
func (s *Store) Len() int { return len(s.packets) }

// At returns the packet at index i. The caller must not mutate the
// returned Data slice.
func (s *Store) At(i int) Packet { return s.packets[i] }

// buildStore decodes every frame of an already-open capture exactly once
// and re-encodes each as a lossless PNG packet, materializing the full
// packet sequence. prog is incremented once per decoded packet and
// checked for external cancellation; a raised flag aborts the load with
// errs.Aborted.
func buildStore(cap *gocv.VideoCapture, nframes int, log logging.Logger, prog *progress.Counter) (*Store, error) {
	packets := make([]Packet, 0, nframes)
	frame := gocv.NewMat()
	defer frame.Close()

	for i := 0; i < nframes; i++ {
		if prog.Aborted() {
			return nil, errs.New(errs.Aborted, "video load aborted")
		}
		if ok := cap.Read(&frame); !ok {
			// The container under-reports or over-reports nframes; stop at
			// whatever the stream actually yielded rather than failing the
			// whole load. VideoMeta.NFrames keeps the declared count, so
			// cal_num is derived from it, and green2.Build rejects a frame
			// range that runs past the packets actually stored.
			if log != nil {
				log.Log(logging.Warning, "video stream ended early", "got", i, "declared", nframes)
			}
			break
		}
		if frame.Empty() {
			return nil, errs.New(errs.Decode, fmt.Sprintf("packet %d decoded to an empty frame", i))
		}

		buf, err := gocv.IMEncode(".png", frame)
		if err != nil {
			return nil, errs.Wrap(errs.Decode, fmt.Sprintf("could not re-encode packet %d", i), err)
		}
		data := make([]byte, buf.Len())
		copy(data, buf.GetBytes())
		buf.Close()

		packets = append(packets, Packet{Index: i, Data: data})
		prog.Add(1)
	}

	return &Store{packets: packets}, nil
}
