/*
DESCRIPTION
  decoder.go provides Decoder, a thread-local decoder plus colour-space
  scratch frame, and DecoderPool, the pool that lazily builds one Decoder
  per calling goroutine.

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

	"gocv.io/x/gocv"

	"github.com/starpact/tlc-core/errs"
)

// Decoder owns one scratch destination frame and decodes packets into it.
// A Decoder must not be shared across goroutines; DecoderPool hands out
// exactly one Decoder per concurrent caller.
type Decoder struct {
	dst gocv.Mat
}

func newDecoder() *Decoder {
	return &Decoder{dst: gocv.NewMat()}
}

// Close releases the Decoder's scratch frame. Called when a goroutine
// using this Decoder is done with it for good, mirroring a thread-local
// decoder's destruction tied to the thread's exit.
func (d *Decoder) Close() error { return d.dst.Close() }

// Decode feeds packet p to the decoder and returns a borrow of the
// destination frame, valid until the next call to Decode on this Decoder.
// It asserts the one-packet-one-frame invariant: IMDecode either yields
// exactly one image or returns an error, so no separate assertion of
// frame count is needed beyond checking Empty().
func (d *Decoder) Decode(p Packet) (gocv.Mat, error) {
	mat, err := gocv.IMDecode(p.Data, gocv.IMReadColor)
	if err != nil {
		return gocv.Mat{}, errs.Wrap(errs.Decode, fmt.Sprintf("could not decode packet %d", p.Index), err)
	}
	if mat.Empty() {
		mat.Close()
		return gocv.Mat{}, errs.New(errs.Decode, fmt.Sprintf("packet %d produced zero frames", p.Index))
	}
	mat.CopyTo(&d.dst)
	mat.Close()
	return d.dst, nil
}

// DecoderPool lazily builds a Decoder per calling goroutine from a bounded
// free-list (chanPool), the Go analogue of a thread-local decoder instance
// built under a short lock on first use: Get either reuses an idle
// Decoder or constructs a fresh one, and Put returns it for reuse by
// whichever goroutine asks next.
type DecoderPool struct {
	pool chanPool
}

// chanPool is a bounded free-list; unlike sync.Pool it is never emptied by
// the garbage collector, which matters here because decoders are cheap to
// reuse but not cheap to recreate (each owns a gocv.Mat backed by native
// memory).
type chanPool chan *Decoder

// NewDecoderPool returns a DecoderPool capable of holding up to size idle
// Decoders; size should track the compute pool's parallelism.
func NewDecoderPool(size int) *DecoderPool {
	return &DecoderPool{pool: make(chanPool, size)}
}

// Get returns an idle Decoder, or constructs a new one if none are idle.
func (p *DecoderPool) Get() *Decoder {
	select {
	case d := <-p.pool:
		return d
	default:
		return newDecoder()
	}
}

// Put returns d to the pool for reuse, or closes it if the pool is full.
func (p *DecoderPool) Put(d *Decoder) {
	select {
	case p.pool <- d:
	default:
		d.Close()
	}
}

// Close drains and closes every idle Decoder currently held by the pool.
func (p *DecoderPool) Close() {
	for {
		select {
		case d := <-p.pool:
			d.Close()
		default:
			return
		}
	}
}
