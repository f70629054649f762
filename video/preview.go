/*
DESCRIPTION
  preview.go provides PreviewScheduler, a bounded LIFO ring buffer of
  frame-decode requests feeding a small dedicated worker pool, so that
  while a user scrubs the timeline only the latest request is ever served.

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
	"encoding/base64"
	"fmt"
	"sync"

	"gocv.io/x/gocv"

	"github.com/starpact/tlc-core/errs"
)

// previewJPEGQuality is the fixed encode quality for preview frames.
const previewJPEGQuality = 100

// previewTask is one pending "decode frame N" request.
type previewTask struct {
	frameIndex int
	reply      chan previewResult
}

type previewResult struct {
	base64 string
	err    error
}

// PreviewScheduler serves "decode frame N, return JPEG base64" during
// timeline scrubbing. It holds at most capacity pending requests; a new
// request force-pushes, evicting the oldest pending one (whose Future then
// resolves with errs.Cancelled).
type PreviewScheduler struct {
	store *Store
	pool  *DecoderPool

	mu    sync.Mutex
	ring  []*previewTask // ring[0] oldest, ring[len-1] newest
	cap   int
	sema  chan struct{}
	close chan struct{}
	wg    sync.WaitGroup
}

// NewPreviewScheduler starts workers worker goroutines, each owning a
// Decoder, serving requests against store. workers also bounds the
// ring's capacity to a capacity-W ring buffer for W workers.
func NewPreviewScheduler(store *Store, workers int) *PreviewScheduler {
	if workers < 1 {
		workers = 1
	}
	s := &PreviewScheduler{
		store: store,
		pool:  NewDecoderPool(workers),
		ring:  make([]*previewTask, 0, workers),
		cap:   workers,
		sema:  make(chan struct{}, workers),
		close: make(chan struct{}),
	}
	for i := 0; i < workers; i++ {
		s.wg.Add(1)
		go s.worker()
	}
	return s
}

// Stop terminates all worker goroutines. Pending requests are evicted.
func (s *PreviewScheduler) Stop() {
	close(s.close)
	s.wg.Wait()
	s.mu.Lock()
	for _, t := range s.ring {
		t.reply <- previewResult{err: errs.New(errs.Cancelled, "preview scheduler stopped")}
	}
	s.ring = s.ring[:0]
	s.mu.Unlock()
	s.pool.Close()
}

// Request force-pushes a decode request for frameIndex and returns a
// channel that will receive exactly one previewResult: either the
// base64-encoded JPEG, or an errs.Cancelled error if the request is
// evicted before a worker serves it.
func (s *PreviewScheduler) Request(frameIndex int) <-chan previewResult {
	t := &previewTask{frameIndex: frameIndex, reply: make(chan previewResult, 1)}

	s.mu.Lock()
	if len(s.ring) == s.cap {
		evicted := s.ring[0]
		s.ring = s.ring[1:]
		evicted.reply <- previewResult{err: errs.New(errs.Cancelled, "preview request evicted by a newer request")}
	}
	s.ring = append(s.ring, t)
	s.mu.Unlock()

	select {
	case s.sema <- struct{}{}:
	default:
		// Semaphore is saturated; a worker will still find this task via
		// the ring the next time it wakes, since capacity == workers.
	}
	return t.reply
}

// worker waits on the semaphore, pops the newest pending task and serves
// it. If the ring is empty at wake (another worker already took the only
// task), it returns to waiting.
func (s *PreviewScheduler) worker() {
	defer s.wg.Done()
	d := s.pool.Get()
	defer s.pool.Put(d)

	for {
		select {
		case <-s.close:
			return
		case <-s.sema:
		}

		s.mu.Lock()
		var t *previewTask
		if n := len(s.ring); n > 0 {
			t = s.ring[n-1]
			s.ring = s.ring[:n-1]
		}
		s.mu.Unlock()
		if t == nil {
			continue
		}

		b64, err := s.decodeToBase64(d, t.frameIndex)
		if err != nil {
			t.reply <- previewResult{err: err}
			continue
		}
		t.reply <- previewResult{base64: b64}
	}
}

func (s *PreviewScheduler) decodeToBase64(d *Decoder, frameIndex int) (string, error) {
	if frameIndex < 0 || frameIndex >= s.store.Len() {
		return "", errs.New(errs.InvalidParam, fmt.Sprintf("frame index %d out of range [0, %d)", frameIndex, s.store.Len()))
	}
	frame, err := d.Decode(s.store.At(frameIndex))
	if err != nil {
		return "", err
	}
	buf, err := gocv.IMEncodeWithParams(".jpg", frame, []int{gocv.IMWriteJpegQuality, previewJPEGQuality})
	if err != nil {
		return "", errs.Wrap(errs.Decode, "could not jpeg-encode preview frame", err)
	}
	defer buf.Close()
	return base64.StdEncoding.EncodeToString(buf.GetBytes()), nil
}
