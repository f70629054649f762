/*
DESCRIPTION
  pool.go provides Pool, the work-stealing-pool size holder shared by
  green2 build, peak detection and solve. Interpolator construction
  (daq.New) takes no worker count and runs on the calling goroutine. Go's
  goroutine scheduler already work-steals across OS threads, so Pool
  itself is just the parallelism knob every stage's worker-count parameter
  reads from; no custom scheduler is needed.

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

import "runtime"

// previewPoolSize is a worker count for the preview scheduler, kept
// separate from the compute pool. Nothing in this module passes it to
// video.NewPreviewScheduler, which falls back to a single worker when
// given fewer than one.
const previewPoolSize = 4

// Pool holds the compute parallelism every long-running stage divides its
// work across.
type Pool struct {
	size int
}

// NewPool returns a Pool of size workers, defaulting to runtime.NumCPU()
// when size <= 0.
func NewPool(size int) *Pool {
	if size <= 0 {
		size = runtime.NumCPU()
	}
	return &Pool{size: size}
}

// Size returns the compute pool's worker count.
func (p *Pool) Size() int { return p.size }
