/*
DESCRIPTION
  progress.go provides Counter, the shared cancellation-and-progress
  primitive used by every long-running computation (read_video,
  decode_all/green2 build, detect_peak, solve_nu). A single atomic counter
  doubles as both a progress bar and a cancellation channel: each worker
  increments it after one unit of work, and a negative sentinel means
  "aborted", so the hot loops stay branch-light.

AUTHORS
  tlc-core contributors

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package progress provides the cancellation/progress counter shared by
// every long-running tlc-core computation.
package progress

import "sync/atomic"

// aborted is the sentinel value stored once Abort is called.
const aborted = -1

// Counter is a cooperative cancellation flag that also reports progress.
// The zero value is ready to use.
type Counter struct {
	v int64
}

// Add increments the counter by n units of completed work. Add is a no-op
// once the counter has been aborted.
func (c *Counter) Add(n int64) {
	for {
		old := atomic.LoadInt64(&c.v)
		if old == aborted {
			return
		}
		if atomic.CompareAndSwapInt64(&c.v, old, old+n) {
			return
		}
	}
}

// Abort sets the counter to its aborted sentinel. Safe to call concurrently
// and more than once.
func (c *Counter) Abort() { atomic.StoreInt64(&c.v, aborted) }

// Aborted reports whether Abort has been called.
func (c *Counter) Aborted() bool { return atomic.LoadInt64(&c.v) == aborted }

// Value returns the current progress count, or a negative value if
// aborted.
func (c *Counter) Value() int64 { return atomic.LoadInt64(&c.v) }
