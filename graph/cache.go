/*
DESCRIPTION
  cache.go is the memoization slot shared by every tracked computation
  node: a result is reused while the structural identity of its inputs is
  unchanged, and an in-flight computation can be aborted by whichever
  setter invalidated it. No generic DAG/memoization library exists
  anywhere in the retrieved pack, so this is a small hand-rolled generic
  slot, one per node kind.

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

import (
	"sync"

	"github.com/starpact/tlc-core/errs"
	"github.com/starpact/tlc-core/progress"
)

// cache memoizes one tracked node's (key, value, error) triple. K must be
// comparable; a slice-bearing identity (e.g. the thermocouple set) folds
// into a comparable fingerprint field instead of being stored raw (see
// keys.go).
type cache[K comparable, V any] struct {
	mu sync.Mutex

	hasResult bool
	key       K
	value     V
	err       error

	hasActive bool
	activeKey K
	active    *progress.Counter
}

// get returns the cached (value, err) for key and true, or the zero value
// and false if key does not match the last published result.
func (c *cache[K, V]) get(key K) (V, error, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.hasResult && c.key == key {
		return c.value, c.err, true
	}
	var zero V
	return zero, nil, false
}

// begin registers key as the in-flight computation and returns a fresh
// progress.Counter for the caller to thread through it.
func (c *cache[K, V]) begin(key K) *progress.Counter {
	c.mu.Lock()
	defer c.mu.Unlock()
	prog := new(progress.Counter)
	c.hasActive, c.activeKey, c.active = true, key, prog
	return prog
}

// publish stores (key, value, err) as the memoized result. errs.Aborted
// results are never cached, so the next get for the same key will
// recompute.
func (c *cache[K, V]) publish(key K, value V, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if errs.IsKind(err, errs.Aborted) {
		c.hasResult = false
	} else {
		c.hasResult, c.key, c.value, c.err = true, key, value, err
	}
	if c.hasActive && c.activeKey == key {
		c.hasActive, c.active = false, nil
	}
}

// abortActive raises the cancellation flag of whatever computation is
// currently in flight, if any: a leaf mutation that invalidates an
// in-flight read must abort it promptly.
func (c *cache[K, V]) abortActive() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.hasActive && c.active != nil {
		c.active.Abort()
	}
}
