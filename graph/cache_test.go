/*
DESCRIPTION
  cache_test.go exercises the generic memoization slot in isolation: a
  fresh slot misses, a published result is served back for the same key,
  an Aborted result is never cached, and abortActive reaches whatever
  progress.Counter begin handed out.

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
	"testing"

	"github.com/starpact/tlc-core/errs"
)

func TestCacheMissesOnFreshSlot(t *testing.T) {
	c := new(cache[string, int])
	if _, _, ok := c.get("a"); ok {
		t.Fatal("get on a fresh cache returned ok=true")
	}
}

func TestCachePublishThenGetSameKey(t *testing.T) {
	c := new(cache[string, int])
	c.begin("a")
	c.publish("a", 42, nil)

	v, err, ok := c.get("a")
	if !ok || err != nil || v != 42 {
		t.Fatalf("get(%q) = (%v, %v, %v), want (42, nil, true)", "a", v, err, ok)
	}

	if _, _, ok := c.get("b"); ok {
		t.Fatal("get on a different key returned ok=true")
	}
}

func TestCacheCachesFailure(t *testing.T) {
	c := new(cache[string, int])
	wantErr := errs.New(errs.Decode, "boom")
	c.begin("a")
	c.publish("a", 0, wantErr)

	v, err, ok := c.get("a")
	if !ok || err != wantErr || v != 0 {
		t.Fatalf("get(%q) = (%v, %v, %v), want (0, %v, true)", "a", v, err, ok, wantErr)
	}
}

func TestCacheNeverCachesAborted(t *testing.T) {
	c := new(cache[string, int])
	c.begin("a")
	c.publish("a", 0, errs.New(errs.Aborted, "cancelled"))

	if _, _, ok := c.get("a"); ok {
		t.Fatal("an Aborted result was cached")
	}
}

func TestCacheAbortActiveAbortsInFlightCounter(t *testing.T) {
	c := new(cache[string, int])
	prog := c.begin("a")
	if prog.Aborted() {
		t.Fatal("freshly begun counter is already aborted")
	}
	c.abortActive()
	if !prog.Aborted() {
		t.Fatal("abortActive did not abort the in-flight counter")
	}
}

func TestCacheAbortActiveOnIdleSlotIsNoop(t *testing.T) {
	c := new(cache[string, int])
	c.abortActive() // must not panic with no active computation
}
