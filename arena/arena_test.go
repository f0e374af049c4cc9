// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package arena_test

import (
	"math"
	"strings"
	"testing"

	"code.hybscloud.com/raii"
	"code.hybscloud.com/raii/arena"
)

func TestAllocReturnsRequestedLength(t *testing.T) {
	a := arena.New()
	b := a.Alloc(17)
	if len(b) != 17 {
		t.Fatalf("got len %d, want 17", len(b))
	}
}

func TestAllocZeroBytesIsDefinedAndSafe(t *testing.T) {
	a := arena.New()
	b := a.Alloc(0)
	if len(b) != 0 {
		t.Fatalf("got len %d, want 0", len(b))
	}
	// A subsequent allocation must still come back usable and
	// untouched by the zero-byte request.
	c := a.Alloc(8)
	for i := range c {
		c[i] = 0xff
	}
	if len(c) != 8 {
		t.Fatalf("got len %d, want 8", len(c))
	}
}

func TestAllocIsZeroed(t *testing.T) {
	a := arena.New()
	b := a.Alloc(32)
	for i, v := range b {
		if v != 0 {
			t.Fatalf("byte %d = %d, want 0", i, v)
		}
	}
}

func TestCapacityShrinksAsArenaIsUsed(t *testing.T) {
	a := arena.New()
	a.Alloc(8)
	c1 := a.Capacity()
	a.Alloc(8)
	c2 := a.Capacity()
	if c2 >= c1 {
		t.Fatalf("capacity did not shrink: before %d, after %d", c1, c2)
	}
}

func TestClearResetsCapacityToZero(t *testing.T) {
	a := arena.New()
	a.Alloc(64)
	a.Clear()
	if got := a.Capacity(); got != 0 {
		t.Fatalf("got capacity %d after Clear, want 0", got)
	}
}

func TestClearRecyclesChunksToTheFreeList(t *testing.T) {
	a := arena.New()
	a.Alloc(64)
	// Measured after Alloc: Alloc may itself take a chunk an earlier
	// test left on the process-wide free list.
	before := arena.FreeListLen()
	a.Clear()

	after := arena.FreeListLen()
	if after <= before {
		t.Fatalf("free list did not grow after Clear: before %d, after %d", before, after)
	}
}

func TestSecondArenaReusesFreeListChunkWithoutGrowingSystemAllocator(t *testing.T) {
	a := arena.New()
	a.Alloc(64)
	a.Clear()

	b := arena.New()
	b.Alloc(64)
	if g := b.Growths(); g != 0 {
		t.Fatalf("second arena grew via the system allocator %d times, want 0 (should reuse the free list)", g)
	}
}

func TestFreeListNeverExceedsThreshold(t *testing.T) {
	// Drain whatever earlier tests left in the global free list so the
	// Threshold change below starts from a known count of 0: the cap is
	// only enforced going forward, not retroactively.
	for arena.FreeListLen() > 0 {
		a := arena.New()
		a.Alloc(1)
	}

	original := arena.Threshold
	arena.Threshold = 3
	defer func() { arena.Threshold = original }()

	for i := 0; i < 10; i++ {
		a := arena.New()
		a.Alloc(64)
		a.Clear()
	}

	if got := arena.FreeListLen(); got > arena.Threshold {
		t.Fatalf("free list length %d exceeds Threshold %d", got, arena.Threshold)
	}
}

func TestAllocAfterFreePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected Alloc after Free to panic")
		}
	}()
	a := arena.New()
	a.Free()
	a.Alloc(1)
}

func TestNegativeAllocSizeRaisesInvalidArgument(t *testing.T) {
	var caught *raii.Exception
	a := arena.New()
	raii.Try(func() {
		a.Alloc(-1)
	}).Catch(raii.InvalidArgument, func(e *raii.Exception) {
		caught = e
	}).End()

	if caught == nil || !caught.Is(raii.InvalidArgument) {
		t.Fatalf("expected a caught InvalidArgument exception, got %v", caught)
	}
}

func TestAllocSizeOverflowRaisesOutOfMemory(t *testing.T) {
	var caught *raii.Exception
	a := arena.New()
	raii.Try(func() {
		a.Alloc(math.MaxInt)
	}).Catch(raii.OutOfMemory, func(e *raii.Exception) {
		caught = e
	}).End()

	if caught == nil || !caught.Is(raii.OutOfMemory) {
		t.Fatalf("expected a caught OutOfMemory exception, got %v", caught)
	}
}

func TestCallocCountTimesSizeOverflowRaisesOutOfMemory(t *testing.T) {
	var caught *raii.Exception
	a := arena.New()
	raii.Try(func() {
		a.Calloc(math.MaxInt, 2)
	}).Catch(raii.OutOfMemory, func(e *raii.Exception) {
		caught = e
	}).End()

	if caught == nil || !caught.Is(raii.OutOfMemory) {
		t.Fatalf("expected a caught OutOfMemory exception, got %v", caught)
	}
}

func TestStringIncludesCapacityAndTotal(t *testing.T) {
	a := arena.New()
	a.Alloc(16)
	s := a.String()
	if !strings.Contains(s, "capacity:") || !strings.Contains(s, "total:") {
		t.Fatalf("String() = %q, want it to include capacity and total", s)
	}
}
