// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package arena provides a scoped bump allocator with a process-wide
// bounded free list of reusable chunks. Allocations are never
// individually freed; an Arena is reset as a unit via Clear, normally
// from a raii Frame's protection-list drain when the frame that owns
// the arena is popped.
package arena

import (
	"fmt"
	"math"

	"code.hybscloud.com/raii"
	"code.hybscloud.com/raii/thread"
)

// DefaultThreshold is the default cap on the process-wide free list.
const DefaultThreshold = 10

// Threshold bounds the process-wide free list of retired chunks.
// Overridable at process startup by assigning a different value
// before any arena is used.
var Threshold = DefaultThreshold

// slack is the extra headroom requested from the system allocator on a
// growth miss, amortizing the cost of repeated small allocations that
// outgrow the current chunk.
const slack = 10 * 1024

// alignment is the alignment every allocation is rounded up to:
// int64/float64 alignment is 8 on every platform this module targets.
const alignment = 8

type chunk struct {
	buf   []byte
	avail int
}

func newChunk(size int) *chunk {
	return &chunk{buf: make([]byte, size)}
}

func (c *chunk) remaining() int { return len(c.buf) - c.avail }

func (c *chunk) bump(n int) []byte {
	p := c.buf[c.avail : c.avail+n]
	c.avail += n
	return p
}

func align(n int) int {
	return (n + alignment - 1) / alignment * alignment
}

var (
	freeListMu = thread.NewMutex(false)
	freeList   []*chunk
)

// acquireChunk pops a free-list chunk with at least minSize bytes, or
// returns nil if none is large enough. The free list is checked
// most-recently-retired-first, which in practice means same-size
// arenas reuse their own chunks back, growing the system allocator
// only on the first round of allocation.
func acquireChunk(minSize int) *chunk {
	freeListMu.Lock()
	defer freeListMu.Unlock()
	for i := len(freeList) - 1; i >= 0; i-- {
		if c := freeList[i]; len(c.buf) >= minSize {
			freeList = append(freeList[:i], freeList[i+1:]...)
			c.avail = 0
			clear(c.buf)
			return c
		}
	}
	return nil
}

// releaseChunks pushes retired chunks onto the free list up to
// Threshold; anything beyond the cap is dropped for the GC to reclaim.
func releaseChunks(chunks []*chunk) {
	freeListMu.Lock()
	defer freeListMu.Unlock()
	for _, c := range chunks {
		if len(freeList) >= Threshold {
			return
		}
		c.avail = 0
		freeList = append(freeList, c)
	}
}

// FreeListLen reports the current size of the process-wide free list.
// Exposed so callers and tests can assert it never exceeds Threshold.
func FreeListLen() int {
	freeListMu.Lock()
	defer freeListMu.Unlock()
	return len(freeList)
}

// Arena is a scoped bump allocator.
// The zero value is an empty arena, the same value New returns.
type Arena struct {
	current *chunk
	retired []*chunk
	total   int
	growths int
	freed   bool
}

// New creates an empty arena.
func New() *Arena {
	return &Arena{}
}

// Alloc returns n freshly allocated, zero-initialized bytes from the
// arena, rounding the request up to alignment. Allocating zero bytes
// is defined and returns a valid, empty slice rather than corrupting
// the arena.
//
// A negative n raises raii.InvalidArgument; a request whose alignment
// rounding would overflow raises raii.OutOfMemory. Both are raised via
// raii.Throw and are only catchable from within an active Try region —
// called with no such region active, they terminate the process the
// same way any other uncaught raii exception does.
func (a *Arena) Alloc(n int) []byte {
	a.checkAlive()
	if n < 0 {
		raii.ThrowMessage(raii.InvalidArgument, "arena: negative allocation size")
		return nil
	}
	if n > math.MaxInt-alignment {
		raii.ThrowMessage(raii.OutOfMemory, "arena: allocation size overflows alignment rounding")
		return nil
	}
	size := align(n)
	if a.current == nil || a.current.remaining() < size {
		a.grow(size)
	}
	return a.current.bump(size)[:n]
}

// Calloc is Alloc for count*size bytes, explicitly zeroed (Alloc
// already returns zeroed memory, since fresh chunks come from
// make([]byte, ...) and reused chunks are cleared, but Calloc
// makes the caller's intent explicit for count/size-shaped
// allocations).
func (a *Arena) Calloc(count, size int) []byte {
	if count < 0 || size < 0 {
		raii.ThrowMessage(raii.InvalidArgument, "arena: negative calloc size")
		return nil
	}
	if size != 0 && count > math.MaxInt/size {
		raii.ThrowMessage(raii.OutOfMemory, "arena: calloc count*size overflows")
		return nil
	}
	buf := a.Alloc(count * size)
	for i := range buf {
		buf[i] = 0
	}
	return buf
}

// grow retires the current chunk (if any) and acquires a new one,
// preferring the process-wide free list over the system allocator.
func (a *Arena) grow(size int) {
	if a.current != nil {
		a.retired = append(a.retired, a.current)
	}
	c := acquireChunk(size)
	if c == nil {
		minSize := size + slack
		c = newChunk(minSize)
		a.total += minSize
		a.growths++
	}
	a.current = c
}

// Clear resets the arena to empty, recycling its chunks to the
// process-wide free list (up to Threshold).
func (a *Arena) Clear() {
	if a.current != nil {
		a.retired = append(a.retired, a.current)
		a.current = nil
	}
	releaseChunks(a.retired)
	a.retired = nil
}

// Free releases the arena permanently. After Free, the arena must not
// be used again — doing so panics, since using a torn-down resource is
// a programmer error.
func (a *Arena) Free() {
	a.Clear()
	a.freed = true
}

func (a *Arena) checkAlive() {
	if a.freed {
		panic("arena: use of a freed Arena")
	}
}

// Capacity returns the number of bytes still available in the arena's
// current chunk.
func (a *Arena) Capacity() int {
	if a.current == nil {
		return 0
	}
	return a.current.remaining()
}

// Total returns the total bytes this arena has grown via the system
// allocator (not counting chunks reused from the free list).
func (a *Arena) Total() int {
	return a.total
}

// Growths returns how many times this arena grew via the system
// allocator rather than reusing a free-list chunk.
func (a *Arena) Growths() int {
	return a.growths
}

// String renders a debug summary of the arena's capacity, total system
// growth, and the process-wide free list's current size.
func (a *Arena) String() string {
	return fmt.Sprintf("capacity: %d, total: %d, free_list: %d", a.Capacity(), a.Total(), FreeListLen())
}
