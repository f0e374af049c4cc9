// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package raii

import (
	"sync"
	"sync/atomic"
)

// frameState tracks a frame's progress through trying its body,
// dispatching to a handler, and draining its finalizers.
type frameState int

const (
	frameTrying frameState = iota
	frameThrown
	frameHandled
	frameFinalizing
	frameDone
)

// arenaBinding is the subset of arena.Arena's surface a Frame needs to
// release an owned arena on pop, without importing package arena here
// and creating a cycle.
type arenaBinding interface {
	Clear()
}

// Frame is one activation of a protected region. Frames form a stack
// per goroutine via the parent pointer; they never own their parent,
// only point to it.
type Frame struct {
	parent *Frame
	state  frameState

	// protect is the head of the LIFO protection list.
	protect *finalizerRecord

	// arena is the frame's owned arena handle, if any.
	arena arenaBinding

	// outer is the outer-exception slot: a throw that occurs while this
	// frame is handling or finalizing is parked here instead of
	// immediately unwinding.
	outer *Exception

	// outerSuperseded counts how many times outer was overwritten
	// before being consumed, for the double-rethrow-lost diagnostic.
	outerSuperseded int
}

// finalizerRecord is a (release, ctx) pair plus a link to the next
// record in the same frame, and a one-shot "has this run or been
// detached" flag. Unprotect must be a no-op — not a panic — on an
// already-consumed handle, so the flag is checked rather than enforced
// by destructive removal alone.
//
// gen is bumped every time the record changes hands through the pool
// (leased out by acquireFinalizer, returned by releaseFinalizer). A
// Handle captures the gen it was issued under; a mismatch at Unprotect
// time means the underlying record has since been recycled — possibly
// into an unrelated, currently-live registration — so the handle is
// treated as foreign rather than trusted to compare frame/done against
// whatever now happens to sit in the struct.
type finalizerRecord struct {
	release func(ctx any)
	ctx     any
	next    *finalizerRecord
	frame   *Frame
	done    bool
	gen     uint64
}

var (
	finalizerPool = sync.Pool{New: func() any { return new(finalizerRecord) }}
	finalizerGen  atomic.Uint64
)

func acquireFinalizer() *finalizerRecord {
	r := finalizerPool.Get().(*finalizerRecord)
	r.gen = finalizerGen.Add(1)
	return r
}

func releaseFinalizer(r *finalizerRecord) {
	r.release = nil
	r.ctx = nil
	r.next = nil
	r.frame = nil
	r.done = false
	r.gen = finalizerGen.Add(1)
	finalizerPool.Put(r)
}

// Handle identifies a registered finalizer for Unprotect. It is opaque
// to callers.
type Handle struct {
	record *finalizerRecord
	gen    uint64
}

// Protect registers a finalizer with the innermost active Try region on
// the calling goroutine and returns a handle for Unprotect. O(1):
// prepends to the frame's protection list.
//
// Protect panics if called outside any active Try region — there is no
// frame to own the finalizer.
func Protect(release func(ctx any), ctx any) Handle {
	f := currentThread().topFrame()
	if f == nil {
		fatal("raii: Protect called outside any Try region")
	}
	r := acquireFinalizer()
	r.release = release
	r.ctx = ctx
	r.frame = f
	r.next = f.protect
	f.protect = r
	return Handle{record: r, gen: r.gen}
}

// Unprotect detaches a previously registered finalizer without running
// it. If the handle has already been consumed (run, or already
// unprotected) within its still-active frame, the call is a no-op.
//
// Unprotect panics if the handle's underlying record has already been
// recycled — either because its frame has since exited (the record was
// returned to the pool during drain) or, worse, reissued to an
// unrelated registration — and if the handle belongs to a frame other
// than the calling goroutine's current frame. Both are programming
// errors: detaching a finalizer across frames, or after its frame is
// gone, is never valid.
func Unprotect(h Handle) {
	r := h.record
	if r == nil {
		return
	}
	if r.gen != h.gen {
		fatal("raii: Unprotect of a handle from a frame that has already exited")
	}
	if r.done {
		return
	}
	f := r.frame
	if f != currentThread().topFrame() {
		fatal("raii: Unprotect of a handle foreign to the current frame")
	}

	// Walk the LIFO list to splice r out; protection lists are shallow
	// in practice (one entry per nested resource), so linear removal is
	// the minimal correct design.
	if f.protect == r {
		f.protect = r.next
	} else {
		for p := f.protect; p != nil; p = p.next {
			if p.next == r {
				p.next = r.next
				break
			}
		}
	}
	r.done = true
}

// drain runs f's protection list LIFO: each record must run even if a
// previous one raised. A raise during drain updates f's
// outer-exception slot and draining continues with the remaining
// finalizers.
func (f *Frame) drain() {
	for r := f.protect; r != nil; {
		next := r.next
		if !r.done {
			r.done = true
			if p, ok := runGuarded(func() { r.release(r.ctx) }); ok {
				f.absorbPanic(p)
			}
		}
		releaseFinalizer(r)
		r = next
	}
	f.protect = nil

	if f.arena != nil {
		f.arena.Clear()
		f.arena = nil
	}
}

// absorbPanic records a panic raised by a Catch/CatchAny handler, a
// Finally clause, or a finalizer during drain into f's outer slot.
// A second record supersedes the first, and the superseded one is
// logged, not dropped silently (see throw.go's reportLostException).
func (f *Frame) absorbPanic(p any) {
	if isFatal(p) {
		panic(p)
	}
	exc, ok := p.(*ravel)
	if !ok {
		// Not one of ours — a genuine Go panic from inside a handler or
		// finalizer. Wrapped as an AssertionFailure carrying the panic's
		// message so it still propagates rather than vanishing.
		exc = &ravel{exception: &Exception{Descriptor: AssertionFailure, Message: panicMessage(p)}}
	}
	if f.outer != nil {
		f.outerSuperseded++
		reportLostException(f.outer)
	}
	f.outer = exc.exception
}

// BindArena attaches an arena-like resource to f so it is released
// during drain, when the frame is popped.
func (f *Frame) BindArena(a arenaBinding) {
	f.arena = a
}
