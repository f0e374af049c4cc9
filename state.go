// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package raii

import "code.hybscloud.com/raii/thread"

// threadState is per-OS-thread exception state, approximated here as
// one per goroutine, keyed by goid.Get(), since Go exposes no native
// thread-local storage. This is a deliberate approximation: goroutines
// can migrate across OS threads and are far cheaper to spawn, so
// "thread" throughout this package means "goroutine".
type threadState struct {
	top    *Frame
	raised *Exception
}

var (
	statesMu = thread.NewMutex(false)
	states   = make(map[int64]*threadState)
)

// currentThread returns this goroutine's state, creating it on first
// access. All operations on the returned value must only be performed
// by the calling goroutine — no cross-thread access is permitted.
func currentThread() *threadState {
	id := thread.Current()

	statesMu.Lock()
	defer statesMu.Unlock()
	s, ok := states[id]
	if !ok {
		s = &threadState{}
		states[id] = s
	}
	return s
}

// ReleaseThread drops the calling goroutine's per-thread state. Go has
// no goroutine-exit hook to do this automatically; callers that recycle
// goroutines in a pool and want to bound memory call this explicitly
// once a goroutine will never call into this package again.
//
// Calling it while frames are still active is a programming error, for
// the same reason popping a non-top frame is: it would silently discard
// live finalizers and arenas.
func ReleaseThread() {
	id := thread.Current()

	statesMu.Lock()
	defer statesMu.Unlock()
	if s, ok := states[id]; ok && s.top != nil {
		fatal("raii: ReleaseThread called with active Try frames")
	}
	delete(states, id)
}

func (s *threadState) pushFrame(f *Frame) {
	f.parent = s.top
	s.top = f
}

// popFrame pops f from the top of the stack. Popping a frame that is not
// the top is a programming error and is fatal.
func (s *threadState) popFrame(f *Frame) {
	if s.top != f {
		fatal("raii: pop of non-top frame")
	}
	s.top = f.parent
}

func (s *threadState) topFrame() *Frame {
	return s.top
}

func (s *threadState) setRaised(e *Exception) {
	s.raised = e
}

func (s *threadState) getRaised() *Exception {
	return s.raised
}
