// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package thread is a portable thread/mutex/condition-variable/
// thread-local-storage shim, shaped after the classic tinycthread C11
// threads emulation layer: lock, unlock, signal, join and detach
// operations report a typed Result instead of a bool or an errno, and
// the timed lock and wait variants accept a deadline.
// Its own design is intentionally unremarkable — raii's per-thread
// state, the arena allocator's free-list lock, and the signal bridge
// all sit on top of it rather than on bare sync primitives, so there
// is exactly one place that decides what "thread" means in this
// module (currently: goroutine).
package thread

import (
	"runtime"
	"time"
)

// Result mirrors tinycthread's thrd_success/thrd_timedout/thrd_busy/
// thrd_error/thrd_nomem return codes.
type Result int

const (
	Success Result = iota
	Timeout
	Busy
	OutOfMemory
	Error
)

func (r Result) String() string {
	switch r {
	case Success:
		return "success"
	case Timeout:
		return "timeout"
	case Busy:
		return "busy"
	case OutOfMemory:
		return "out of memory"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Sleep pauses the calling goroutine for the given duration. Equivalent
// to thrd_sleep, minus the interruptible-by-signal remaining-duration
// return value: Go's runtime timers have no analogous partial-sleep
// signal to report.
func Sleep(d time.Duration) {
	time.Sleep(d)
}

// Yield hints the scheduler to run other goroutines, equivalent to
// thrd_yield.
func Yield() {
	runtime.Gosched()
}
