// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package thread

import "sync"

// ID identifies a thread spawned with Create, standing in for
// thrd_t. The zero value never identifies a real thread.
type ID int64

// exitPanic carries Exit's status code through Go's own panic/recover
// so a thread function can terminate early from nested calls, the
// same way thrd_exit unwinds the C call stack via the underlying
// platform thread API.
type exitPanic struct{ status int }

// spawned tracks a goroutine started via Create: its completion and
// exit status, so Join can block until it finishes the way
// pthread_join does.
type spawned struct {
	id     ID
	done   chan struct{}
	status int
}

var (
	threadsMu sync.Mutex
	threads   = make(map[ID]*spawned)
	nextID    ID
)

// Create spawns fn(arg) on a new goroutine and returns its ID.
// Equivalent to thrd_create.
func Create(fn func(arg any) int, arg any) ID {
	threadsMu.Lock()
	nextID++
	id := nextID
	t := &spawned{id: id, done: make(chan struct{})}
	threads[id] = t
	threadsMu.Unlock()

	go func() {
		status := runThread(fn, arg)
		t.status = status
		close(t.done)
	}()
	return id
}

func runThread(fn func(arg any) int, arg any) (status int) {
	defer func() {
		if p := recover(); p != nil {
			if e, ok := p.(exitPanic); ok {
				status = e.status
				return
			}
			panic(p)
		}
	}()
	return fn(arg)
}

// Exit terminates the calling thread function early with the given
// status, the same way thrd_exit does from deep in a call stack.
// Exit must only be called from a function running on a goroutine
// started via Create.
func Exit(status int) {
	panic(exitPanic{status: status})
}

// Join blocks until thread id finishes and returns its exit status.
// Equivalent to thrd_join.
func Join(id ID) (status int, result Result) {
	threadsMu.Lock()
	t, ok := threads[id]
	threadsMu.Unlock()
	if !ok {
		return 0, Error
	}
	<-t.done
	threadsMu.Lock()
	delete(threads, id)
	threadsMu.Unlock()
	return t.status, Success
}

// Detach marks thread id as never going to be Joined, allowing its
// bookkeeping to be dropped once it finishes instead of waiting
// forever for a Join that will never come. Equivalent to thrd_detach.
func Detach(id ID) Result {
	threadsMu.Lock()
	t, ok := threads[id]
	threadsMu.Unlock()
	if !ok {
		return Error
	}
	go func() {
		<-t.done
		threadsMu.Lock()
		delete(threads, id)
		threadsMu.Unlock()
	}()
	return Success
}

// Current returns the calling goroutine's identity as an opaque value
// comparable with Equal. It is not an ID returned by Create unless the
// calling goroutine happens to be one spawned that way — mirroring
// thrd_current's platform thread handle, which likewise is not
// guaranteed to equal anything returned by thrd_create when called
// from outside a tinycthread-managed thread.
func Current() int64 {
	return currentGoroutineID()
}

// Equal reports whether two Current values identify the same
// goroutine. Equivalent to thrd_equal.
func Equal(a, b int64) bool {
	return a == b
}
