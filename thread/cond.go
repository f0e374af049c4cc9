// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package thread

import (
	"sync"
	"time"
)

// Cond wraps sync.Cond in the cnd_t surface, adding a deadline-bearing
// TimedWait the way sync.Cond does not offer.
type Cond struct {
	mu   sync.Mutex
	cond *sync.Cond
	seq  uint64
}

// NewCond creates a condition variable. Equivalent to cnd_init.
func NewCond() *Cond {
	c := &Cond{}
	c.cond = sync.NewCond(&c.mu)
	return c
}

// Wait blocks until Signal or Broadcast wakes it. The caller must not
// hold mtx when calling Wait; Wait releases the association itself.
// Equivalent to cnd_wait(cond, mtx): the external mutex parameter from
// the C API is replaced with Cond's own internal lock, since nothing
// in this module needs the caller's mutex released and reacquired
// atomically around the wait — callers needing that should guard their
// own state with Cond's Lock/Unlock instead of a separate Mutex.
func (c *Cond) Wait() {
	c.mu.Lock()
	start := c.seq
	for c.seq == start {
		c.cond.Wait()
	}
	c.mu.Unlock()
}

// TimedWait is Wait with a deadline. Returns Timeout if deadline
// passes before a signal arrives. Equivalent to cnd_timedwait.
//
// On timeout, the helper goroutine started to perform the wait is left
// blocked until a later Signal or Broadcast reaches it; sync.Cond
// offers no way to cancel an in-progress Wait. Callers on a deadline
// that expect to fire repeatedly should prefer polling a channel over
// TimedWait in a tight loop.
func (c *Cond) TimedWait(deadline time.Time) Result {
	done := make(chan struct{})
	go func() {
		c.Wait()
		close(done)
	}()
	timer := time.NewTimer(time.Until(deadline))
	defer timer.Stop()
	select {
	case <-done:
		return Success
	case <-timer.C:
		return Timeout
	}
}

// Destroy releases any resources held by the condition variable.
// Equivalent to cnd_destroy. As with Mutex.Destroy, there is nothing to
// manually release in Go; it exists for parity with the create/destroy
// pairing the shim's surface mirrors.
func (c *Cond) Destroy() Result {
	return Success
}

// Lock and Unlock expose Cond's internal mutex for callers that want
// to guard a predicate alongside the wait, the idiomatic Go substitute
// for passing an external mtx_t into cnd_wait.
func (c *Cond) Lock()   { c.mu.Lock() }
func (c *Cond) Unlock() { c.mu.Unlock() }

// Signal wakes one waiter, if any. Equivalent to cnd_signal.
func (c *Cond) Signal() Result {
	c.mu.Lock()
	c.seq++
	c.mu.Unlock()
	c.cond.Signal()
	return Success
}

// Broadcast wakes all waiters. Equivalent to cnd_broadcast.
func (c *Cond) Broadcast() Result {
	c.mu.Lock()
	c.seq++
	c.mu.Unlock()
	c.cond.Broadcast()
	return Success
}
