// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package thread_test

import (
	"testing"
	"time"

	"code.hybscloud.com/raii/thread"
)

func TestCondSignalWakesOneWaiter(t *testing.T) {
	c := thread.NewCond()
	woke := make(chan struct{})

	go func() {
		c.Wait()
		close(woke)
	}()

	time.Sleep(20 * time.Millisecond) // give the waiter time to block
	c.Signal()

	select {
	case <-woke:
	case <-time.After(time.Second):
		t.Fatal("Signal did not wake the waiter")
	}
}

func TestCondBroadcastWakesAllWaiters(t *testing.T) {
	c := thread.NewCond()
	const n = 5
	woke := make(chan struct{}, n)

	for i := 0; i < n; i++ {
		go func() {
			c.Wait()
			woke <- struct{}{}
		}()
	}

	time.Sleep(20 * time.Millisecond)
	c.Broadcast()

	for i := 0; i < n; i++ {
		select {
		case <-woke:
		case <-time.After(time.Second):
			t.Fatalf("only %d/%d waiters woke from Broadcast", i, n)
		}
	}
}

func TestCondTimedWaitTimesOutWithNoSignal(t *testing.T) {
	c := thread.NewCond()
	r := c.TimedWait(time.Now().Add(30 * time.Millisecond))
	if r != thread.Timeout {
		t.Fatalf("TimedWait() = %v, want Timeout", r)
	}
}
