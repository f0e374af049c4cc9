// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package thread_test

import (
	"testing"
	"time"

	"code.hybscloud.com/raii/thread"
)

func TestMutexLockUnlock(t *testing.T) {
	m := thread.NewMutex(false)
	if r := m.Lock(); r != thread.Success {
		t.Fatalf("Lock() = %v, want Success", r)
	}
	if r := m.Unlock(); r != thread.Success {
		t.Fatalf("Unlock() = %v, want Success", r)
	}
}

func TestMutexTryLockReportsBusyWhileHeld(t *testing.T) {
	m := thread.NewMutex(false)
	m.Lock()
	defer m.Unlock()

	if r := m.TryLock(); r != thread.Busy {
		t.Fatalf("TryLock() on a held mutex = %v, want Busy", r)
	}
}

func TestMutexTimedLockTimesOut(t *testing.T) {
	m := thread.NewMutex(false)
	m.Lock()
	defer m.Unlock()

	start := time.Now()
	r := m.TimedLock(time.Now().Add(30 * time.Millisecond))
	if r != thread.Timeout {
		t.Fatalf("TimedLock() on a held mutex = %v, want Timeout", r)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Fatalf("TimedLock returned too early: %v", elapsed)
	}
}

func TestRecursiveMutexReentrant(t *testing.T) {
	m := thread.NewMutex(true)
	if r := m.Lock(); r != thread.Success {
		t.Fatalf("first Lock() = %v, want Success", r)
	}
	if r := m.Lock(); r != thread.Success {
		t.Fatalf("second (reentrant) Lock() = %v, want Success", r)
	}
	if r := m.Unlock(); r != thread.Success {
		t.Fatalf("first Unlock() = %v, want Success", r)
	}
	if r := m.Unlock(); r != thread.Success {
		t.Fatalf("second Unlock() = %v, want Success", r)
	}
}

func TestRecursiveMutexBlocksOtherGoroutines(t *testing.T) {
	m := thread.NewMutex(true)
	m.Lock()
	defer m.Unlock()

	done := make(chan thread.Result, 1)
	go func() {
		done <- m.TryLock()
	}()

	select {
	case r := <-done:
		if r != thread.Busy && r != thread.Timeout {
			t.Fatalf("TryLock from another goroutine = %v, want Busy", r)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for the other goroutine's TryLock")
	}
}

func TestUnlockOfUnheldRecursiveMutexPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected Unlock of an unheld recursive mutex to panic")
		}
	}()
	m := thread.NewMutex(true)
	m.Unlock()
}
