// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package raii_test

import (
	"testing"

	"code.hybscloud.com/raii"
	"code.hybscloud.com/raii/arena"
)

func TestTryReleasesBoundArenaOnThrow(t *testing.T) {
	a := arena.New()
	a.Alloc(128)
	if a.Capacity() == 0 {
		t.Fatal("expected the arena to have outstanding capacity before the frame exits")
	}

	raii.Try(func() {
		raii.Try(func() {
			raii.Throw(raii.AssertionFailure)
		}).WithArena(a).End()
	}).CatchAny(func(e *raii.Exception) {}).End()

	if got := a.Capacity(); got != 0 {
		t.Fatalf("arena capacity after its owning frame threw = %d, want 0 (Clear should run during drain)", got)
	}
}
