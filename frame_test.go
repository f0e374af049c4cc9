// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package raii_test

import (
	"testing"

	"code.hybscloud.com/raii"
)

func TestProtectOutsideAnyTryIsFatal(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected Protect with no active Try frame to panic")
		}
	}()
	raii.Protect(func(ctx any) {}, nil)
}

func TestUnprotectOfAForeignFrameIsFatal(t *testing.T) {
	var foreign raii.Handle
	raii.Try(func() {
		foreign = raii.Protect(func(ctx any) {}, nil)
	}).End()

	defer func() {
		if recover() == nil {
			t.Fatal("expected Unprotect of a handle from an already-exited frame to panic")
		}
	}()
	raii.Try(func() {
		raii.Unprotect(foreign)
	}).End()
}
