// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package thread

import "github.com/petermattis/goid"

// currentGoroutineID identifies the calling goroutine, standing in for
// a native thread ID since Go exposes none. Used only to tell "same
// goroutine relocked a recursive mutex" apart from "different
// goroutine contending for it".
func currentGoroutineID() int64 {
	return goid.Get()
}
