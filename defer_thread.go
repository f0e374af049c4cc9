// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package raii

// DeferThread registers fn to run when the innermost active Try region
// on the calling goroutine exits, without requiring the caller to keep
// a Handle around to Unprotect later. It is sugar over Protect for the
// common fire-and-forget cleanup idiom: "close this file no matter how
// we leave".
func DeferThread(fn func()) {
	Protect(func(ctx any) { fn() }, nil)
}
