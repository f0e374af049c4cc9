// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package thread

import "time"

// Deadline returns the absolute point in time d from now, the Go
// analogue of filling a struct timespec with timespec_get plus an
// offset before passing it to TimedLock or TimedWait.
func Deadline(d time.Duration) time.Time {
	return time.Now().Add(d)
}
